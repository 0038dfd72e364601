package freesound

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/freesound-grabber/internal/logger"
)

const summarySeparator = "═══════════════════════════════════════════════════════════════"

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

func (s *ServiceImpl) incrementSoundProcessed() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.SoundsProcessed++
}

func (s *ServiceImpl) incrementFileDownloaded(bytes int64) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.FilesDownloaded++
	s.stats.TotalBytesDownloaded += max(bytes, 0)
}

func (s *ServiceImpl) incrementFileSkipped() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.FilesSkipped++
}

func (s *ServiceImpl) incrementFailed() {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Failed++
}

// Statistics returns a snapshot of the current session statistics.
func (s *ServiceImpl) Statistics() DownloadStatistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	snapshot := *s.stats
	snapshot.Errors = append([]DownloadError(nil), s.stats.Errors...)

	return snapshot
}

// PrintDownloadSummary prints a formatted summary of download statistics.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := s.stats

	// If nothing was processed, don't print summary.
	if stats.SoundsProcessed == 0 {
		return
	}

	wasInterrupted := ctx.Err() != nil

	// The summary must reach the console even after CTRL+C canceled ctx.
	ctx = context.WithoutCancel(ctx)

	s.printSummaryHeader(ctx, wasInterrupted, stats.IsDryRun)
	s.printFileStatistics(ctx, stats)
	s.printDataTransferStatistics(ctx, stats)
	logger.Info(ctx, summarySeparator)
	s.printErrorDetails(ctx, stats)
	s.printFinalMessage(ctx, wasInterrupted, stats)
}

func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted, isDryRun bool) {
	title := "                     DOWNLOAD SUMMARY"

	switch {
	case isDryRun:
		title = "                  DRY-RUN PREVIEW"
	case wasInterrupted:
		title = "           DOWNLOAD SUMMARY (Interrupted)"
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)
	logger.Info(ctx, title)
	logger.Info(ctx, summarySeparator)
}

func (s *ServiceImpl) printFileStatistics(ctx context.Context, stats *DownloadStatistics) {
	logger.Infof(ctx, "Sounds:           %d processed", stats.SoundsProcessed)

	downloadedLabel := "  Downloaded:     "
	if stats.IsDryRun {
		downloadedLabel = "  Would Download: "
	}

	if stats.FilesDownloaded > 0 {
		logger.Infof(ctx, "%s%d", downloadedLabel, stats.FilesDownloaded)
	}

	if stats.FilesSkipped > 0 {
		logger.Infof(ctx, "  Already Exist:   %d", stats.FilesSkipped)
	}

	if stats.Failed > 0 {
		logger.Infof(ctx, "  Failed:          %d", stats.Failed)
	}
}

func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *DownloadStatistics) {
	if stats.TotalBytesDownloaded > 0 {
		logger.Info(ctx, "")

		//nolint:gosec // TotalBytesDownloaded is never negative.
		size := humanize.Bytes(uint64(stats.TotalBytesDownloaded))

		if stats.IsDryRun {
			logger.Infof(ctx, "Estimated Size:   %s", size)
		} else {
			logger.Infof(ctx, "Data Downloaded:  %s", size)
		}
	}

	if stats.IsDryRun || stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		return
	}

	duration := stats.EndTime.Sub(stats.StartTime)

	// Only show if duration is meaningful (> 100ms).
	if duration <= 100*time.Millisecond {
		return
	}

	logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

	if stats.TotalBytesDownloaded > 0 {
		bytesPerSecond := float64(stats.TotalBytesDownloaded) / duration.Seconds()
		logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(uint64(bytesPerSecond)))
	}
}

func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *DownloadStatistics) {
	if len(stats.Errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(stats.Errors))

	for i := range stats.Errors {
		downloadErr := &stats.Errors[i]

		logger.Info(ctx, "")

		title := downloadErr.ItemTitle
		if title == "" {
			title = downloadErr.ItemURL
		}

		logger.Errorf(ctx, "  [%d] %s: %s", i+1, downloadErr.Category, title)

		if downloadErr.ItemURL != "" && downloadErr.ItemURL != title {
			logger.Errorf(ctx, "      URL: %s", downloadErr.ItemURL)
		}

		if downloadErr.ItemID != "" {
			logger.Errorf(ctx, "      ID: %s", downloadErr.ItemID)
		}

		logger.Errorf(ctx, "      Phase: %s", downloadErr.Phase)
		logger.Errorf(ctx, "      Error: %s", downloadErr.ErrorMessage)
	}

	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)
}

func (s *ServiceImpl) printFinalMessage(ctx context.Context, wasInterrupted bool, stats *DownloadStatistics) {
	logger.Info(ctx, "")

	if wasInterrupted && !stats.IsDryRun {
		logger.Warn(ctx, "Download interrupted by user (CTRL+C).")
	}

	if stats.IsDryRun {
		logger.Infof(ctx, "Complete! %d would be downloaded, %d failed", stats.FilesDownloaded, stats.Failed)
		logger.Info(ctx, "To proceed with actual download, remove the --dry-run flag.")

		return
	}

	logger.Infof(ctx, "Complete! %d downloaded, %d failed", stats.FilesDownloaded, stats.Failed)
}
