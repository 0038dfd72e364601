package freesound

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/oshokin/freesound-grabber/internal/client/freesound"
	"github.com/oshokin/freesound-grabber/internal/constants"
	"github.com/oshokin/freesound-grabber/internal/logger"
	"github.com/oshokin/freesound-grabber/internal/utils"
)

const (
	// downloadChunkSize is the size of a single read from the asset stream.
	downloadChunkSize = 8192
	// progressBarWidth is the number of cells of the progress bar.
	progressBarWidth = 30
	// progressBarThrottle limits how often the bar is redrawn.
	progressBarThrottle = 65 * time.Millisecond

	// File options for writing a temporary file.
	overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
)

// downloadSound fetches one asset request end to end: download into a .part file,
// optional tagging and verification, then rename onto the destination.
//
//nolint:funlen // Sequential pipeline of a single file.
func (s *ServiceImpl) downloadSound(
	ctx context.Context,
	item *DownloadItem,
	info *freesound.SoundInfo,
	req *AssetRequest,
) {
	errorCtx := &ErrorContext{
		Category:  DownloadCategorySound,
		ItemID:    info.SoundID,
		ItemTitle: info.Title,
		ItemURL:   item.URL,
		Phase:     "downloading " + req.Format.DisplayName(),
	}

	logger.Infof(ctx, "Downloading %s (%s)...", req.Format.DisplayName(), req.Quality.Description())

	result, err := s.downloadAsset(ctx, req.URL, req.Path)
	if s.errorHandler.HandleError(ctx, err, errorCtx) {
		return
	}

	if result.IsExist {
		s.incrementFileSkipped()

		return
	}

	if s.cfg.DryRun {
		s.incrementFileDownloaded(result.BytesDownloaded)

		return
	}

	// Everything below works on the .part file, it is renamed last.
	if req.Format == AudioFormatMP3 && s.cfg.WriteTags {
		errorCtx.Phase = "writing metadata tags"

		err = s.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
			FilePath:  result.TempPath,
			Title:     info.Title,
			Uploader:  item.Uploader,
			SoundID:   info.SoundID,
			SourceURL: info.SourceURL,
		})
		if s.errorHandler.HandleError(ctx, err, errorCtx) {
			s.removeTempFile(ctx, result.TempPath)

			return
		}
	}

	if req.Format == AudioFormatMP3 && s.cfg.VerifyMP3 {
		s.verifyMP3(ctx, result.TempPath)
	}

	errorCtx.Phase = "renaming temporary file"

	renamed := s.errorHandler.WithErrorContext(ctx, errorCtx, func() error {
		return os.Rename(result.TempPath, req.Path)
	})
	if !renamed {
		s.removeTempFile(ctx, result.TempPath)

		return
	}

	savedBytes := result.BytesDownloaded
	if stat, statErr := os.Stat(req.Path); statErr == nil {
		savedBytes = stat.Size()
	}

	s.incrementFileDownloaded(result.BytesDownloaded)

	logger.Infof(ctx, "Saved: %s (%.2f MB)", req.Filename, utils.BytesToMegabytes(savedBytes))
}

// downloadAsset streams assetURL into a temporary file next to destinationPath.
// The temporary file is removed on any failure and its path returned on success.
//
//nolint:cyclop,funlen // Function orchestrates the download workflow with multiple sequential steps.
func (s *ServiceImpl) downloadAsset(
	ctx context.Context,
	assetURL string,
	destinationPath string,
) (*DownloadAssetResult, error) {
	if !s.cfg.ReplaceFiles {
		exists, err := utils.IsFileExist(destinationPath)
		if err != nil {
			return nil, fmt.Errorf("failed to check destination file: %w", err)
		}

		if exists {
			logMessage := "File '%s' already exists, skipping download"
			if s.cfg.DryRun {
				logMessage = "[DRY-RUN] File '%s' already exists, would skip"
			}

			logger.Infof(ctx, logMessage, destinationPath)

			return &DownloadAssetResult{IsExist: true}, nil
		}
	}

	fetchResult, err := s.client.FetchAsset(ctx, assetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset: %w", err)
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	// Dry-run mode: only the response headers are needed for the size estimate.
	if s.cfg.DryRun {
		logger.Infof(ctx, "[DRY-RUN] Would download %s to: %s", assetURL, destinationPath)

		return &DownloadAssetResult{BytesDownloaded: max(fetchResult.TotalBytes, 0)}, nil
	}

	tempFilePath := destinationPath + "." + uuid.NewString() + constants.ExtensionPart

	f, err := os.OpenFile(filepath.Clean(tempFilePath), overwriteFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	var downloadSucceeded bool

	defer func() {
		closeErr := f.Close()

		if downloadSucceeded {
			return
		}

		if removeErr := os.Remove(tempFilePath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v (close error: %v)",
				tempFilePath, removeErr, closeErr)
		}
	}()

	writer := io.Writer(f)

	if logger.Level() <= zap.InfoLevel {
		bar := s.newProgressBar(fetchResult.TotalBytes)

		defer func() {
			_ = bar.Exit()
			_, _ = fmt.Fprintln(s.progressWriter)
		}()

		writer = io.MultiWriter(f, bar)
	}

	bytesWritten, err := s.copyWithSpeedLimit(ctx, writer, fetchResult.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if fetchResult.TotalBytes >= 0 && bytesWritten != fetchResult.TotalBytes {
		return nil, fmt.Errorf(
			"%w: wrote %d bytes, expected %d bytes",
			ErrIncompleteDownload,
			bytesWritten,
			fetchResult.TotalBytes,
		)
	}

	// Flush to disk before the file is tagged or renamed.
	if err = f.Sync(); err != nil {
		return nil, fmt.Errorf("failed to flush temporary file: %w", err)
	}

	downloadSucceeded = true

	return &DownloadAssetResult{
		TempPath:        tempFilePath,
		BytesDownloaded: bytesWritten,
	}, nil
}

// copyWithSpeedLimit copies src to dst in fixed-size chunks.
// With a speed limit set, it sleeps whenever the transfer runs ahead of the allowed rate.
func (s *ServiceImpl) copyWithSpeedLimit(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	var (
		buffer       = make([]byte, downloadChunkSize)
		bytesWritten int64
		startTime    = time.Now()
		speedLimit   = s.cfg.ParsedDownloadSpeedLimit
	)

	for {
		n, readErr := src.Read(buffer)
		if n > 0 {
			written, writeErr := dst.Write(buffer[:n])
			bytesWritten += int64(written)

			if writeErr != nil {
				return bytesWritten, writeErr
			}
		}

		if errors.Is(readErr, io.EOF) {
			return bytesWritten, nil
		}

		if readErr != nil {
			return bytesWritten, readErr
		}

		if speedLimit <= 0 {
			continue
		}

		expected := time.Duration(float64(bytesWritten) / float64(speedLimit) * float64(time.Second))
		if pause := expected - time.Since(startTime); pause > 0 {
			timer := time.NewTimer(pause)

			select {
			case <-ctx.Done():
				timer.Stop()

				return bytesWritten, ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// newProgressBar renders a fixed-width bar with percentage when total is known,
// and a spinner with a byte counter otherwise.
func (s *ServiceImpl) newProgressBar(total int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(s.progressWriter),
		progressbar.OptionSetWidth(progressBarWidth),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "  [",
			BarEnd:        "]",
		}),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(progressBarThrottle),
	)
}

func (s *ServiceImpl) verifyMP3(ctx context.Context, path string) {
	duration, err := utils.MP3DurationByFrames(path)
	if err != nil {
		logger.Warnf(ctx, "MP3 verification failed: %v", err)

		return
	}

	logger.Debugf(ctx, "MP3 verified, decoded duration %s", duration.Round(time.Millisecond))
}

func (s *ServiceImpl) removeTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warnf(ctx, "Failed to clean up temporary file '%s': %v", path, err)
	}
}
