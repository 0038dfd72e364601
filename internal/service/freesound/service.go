package freesound

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/oshokin/freesound-grabber/internal/client/freesound"
	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/constants"
	"github.com/oshokin/freesound-grabber/internal/logger"
)

// Service provides methods for downloading sounds from Freesound page URLs.
type Service interface {
	// DownloadURLs runs the full pipeline for every URL, one after another.
	DownloadURLs(ctx context.Context, urls []string)
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
	// Statistics returns a snapshot of the current session statistics.
	Statistics() DownloadStatistics
}

// ServiceImpl implements the sound download service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client fetches pages and assets.
	client freesound.Client
	// urlProcessor handles URL parsing and categorization.
	urlProcessor URLProcessor
	// tagProcessor writes metadata tags to MP3 files.
	tagProcessor TagProcessor
	// errorHandler logs and records failures.
	errorHandler *ErrorHandler
	// progressWriter receives the progress bars.
	progressWriter io.Writer
	// stats tracks download statistics for the current session.
	stats *DownloadStatistics
	// statsMutex protects concurrent access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	client freesound.Client,
	urlProcessor URLProcessor,
	tagProcessor TagProcessor,
) Service {
	return newServiceImpl(cfg, client, urlProcessor, tagProcessor, os.Stdout)
}

func newServiceImpl(
	cfg *config.Config,
	client freesound.Client,
	urlProcessor URLProcessor,
	tagProcessor TagProcessor,
	progressWriter io.Writer,
) *ServiceImpl {
	service := &ServiceImpl{
		cfg:            cfg,
		client:         client,
		urlProcessor:   urlProcessor,
		tagProcessor:   tagProcessor,
		progressWriter: progressWriter,
		stats:          new(DownloadStatistics),
		statsMutex:     new(sync.Mutex),
	}

	service.errorHandler = NewErrorHandler(service)

	return service
}

// DownloadURLs runs the full pipeline for every URL, one after another.
// A failing URL never stops the loop, only cancellation of ctx does.
func (s *ServiceImpl) DownloadURLs(ctx context.Context, urls []string) {
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.stats.IsDryRun = s.cfg.DryRun
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	if s.cfg.DryRun {
		logger.Infof(ctx, "[DRY-RUN] Would create output directory: %s", s.cfg.ParsedOutputPath)
	} else if err := os.MkdirAll(s.cfg.ParsedOutputPath, constants.DefaultFolderPermissions); err != nil {
		logger.Errorf(ctx, "Failed to create output path: %v", err)

		return
	}

	items, err := s.urlProcessor.ExtractDownloadItems(ctx, urls)
	if err != nil {
		logger.Errorf(ctx, "Failed to extract items to download: %v", err)

		return
	}

	itemsCount := len(items)

	for index, item := range items {
		// Check if context was canceled (CTRL+C pressed) - stop immediately.
		select {
		case <-ctx.Done():
			return
		default:
		}

		logger.Info(ctx, "")
		logger.Infof(ctx, "Processing %d of %d: %s", index+1, itemsCount, item.URL)

		s.downloadItem(ctx, item)
	}
}

func (s *ServiceImpl) downloadItem(ctx context.Context, item *DownloadItem) {
	s.incrementSoundProcessed()

	if item.Category != DownloadCategorySound {
		s.errorHandler.HandleWarning(ctx, ErrNotFreesoundURL, &ErrorContext{
			Category: item.Category,
			ItemURL:  item.URL,
			Phase:    "validating URL",
		})

		return
	}

	info, err := s.client.GetSoundInfo(ctx, item.URL)
	if s.errorHandler.HandleError(ctx, err, &ErrorContext{
		Category: item.Category,
		ItemID:   item.SoundID,
		ItemURL:  item.URL,
		Phase:    "fetching sound page",
	}) {
		return
	}

	s.logSoundInfo(ctx, info)

	requests := s.resolveAssetRequests(item, info)
	if len(requests) == 0 {
		logger.Warnf(ctx, "None of the requested formats is available (page offers %s)", availableFormats(info))

		return
	}

	for _, req := range requests {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.cfg.IsHighQuality() {
			hqURL, hasMarker := GetHQURL(req.URL)
			if !hasMarker {
				logger.Warnf(ctx, "High quality requested but %s has no %q marker, using it as is",
					req.URL, lowQualityMarker)
			}

			req.URL = hqURL
		}

		s.downloadSound(ctx, item, info, req)
	}
}

func (s *ServiceImpl) logSoundInfo(ctx context.Context, info *freesound.SoundInfo) {
	logger.Infof(ctx, "Title: %s", info.Title)

	if duration, ok := formatSoundDuration(info.DurationSeconds); ok {
		logger.Infof(ctx, "Duration: %s", duration)
	}
}

func availableFormats(info *freesound.SoundInfo) string {
	switch {
	case info.HasMP3() && info.HasOGG():
		return fmt.Sprintf("%s and %s", AudioFormatMP3.DisplayName(), AudioFormatOGG.DisplayName())
	case info.HasMP3():
		return AudioFormatMP3.DisplayName()
	default:
		return AudioFormatOGG.DisplayName()
	}
}
