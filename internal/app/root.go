package app

import (
	"context"

	"github.com/google/uuid"

	freesound_client "github.com/oshokin/freesound-grabber/internal/client/freesound"
	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/logger"
	freesound_service "github.com/oshokin/freesound-grabber/internal/service/freesound"
)

// ExecuteRootCommand is the entry point for the application.
// It initializes the Freesound client, sets up the service components,
// and downloads the provided URLs.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, urls []string) {
	logger.DebugKV(ctx, "Download session started", "session", uuid.NewString())

	freesoundClient, err := freesound_client.NewClient(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize freesound client: %v", err)
	}

	urlProcessor := freesound_service.NewURLProcessor()
	tagProcessor := freesound_service.NewTagProcessor()

	s := freesound_service.NewService(cfg, freesoundClient, urlProcessor, tagProcessor)

	runDownload(ctx, s, urls)
}

// runDownload downloads urls and prints the summary, even after a panic.
func runDownload(ctx context.Context, s freesound_service.Service, urls []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	logger.Debugf(ctx, "Starting download of %d argument(s)", len(urls))

	s.DownloadURLs(ctx, urls)
}
