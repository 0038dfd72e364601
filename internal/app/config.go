package app

import (
	"context"
	"errors"
	"os"

	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/logger"
)

// ExecuteConfigInitCommand writes a configuration file filled with the defaults.
// An existing file is kept unless force is set.
func ExecuteConfigInitCommand(ctx context.Context, path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	err := config.WriteDefaultConfig(path, force)
	if errors.Is(err, os.ErrExist) {
		logger.Warnf(ctx, "Configuration file '%s' already exists, use --force to overwrite it", path)

		return err
	}

	if err != nil {
		return err
	}

	logger.Infof(ctx, "Default configuration written to '%s'", path)

	return nil
}
