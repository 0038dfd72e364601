package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/freesound-grabber/internal/app"
	"github.com/oshokin/freesound-grabber/internal/config"
	"github.com/oshokin/freesound-grabber/internal/logger"
	"github.com/oshokin/freesound-grabber/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "freesound-grabber [flags] {urls | file.txt}",
		Short: "Download sound previews from freesound.org.",
		Long: `Freesound Grabber is a CLI tool for downloading the audio previews of freesound.org sounds.

Pass one or more sound page URLs, or text files with one URL per line:
  freesound-grabber https://freesound.org/people/someone/sounds/123456/
  freesound-grabber --ogg --hq -o ~/sfx links.txt

MP3 in standard quality is downloaded when no format flag is given.`,
		Version:          version.Short(),
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, urls []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, urls)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	registerDownloadFlags(rootCmd.Flags())
}

// registerDownloadFlags declares the flags of the download command.
func registerDownloadFlags(flags *pflag.FlagSet) {
	flags.Bool(
		"mp3",
		false,
		"download the MP3 preview (the default when no format flag is given).")

	flags.Bool(
		"ogg",
		false,
		"download the OGG preview.")

	flags.Bool(
		"hq",
		false,
		"download the high-quality variant instead of the standard one.")

	flags.StringP(
		"output",
		"o",
		"",
		"directory to save downloaded files (the path will be created if it doesn’t exist).")

	flags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit, for example: 500 KB, 1 MB, 1.5 MB.")

	flags.Bool(
		"tags",
		false,
		"write ID3 tags (title, uploader, source URL) to MP3 files.")

	flags.Bool(
		"dry-run",
		false,
		"fetch and parse sound pages, report the files without downloading them.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func isChanged(flags *pflag.FlagSet, name string) bool {
	flag := flags.Lookup(name)

	return flag != nil && flag.Changed
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	// Format flags replace the configured selection as a pair.
	if isChanged(flags, "mp3") || isChanged(flags, "ogg") {
		cfg.DownloadMP3, _ = flags.GetBool("mp3")
		cfg.DownloadOGG, _ = flags.GetBool("ogg")
	}

	if isChanged(flags, "hq") {
		if hq, _ := flags.GetBool("hq"); hq {
			cfg.Quality = config.QualityHigh
		} else {
			cfg.Quality = config.QualityStandard
		}
	}

	if isChanged(flags, "output") {
		cfg.OutputPath, _ = flags.GetString("output")
	}

	if isChanged(flags, "speed-limit") {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	if isChanged(flags, "tags") {
		cfg.WriteTags, _ = flags.GetBool("tags")
	}

	if isChanged(flags, "dry-run") {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	logger.SetLevel(cfg.ParsedLogLevel)

	return nil
}
