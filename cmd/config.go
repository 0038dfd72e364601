package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/freesound-grabber/internal/app"
	"github.com/oshokin/freesound-grabber/internal/logger"
)

var (
	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration file management commands",
	}

	//nolint:gochecknoglobals // Cobra command requires a global definition.
	configInitCmd = &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file filled with the default values",
		Long: `Writes a YAML configuration file with every supported key set to its default value.

The file is written to .freesound-grabber.yaml in the current directory unless a path is given.
An existing file is kept unless --force is set.`,
		Args: cobra.MaximumNArgs(1),
		// The configuration file may not exist yet, so it is not loaded.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			var path string
			if len(args) > 0 {
				path = args[0]
			}

			force, _ := cmd.Flags().GetBool("force")

			if err := app.ExecuteConfigInitCommand(cmd.Context(), path, force); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to write configuration: %v", err)
			}
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing configuration file.")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
