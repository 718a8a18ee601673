package app

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/config"
	"github.com/blackwell-systems/camusage/internal/logging"
)

var (
	configPath string
	hivePath   string

	// logger is set up in PersistentPreRunE and used by every subcommand.
	logger      *slog.Logger
	closeLogger = func() error { return nil }

	// RootCmd is the root command for camusage
	RootCmd = &cobra.Command{
		Use:   "camusage",
		Short: "Show which applications have used the camera",
		Long: `camusage reads the Windows camera privacy consent store and lists every
application that has used the webcam, with the time of its most recent session.

Packaged (Store) apps are listed by package identity; classic desktop apps are
listed by executable path. A session with a start time and no stop time is
reported as active.

The live store is read from:
  HKCU\Software\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\webcam

Use --hive to read a store captured with 'camusage export' instead, which also
works on other operating systems.

Examples:
  # List all camera usage
  camusage list

  # Only apps using the camera right now
  camusage list --current

  # Interactive list view
  camusage tui

  # Capture the store for offline inspection
  camusage export webcam.yaml
  camusage list --hive webcam.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLogger = logging.New(logging.Options{Stderr: cmd.ErrOrStderr()})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "camusage: camera usage from the Windows consent store")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'camusage list' to see which apps used the camera.")
			fmt.Fprintln(out, "Run 'camusage --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/camusage/config.toml)")
	RootCmd.PersistentFlags().StringVar(&hivePath, "hive", "", "read a captured hive file (.yaml or .db) instead of the live registry")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(tuiCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(exportCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// loadConfig reads the config file from the --config flag or the default location.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if hivePath != "" {
		cfg.General.Hive = hivePath
	}
	return cfg, nil
}
