package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/ui"
)

var (
	tuiCurrent bool

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive camera usage list",
		Long: `Open a full-screen list of camera usage.

Keys:
  r   refresh (re-scan the consent store)
  c   toggle "Current only" (space also works)
  q   quit

Toggling the filter re-renders the last scan; only refresh reads the store.`,
		Example: `  camusage tui
  camusage tui --current`,
		RunE: runTUI,
	}
)

func init() {
	tuiCmd.Flags().BoolVar(&tuiCurrent, "current", false, "start with the current-only filter enabled")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	src, err := resolveSource(cfg.General.Hive)
	if err != nil {
		return err
	}

	s := newScanner(src)
	return ui.Run(ui.Options{
		Refresh:     s.Refresh,
		Location:    loc,
		CurrentOnly: currentOnlyFor(cmd, cfg.General.CurrentOnly, tuiCurrent),
		StatusText:  cfg.StatusText(),
	})
}
