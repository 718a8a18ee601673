package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/hive"
	"github.com/blackwell-systems/camusage/internal/present"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the consent store can be read",
	Long: `Display where camera consent data is read from and whether it is reachable.

Shows:
  • Data source (live registry or hive file)
  • Whether the consent store could be opened
  • Number of recorded apps, active sessions, packaged and desktop apps

A missing store is not an error: Windows only creates it once an app has
requested camera access.`,
	Example: `  # Check the live store
  camusage status

  # Check a captured hive file
  camusage status --hive webcam.db`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, err := resolveSource(cfg.General.Hive)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	const label = "%-10s"

	fmt.Fprintln(out)
	fmt.Fprintf(out, label+"%s\n", "Source:", src.description)

	root, openErr := src.open()
	if openErr != nil {
		reason := "not found (no app has requested camera access yet)"
		switch {
		case errors.Is(openErr, hive.ErrUnsupported):
			reason = "unavailable on this platform (use --hive with a captured file)"
		case !errors.Is(openErr, hive.ErrNotExist) && !errors.Is(openErr, os.ErrNotExist):
			reason = "unreadable: " + openErr.Error()
		}
		fmt.Fprintf(out, label+"%s\n", "Store:", reason)
		fmt.Fprintf(out, label+"%s\n", "Records:", "0")
		fmt.Fprintln(out)
		return nil
	}
	root.Close()

	sum := present.Summarize(newScanner(src).Load())
	fmt.Fprintf(out, label+"%s\n", "Store:", "ok")
	fmt.Fprintf(out, label+"%d total · %d active\n", "Records:", sum.Total, sum.Active)
	fmt.Fprintf(out, label+"%d packaged · %d desktop\n", "Kinds:", sum.Packaged, sum.Desktop)
	fmt.Fprintln(out)
	fmt.Fprintln(out, cfg.StatusText())
	return nil
}
