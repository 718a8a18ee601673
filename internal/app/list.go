package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/camusage/internal/config"
	"github.com/blackwell-systems/camusage/internal/output"
	"github.com/blackwell-systems/camusage/internal/present"
)

var (
	listCurrent bool
	listFormat  string
	listNoColor bool

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List applications that have used the camera",
		Long: `Scan the camera consent store and list every recorded application.

Rows are ordered with active sessions first, then by most recent start time.
Timestamps are shown in the local time zone (or the zone set in config.toml).

Columns:
  Kind        Packaged (Store app) or Desktop (classic executable)
  App         package identity, or the executable file name
  EXE         full executable path (Desktop apps only)
  Active      Yes when a session has started and not stopped
  Last Start  start of the most recent session
  Last Stop   end of the most recent session (empty while active)`,
		Example: `  # List everything
  camusage list

  # Only apps using the camera right now
  camusage list --current

  # Machine-readable output
  camusage list --format json
  camusage list --format csv > usage.csv`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().BoolVar(&listCurrent, "current", false, "show only apps with an active camera session")
	listCmd.Flags().StringVar(&listFormat, "format", "", "output format: table, json or csv (default from config, else table)")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "disable colored output")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if listFormat != "" {
		format = listFormat
	}
	format = strings.ToLower(format)
	if err := config.ValidateFormat(format); err != nil {
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

	currentOnly := currentOnlyFor(cmd, cfg.General.CurrentOnly, listCurrent)

	// Scans are normally instant; the spinner only matters for large
	// captured hives on slow disks.
	spinner := output.NewSpinner("Scanning consent store...")
	spinner.Start()
	records := newScanner(src).Load()
	spinner.Stop()

	rows := present.PresentIn(records, currentOnly, loc)
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		return output.WriteJSON(out, rows)
	case config.FormatCSV:
		return output.WriteCSV(out, rows)
	default:
		color := cfg.Output.Color && !listNoColor && isStdout(out) && output.IsColorEnabled()
		fmt.Fprint(out, output.RenderRowTable(rows, output.TableOptions{Color: color, CurrentOnly: currentOnly}))
		if len(records) > 0 {
			fmt.Fprintln(out)
			fmt.Fprint(out, output.RenderSummary(present.Summarize(records)))
		}
		return nil
	}
}

// isStdout reports whether w is the process stdout attached to a terminal.
func isStdout(w any) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout && isatty.IsTerminal(f.Fd())
}
