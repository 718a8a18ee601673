// Package output provides terminal output utilities for camusage.
//
// This package includes:
//   - Table rendering for presented consent rows
//   - JSON and CSV writers for scripting
//   - A spinner for the (usually brief) consent store scan
//
// Table rendering uses ANSI color codes only when stdout is a terminal and
// NO_COLOR is unset.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/camusage/internal/present"
)

// ANSI color codes for the Active column
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// Column widths for the table view, in present.Columns order.
var columnWidths = []int{9, 28, 44, 7, 20, 19}

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// TableOptions controls RenderRowTable.
type TableOptions struct {
	Color bool
	// CurrentOnly selects the empty-table message for a filtered view.
	CurrentOnly bool
}

// RenderRowTable renders rows as a fixed-width table.
// Note: Does not sort - rows are expected in presentation order.
func RenderRowTable(rows []present.DisplayRow, opts TableOptions) string {
	if len(rows) == 0 {
		if opts.CurrentOnly {
			return "No active camera sessions.\n"
		}
		return "No camera usage recorded.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(formatCells(present.Columns, nil))
	sb.WriteString(strings.Repeat("─", totalWidth()))
	sb.WriteString("\n")

	// Rows
	for _, row := range rows {
		cells := row.Cells()
		cells[1] = truncate(cells[1], columnWidths[1])
		cells[2] = truncateLeft(cells[2], columnWidths[2])

		var color func(int, string) string
		if opts.Color {
			color = func(col int, padded string) string {
				if col != 3 {
					return padded
				}
				if row.Active == present.LabelYes {
					return colorGreen + padded + colorReset
				}
				return colorGray + padded + colorReset
			}
		}
		sb.WriteString(formatCells(cells, color))
	}

	return sb.String()
}

// formatCells pads each cell to its column width in terminal cells. color, if set, wraps the
// already padded cell so escape codes do not disturb alignment.
func formatCells(cells []string, color func(int, string) string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		padded := c
		if i < len(cells)-1 {
			padded = runewidth.FillRight(c, columnWidths[i])
		}
		if color != nil {
			padded = color(i, padded)
		}
		parts[i] = padded
	}
	return strings.TrimRight(strings.Join(parts, " "), " ") + "\n"
}

func totalWidth() int {
	w := len(columnWidths) - 1
	for _, c := range columnWidths {
		w += c
	}
	return w
}

// RenderSummary renders a one-line count footer.
// Format: "3 apps · 1 active · 2 packaged · 1 desktop"
func RenderSummary(s present.Summary) string {
	apps := "apps"
	if s.Total == 1 {
		apps = "app"
	}
	return fmt.Sprintf("%d %s · %d active · %d packaged · %d desktop\n",
		s.Total, apps, s.Active, s.Packaged, s.Desktop)
}

// WriteJSON writes rows as an indented JSON array. An empty result is
// written as [] rather than null.
func WriteJSON(w io.Writer, rows []present.DisplayRow) error {
	if rows == nil {
		rows = []present.DisplayRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return nil
}

// WriteCSV writes rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []present.DisplayRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(present.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Cells()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// truncate shortens s to maxLen terminal cells, adding "..." if truncated.
// It never splits a rune.
func truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// truncateLeft keeps the end of s, which for paths is the informative part.
// Like truncate it measures in terminal cells and keeps runes whole.
func truncateLeft(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	prefix := "..."
	if maxLen <= 3 {
		prefix = ""
	}
	budget := maxLen - len(prefix)

	runes := []rune(s)
	start, width := len(runes), 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > budget {
			break
		}
		width += w
		start--
	}
	return prefix + string(runes[start:])
}
