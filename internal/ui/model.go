// Package ui is the interactive camera usage list view.
//
// The model owns the current consent.Snapshot. Pressing r runs a full
// re-scan and replaces the snapshot wholesale; toggling "Current only"
// re-renders the held snapshot without touching the store. All state lives
// in the model and changes only in Update, so there is nothing to lock.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/camusage/internal/consent"
	"github.com/blackwell-systems/camusage/internal/present"
)

// RefreshFunc performs one full scan of the consent store.
type RefreshFunc func() consent.Snapshot

// Options configures a Model.
type Options struct {
	Refresh     RefreshFunc
	Location    *time.Location // nil means time.Local at render time
	CurrentOnly bool
	StatusText  string
}

// snapshotMsg carries the result of a refresh.
type snapshotMsg struct {
	snapshot consent.Snapshot
}

// chrome is the number of lines around the table: title, toolbar, table
// border (2), header rule, status separator and status line.
const chrome = 7

// Model is the bubbletea model for the list view.
type Model struct {
	refresh     RefreshFunc
	loc         *time.Location
	status      string
	currentOnly bool

	snapshot consent.Snapshot
	rows     []present.DisplayRow
	table    table.Model

	width   int
	height  int
	loading bool
}

// New creates a list view model. The first scan starts from Init.
func New(opts Options) Model {
	t := table.New(
		table.WithColumns(columnsFor(120)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("#1a1b2e")).Background(colorAccent)
	t.SetStyles(s)

	return Model{
		refresh:     opts.Refresh,
		loc:         opts.Location,
		status:      opts.StatusText,
		currentOnly: opts.CurrentOnly,
		table:       t,
		loading:     true,
	}
}

// Init starts the initial scan.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	refresh := m.refresh
	return func() tea.Msg {
		if refresh == nil {
			return snapshotMsg{}
		}
		return snapshotMsg{snapshot: refresh()}
	}
}

// Update handles key presses, window resizes and refresh results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(columnsFor(msg.Width))
		if h := msg.Height - chrome; h > 3 {
			m.table.SetHeight(h)
		} else {
			m.table.SetHeight(3)
		}
		m.render()
		return m, nil

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.loading = false
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", "f5":
			// One scan at a time; the pending snapshot is already current.
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.refreshCmd()
		case "c", " ":
			m.currentOnly = !m.currentOnly
			m.render()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// render rebuilds the table rows from the held snapshot.
func (m *Model) render() {
	m.rows = present.PresentIn(m.snapshot.Records, m.currentOnly, m.loc)
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = table.Row(r.Cells())
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Rows returns the rows currently displayed.
func (m Model) Rows() []present.DisplayRow { return m.rows }

// CurrentOnly reports whether the filter is on.
func (m Model) CurrentOnly() bool { return m.currentOnly }

// Snapshot returns the snapshot held by the view.
func (m Model) Snapshot() consent.Snapshot { return m.snapshot }

// View renders the title, toolbar, table and status bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Camera Usage Viewer"))
	b.WriteString("\n")
	b.WriteString(m.toolbar())
	b.WriteString("\n")
	b.WriteString(tableBorder.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return b.String()
}

func (m Model) toolbar() string {
	check := "[ ]"
	if m.currentOnly {
		check = activeStyle.Render("[x]")
	}
	parts := []string{
		keyStyle.Render("r") + " " + mutedStyle.Render("Refresh"),
		keyStyle.Render("c") + " " + check + " " + mutedStyle.Render("Current only"),
		keyStyle.Render("q") + " " + mutedStyle.Render("Quit"),
	}

	info := ""
	switch {
	case m.loading:
		info = "scanning..."
	case !m.snapshot.TakenAt.IsZero():
		sum := present.Summarize(m.snapshot.Records)
		info = fmt.Sprintf("%d shown · %d total · %d active · scanned %s",
			len(m.rows), sum.Total, sum.Active, m.snapshot.TakenAt.Format("15:04:05"))
	}

	return strings.Join(parts, "  ") + "   " + mutedStyle.Render(info)
}

func (m Model) statusBar() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return mutedStyle.Render(strings.Repeat("─", width)) + "\n" + m.status
}

// columnsFor sizes the six columns for a terminal of the given width. The
// EXE column absorbs whatever is left after the fixed-width columns.
func columnsFor(width int) []table.Column {
	fixed := []int{9, 24, 0, 6, 19, 19}
	used := 0
	for _, w := range fixed {
		used += w
	}
	// Border and per-cell padding.
	exe := width - used - 2 - 2*len(fixed)
	if exe < 12 {
		exe = 12
	}
	fixed[2] = exe

	cols := make([]table.Column, len(present.Columns))
	for i, title := range present.Columns {
		cols[i] = table.Column{Title: title, Width: fixed[i]}
	}
	return cols
}

// Run starts the interactive list view and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run list view: %w", err)
	}
	return nil
}
