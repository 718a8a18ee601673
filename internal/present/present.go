// Package present turns scanned consent records into display rows.
//
// Everything here is pure: no I/O, no package state. The local time zone is
// read on every call so that a re-render after a zone change reflects it.
package present

import (
	"time"

	"github.com/blackwell-systems/camusage/internal/consent"
)

// Columns are the display column headers, in row field order.
var Columns = []string{"Kind", "App", "EXE", "Active", "Last Start", "Last Stop"}

// DisplayLayout is the timestamp format used in display rows.
const DisplayLayout = "2006-01-02 15:04:05"

// Active labels.
const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// DisplayRow is a ready-to-render record.
type DisplayRow struct {
	Kind      string `json:"kind"`
	App       string `json:"app"`
	Exe       string `json:"exe"`
	Active    string `json:"active"`
	LastStart string `json:"last_start"`
	LastStop  string `json:"last_stop"`
}

// Cells returns the row's fields in Columns order.
func (r DisplayRow) Cells() []string {
	return []string{r.Kind, r.App, r.Exe, r.Active, r.LastStart, r.LastStop}
}

// Present converts records to rows using the process's local time zone.
// When currentOnly is set, inactive records are dropped; the input order is
// otherwise preserved.
func Present(records []consent.UsageRecord, currentOnly bool) []DisplayRow {
	return PresentIn(records, currentOnly, time.Local)
}

// PresentIn is Present with an explicit location. A nil loc means time.Local.
func PresentIn(records []consent.UsageRecord, currentOnly bool, loc *time.Location) []DisplayRow {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]DisplayRow, 0, len(records))
	for _, r := range records {
		if currentOnly && !r.IsActive() {
			continue
		}
		rows = append(rows, DisplayRow{
			Kind:      r.Kind().String(),
			App:       r.AppIdentifier(),
			Exe:       r.ExecutablePath(),
			Active:    activeLabel(r.IsActive()),
			LastStart: FormatFiletime(r.Start(), loc),
			LastStop:  FormatFiletime(r.Stop(), loc),
		})
	}
	return rows
}

func activeLabel(active bool) string {
	if active {
		return LabelYes
	}
	return LabelNo
}

// Summary counts records by state and kind.
type Summary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Packaged int `json:"packaged"`
	Desktop  int `json:"desktop"`
}

// Summarize counts records.
func Summarize(records []consent.UsageRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Total++
		if r.IsActive() {
			s.Active++
		}
		switch r.Kind() {
		case consent.Packaged:
			s.Packaged++
		case consent.Desktop:
			s.Desktop++
		}
	}
	return s
}
