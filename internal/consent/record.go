// Package consent models entries of the Windows camera consent store.
package consent

import (
	"sort"
	"time"
)

// Kind distinguishes how an application is identified in the consent store.
type Kind int

const (
	// Packaged apps are identified by their package family name.
	Packaged Kind = iota
	// Desktop apps are identified by their executable path.
	Desktop
)

// String returns the display label for the kind.
func (k Kind) String() string {
	switch k {
	case Packaged:
		return "Packaged"
	case Desktop:
		return "Desktop"
	default:
		return "Unknown"
	}
}

// UsageRecord is one application's most recent camera session as recorded
// by the consent store. Fields are unexported so a record cannot drift from
// its timestamps: IsActive is always derived, never stored.
type UsageRecord struct {
	kind  Kind
	app   string
	exe   string
	start uint64 // FILETIME ticks, UTC; 0 means never recorded
	stop  uint64
}

// NewPackagedRecord builds a record for a packaged app identified by its
// consent store key name.
func NewPackagedRecord(id string, start, stop uint64) UsageRecord {
	return UsageRecord{kind: Packaged, app: id, start: start, stop: stop}
}

// NewDesktopRecord builds a record for a desktop app. The app identifier is
// the base name of exePath.
func NewDesktopRecord(exePath string, start, stop uint64) UsageRecord {
	return UsageRecord{kind: Desktop, app: LeafName(exePath), exe: exePath, start: start, stop: stop}
}

// Kind returns the record kind.
func (r UsageRecord) Kind() Kind { return r.kind }

// AppIdentifier returns the package identity for packaged apps or the
// executable's file name for desktop apps.
func (r UsageRecord) AppIdentifier() string { return r.app }

// ExecutablePath returns the decoded executable path; empty for packaged apps.
func (r UsageRecord) ExecutablePath() string { return r.exe }

// Start returns the raw LastUsedTimeStart FILETIME.
func (r UsageRecord) Start() uint64 { return r.start }

// Stop returns the raw LastUsedTimeStop FILETIME.
func (r UsageRecord) Stop() uint64 { return r.stop }

// IsActive reports whether the session has started and not yet stopped.
func (r UsageRecord) IsActive() bool {
	return r.start != 0 && r.stop == 0
}

// SortRecords orders records for presentation: active sessions first, then
// most recently started. The sort is stable so equal records keep scan order.
func SortRecords(records []UsageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.IsActive() != b.IsActive() {
			return a.IsActive()
		}
		return a.start > b.start
	})
}

// Snapshot is the result of one full scan of the consent store. A refresh
// produces a new Snapshot; existing snapshots are never modified.
type Snapshot struct {
	Records []UsageRecord
	TakenAt time.Time
}

// NewSnapshot copies records into a snapshot taken at t.
func NewSnapshot(records []UsageRecord, t time.Time) Snapshot {
	cp := make([]UsageRecord, len(records))
	copy(cp, records)
	return Snapshot{Records: cp, TakenAt: t}
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int { return len(s.Records) }
