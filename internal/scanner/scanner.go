// Package scanner reads the camera consent store and normalizes its entries
// into consent.UsageRecord values.
package scanner

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/blackwell-systems/camusage/internal/consent"
	"github.com/blackwell-systems/camusage/internal/hive"
)

// ConsentStorePath is the webcam consent key below HKEY_CURRENT_USER.
const ConsentStorePath = `Software\Microsoft\Windows\CurrentVersion\CapabilityAccessManager\ConsentStore\webcam`

// Names used inside the consent store.
const (
	nonPackagedKey = "NonPackaged"
	valueStart     = "LastUsedTimeStart"
	valueStop      = "LastUsedTimeStop"
)

// Scanner enumerates a consent store through a hive.Opener.
type Scanner struct {
	open   hive.Opener
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Scanner that opens the consent root with open. A nil logger
// discards diagnostics.
func New(open hive.Opener, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{open: open, logger: logger, now: time.Now}
}

// LiveOpener opens the current user's webcam consent key in the registry.
func LiveOpener() hive.Opener {
	return func() (hive.Key, error) {
		return hive.OpenCurrentUser(ConsentStorePath)
	}
}

// Load scans the consent store and returns its records in presentation
// order. It never fails: an unavailable store yields no records and an
// unreadable entry is skipped.
func (s *Scanner) Load() []consent.UsageRecord {
	root, err := s.open()
	if err != nil {
		s.logger.Debug("consent store unavailable", "error", err)
		return []consent.UsageRecord{}
	}
	defer root.Close()

	names, err := root.SubKeyNames()
	if err != nil {
		s.logger.Debug("failed to enumerate consent store", "error", err)
		return []consent.UsageRecord{}
	}

	records := make([]consent.UsageRecord, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(name, nonPackagedKey) {
			records = append(records, s.loadDesktop(root, name)...)
			continue
		}
		start, stop, ok := s.readEntry(root, name)
		if !ok {
			continue
		}
		records = append(records, consent.NewPackagedRecord(name, start, stop))
	}

	consent.SortRecords(records)
	s.logger.Debug("consent store scanned", "records", len(records))
	return records
}

// Refresh performs a full scan and wraps the result in a new snapshot.
func (s *Scanner) Refresh() consent.Snapshot {
	return consent.NewSnapshot(s.Load(), s.now())
}

// loadDesktop reads every executable entry below the NonPackaged container.
func (s *Scanner) loadDesktop(root hive.Key, container string) []consent.UsageRecord {
	np, err := root.OpenSubKey(container)
	if err != nil {
		s.logger.Debug("skipping unreadable container", "key", container, "error", err)
		return nil
	}
	defer np.Close()

	names, err := np.SubKeyNames()
	if err != nil {
		s.logger.Debug("failed to enumerate container", "key", container, "error", err)
		return nil
	}

	var records []consent.UsageRecord
	for _, name := range names {
		start, stop, ok := s.readEntry(np, name)
		if !ok {
			continue
		}
		records = append(records, consent.NewDesktopRecord(consent.DecodePath(name), start, stop))
	}
	return records
}

// readEntry opens parent\name and reads its two timestamps. Missing or
// malformed values read as 0; ok is false only when the key cannot be opened.
func (s *Scanner) readEntry(parent hive.Key, name string) (start, stop uint64, ok bool) {
	k, err := parent.OpenSubKey(name)
	if err != nil {
		s.logger.Debug("skipping unreadable entry", "key", name, "error", err)
		return 0, 0, false
	}
	defer k.Close()

	return s.readQWORD(k, name, valueStart), s.readQWORD(k, name, valueStop), true
}

func (s *Scanner) readQWORD(k hive.Key, key, value string) uint64 {
	v, err := k.QWORD(value)
	if err != nil {
		s.logger.Debug("treating value as unset", "key", key, "value", value, "error", err)
		return 0
	}
	return v
}
