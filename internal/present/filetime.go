package present

import "time"

const (
	// ticksPerSecond is the FILETIME resolution (100ns ticks).
	ticksPerSecond = 10_000_000
	// epochDeltaSeconds is the number of seconds from 1601-01-01 to 1970-01-01.
	epochDeltaSeconds = 11_644_473_600
	// maxFiletime is the first value FileTimeToSystemTime rejects.
	maxFiletime = 1 << 63
)

// FiletimeToTime converts a FILETIME tick count to a UTC time. It reports
// false for the 0 sentinel and for values outside the FILETIME range.
func FiletimeToTime(ft uint64) (time.Time, bool) {
	if ft == 0 || ft >= maxFiletime {
		return time.Time{}, false
	}
	secs := int64(ft/ticksPerSecond) - epochDeltaSeconds
	nsec := int64(ft%ticksPerSecond) * 100
	return time.Unix(secs, nsec).UTC(), true
}

// FormatFiletime renders ft in loc as "YYYY-MM-DD HH:MM:SS". The 0 sentinel
// and unconvertible values render as "".
func FormatFiletime(ft uint64, loc *time.Location) string {
	t, ok := FiletimeToTime(ft)
	if !ok {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}
