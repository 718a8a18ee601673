package consent

import "strings"

// The NonPackaged consent key stores each executable path as a single key
// name with every backslash replaced by '#'.
const (
	pathSeparator = '\\'
	encodedSep    = '#'
)

// EncodePath converts an executable path into its NonPackaged key name.
func EncodePath(path string) string {
	return strings.ReplaceAll(path, string(pathSeparator), string(encodedSep))
}

// DecodePath recovers the executable path from a NonPackaged key name.
//
// The encoding is lossy: a path that itself contains '#' decodes with a
// backslash in that position. Windows records such paths the same way, so
// there is no way to tell them apart from the key name alone.
func DecodePath(name string) string {
	return strings.ReplaceAll(name, string(encodedSep), string(pathSeparator))
}

// LeafName returns the final component of a path, accepting either
// separator. A path without separators is returned unchanged.
func LeafName(path string) string {
	if i := strings.LastIndexAny(path, `\/`); i >= 0 {
		return path[i+1:]
	}
	return path
}
