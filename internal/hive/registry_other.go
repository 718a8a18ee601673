//go:build !windows
// +build !windows

package hive

import "fmt"

// OpenCurrentUser reports ErrUnsupported; the live consent store only exists
// on Windows. Use a YAML or SQLite hive file elsewhere.
func OpenCurrentUser(path string) (Key, error) {
	return nil, fmt.Errorf("open HKCU\\%s: %w", path, ErrUnsupported)
}
