// Package hive provides read-only access to hierarchical key-value namespaces
// shaped like the Windows registry.
//
// The consent reader only ever needs four operations: list the sub-keys of a
// key, open one of them, read a 64-bit integer value, and close the key. Key
// captures exactly that, so the same scan runs against the live registry on
// Windows, an in-memory Node tree in tests, or an offline hive file (YAML or
// SQLite) captured from another machine.
package hive

import "errors"

var (
	// ErrNotExist is returned when a sub-key or value is absent.
	ErrNotExist = errors.New("hive: key or value does not exist")

	// ErrUnexpectedType is returned when a value exists but is not a 64-bit integer.
	ErrUnexpectedType = errors.New("hive: value has unexpected type")

	// ErrUnsupported is returned by backends that are unavailable on this platform.
	ErrUnsupported = errors.New("hive: backend not supported on this platform")
)

// Key is an open node in a hierarchical namespace.
type Key interface {
	// SubKeyNames returns the names of the immediate children of the key.
	SubKeyNames() ([]string, error)
	// OpenSubKey opens an immediate child. Names match case-insensitively.
	OpenSubKey(name string) (Key, error)
	// QWORD reads a 64-bit unsigned value stored on the key.
	QWORD(name string) (uint64, error)
	// Close releases the key.
	Close() error
}

// Opener opens the root key of a namespace.
type Opener func() (Key, error)
