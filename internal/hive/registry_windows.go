//go:build windows
// +build windows

package hive

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// regKey adapts a registry.Key to Key.
type regKey struct {
	k registry.Key
}

// OpenCurrentUser opens path below HKEY_CURRENT_USER for reading.
func OpenCurrentUser(path string) (Key, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, path, registry.QUERY_VALUE|registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, mapRegistryErr(fmt.Sprintf("open HKCU\\%s", path), err)
	}
	return &regKey{k: k}, nil
}

func (r *regKey) SubKeyNames() ([]string, error) {
	names, err := r.k.ReadSubKeyNames(0)
	if err != nil {
		return nil, fmt.Errorf("enumerate sub-keys: %w", err)
	}
	return names, nil
}

func (r *regKey) OpenSubKey(name string) (Key, error) {
	k, err := registry.OpenKey(r.k, name, registry.QUERY_VALUE|registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		return nil, mapRegistryErr(fmt.Sprintf("open %q", name), err)
	}
	return &regKey{k: k}, nil
}

func (r *regKey) QWORD(name string) (uint64, error) {
	v, typ, err := r.k.GetIntegerValue(name)
	if err != nil {
		return 0, mapRegistryErr(fmt.Sprintf("value %q", name), err)
	}
	// GetIntegerValue also accepts DWORD; the consent store only writes QWORDs.
	if typ != registry.QWORD {
		return 0, fmt.Errorf("value %q: %w", name, ErrUnexpectedType)
	}
	return v, nil
}

func (r *regKey) Close() error {
	return r.k.Close()
}

func mapRegistryErr(op string, err error) error {
	switch {
	case errors.Is(err, registry.ErrNotExist):
		return fmt.Errorf("%s: %w", op, ErrNotExist)
	case errors.Is(err, registry.ErrUnexpectedType):
		return fmt.Errorf("%s: %w", op, ErrUnexpectedType)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
