package hive

import (
	"fmt"
	"sort"
	"strings"
)

// Node is an in-memory key. It backs the YAML and SQLite hive files and is
// convenient for building fixtures in tests.
//
// Values holds arbitrary Go values so that malformed data (strings, 32-bit
// integers) can be represented; only uint64 values read successfully through
// QWORD.
type Node struct {
	Name   string
	Keys   map[string]*Node
	Values map[string]any

	// Unreadable marks a key whose open fails, simulating an ACL-protected entry.
	Unreadable bool
}

// NewNode returns an empty node named name.
func NewNode(name string) *Node {
	return &Node{
		Name:   name,
		Keys:   make(map[string]*Node),
		Values: make(map[string]any),
	}
}

// Child returns the named sub-key, creating it if needed.
func (n *Node) Child(name string) *Node {
	if c := n.lookup(name); c != nil {
		return c
	}
	c := NewNode(name)
	if n.Keys == nil {
		n.Keys = make(map[string]*Node)
	}
	n.Keys[name] = c
	return c
}

// SetQWORD stores a 64-bit value and returns n for chaining.
func (n *Node) SetQWORD(name string, v uint64) *Node {
	if n.Values == nil {
		n.Values = make(map[string]any)
	}
	n.Values[name] = v
	return n
}

// SetValue stores an arbitrary value; used to model malformed entries.
func (n *Node) SetValue(name string, v any) *Node {
	if n.Values == nil {
		n.Values = make(map[string]any)
	}
	n.Values[name] = v
	return n
}

func (n *Node) lookup(name string) *Node {
	if c, ok := n.Keys[name]; ok {
		return c
	}
	for k, c := range n.Keys {
		if strings.EqualFold(k, name) {
			return c
		}
	}
	return nil
}

// SubKeyNames returns child names in sorted order so scans are reproducible.
func (n *Node) SubKeyNames() ([]string, error) {
	names := make([]string, 0, len(n.Keys))
	for k := range n.Keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

// OpenSubKey implements Key.
func (n *Node) OpenSubKey(name string) (Key, error) {
	c := n.lookup(name)
	if c == nil {
		return nil, fmt.Errorf("open %q: %w", name, ErrNotExist)
	}
	if c.Unreadable {
		return nil, fmt.Errorf("open %q: access denied", name)
	}
	return c, nil
}

// QWORD implements Key.
func (n *Node) QWORD(name string) (uint64, error) {
	v, ok := n.Values[name]
	if !ok {
		return 0, fmt.Errorf("value %q: %w", name, ErrNotExist)
	}
	q, ok := v.(uint64)
	if !ok {
		return 0, fmt.Errorf("value %q is %T: %w", name, v, ErrUnexpectedType)
	}
	return q, nil
}

// Close is a no-op for in-memory nodes.
func (n *Node) Close() error { return nil }

// Capture copies the tree below k into a Node. Sub-keys that cannot be
// opened and values that are not QWORDs are skipped; only the two shapes the
// consent store uses are preserved.
func Capture(k Key, name string) (*Node, error) {
	out := NewNode(name)
	names, err := k.SubKeyNames()
	if err != nil {
		return nil, fmt.Errorf("list sub-keys of %q: %w", name, err)
	}
	for _, child := range names {
		ck, err := k.OpenSubKey(child)
		if err != nil {
			continue
		}
		cn, err := Capture(ck, child)
		ck.Close()
		if err != nil {
			continue
		}
		out.Keys[child] = cn
	}
	for _, v := range capturedValues {
		if q, err := k.QWORD(v); err == nil {
			out.Values[v] = q
		}
	}
	return out, nil
}

// capturedValues are the value names Capture copies. Registry keys do not
// expose a portable way to list values through Key, and the consent store
// only uses these two.
var capturedValues = []string{"LastUsedTimeStart", "LastUsedTimeStop"}
