package hive

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlKey is the on-disk shape of a key in a YAML hive file:
//
//	keys:
//	  Microsoft.WindowsCamera_8wekyb3d8bbwe:
//	    values:
//	      LastUsedTimeStart: 133497000000000000
//	      LastUsedTimeStop: 0
//	  NonPackaged:
//	    keys:
//	      C:#Windows#System32#obs64.exe:
//	        values: {LastUsedTimeStart: 133497000000000000}
type yamlKey struct {
	Values map[string]yaml.Node `yaml:"values,omitempty"`
	Keys   map[string]*yamlKey  `yaml:"keys,omitempty"`
}

// LoadYAML reads a YAML hive file. The document root is the key the consent
// reader scans (the webcam consent key).
func LoadYAML(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hive file: %w", err)
	}
	defer f.Close()
	return DecodeYAML(f, "webcam")
}

// DecodeYAML decodes a YAML hive document into a Node named name.
func DecodeYAML(r io.Reader, name string) (*Node, error) {
	var doc yamlKey
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse hive file: %w", err)
	}
	return doc.toNode(name), nil
}

func (y *yamlKey) toNode(name string) *Node {
	n := NewNode(name)
	if y == nil {
		return n
	}
	for k, child := range y.Keys {
		n.Keys[k] = child.toNode(k)
	}
	for k, v := range y.Values {
		var q uint64
		if v.Kind == yaml.ScalarNode && v.Tag == "!!int" && v.Decode(&q) == nil {
			n.Values[k] = q
			continue
		}
		// Keep malformed values so reads report ErrUnexpectedType, not ErrNotExist.
		n.Values[k] = v.Value
	}
	return n
}

// WriteYAML encodes n as a YAML hive document.
func WriteYAML(w io.Writer, n *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromNode(n)); err != nil {
		return fmt.Errorf("failed to encode hive: %w", err)
	}
	return enc.Close()
}

func fromNode(n *Node) *yamlKey {
	y := &yamlKey{}
	if len(n.Keys) > 0 {
		y.Keys = make(map[string]*yamlKey, len(n.Keys))
		for k, c := range n.Keys {
			y.Keys[k] = fromNode(c)
		}
	}
	if len(n.Values) > 0 {
		y.Values = make(map[string]yaml.Node, len(n.Values))
		for k, v := range n.Values {
			var yn yaml.Node
			if err := yn.Encode(v); err != nil {
				continue
			}
			y.Values[k] = yn
		}
	}
	return y
}
