package archive

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// NodeWriter builds a YAML mapping node, one key per visited field,
// in visitation order.
type NodeWriter struct {
	node *yaml.Node
}

// NewNodeWriter creates a writer producing a mapping with the given style
// (0 for block style, yaml.FlowStyle for `{x: 1, y: 2, z: 3}`).
func NewNodeWriter(style yaml.Style) *NodeWriter {
	return &NodeWriter{
		node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: style},
	}
}

// Int32 appends a name/value pair.
func (a *NodeWriter) Int32(name string, v *int32) error {
	a.node.Content = append(a.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(*v), 10)},
	)
	return nil
}

// Node returns the mapping built so far.
func (a *NodeWriter) Node() *yaml.Node {
	return a.node
}

// NodeReader reads named fields from a YAML mapping node.
// Lookup is by name, so key order in the source document does not matter.
type NodeReader struct {
	node *yaml.Node
}

// NewNodeReader wraps a mapping node. A document node holding a single
// mapping is unwrapped.
func NewNodeReader(node *yaml.Node) (*NodeReader, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", ErrNotMapping)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: got %s at line %d", ErrNotMapping, kindName(node.Kind), node.Line)
	}
	return &NodeReader{node: node}, nil
}

// Int32 decodes the value stored under name into *v.
func (a *NodeReader) Int32(name string, v *int32) error {
	for i := 0; i+1 < len(a.node.Content); i += 2 {
		if a.node.Content[i].Value != name {
			continue
		}
		val := a.node.Content[i+1]
		var n int32
		if err := val.Decode(&n); err != nil {
			return fmt.Errorf("field %q at line %d: %w", name, val.Line, err)
		}
		*v = n
		return nil
	}
	return fmt.Errorf("%w %q (mapping at line %d)", ErrMissingField, name, a.node.Line)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
