package model

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/lattice3d/internal/archive"
	"github.com/udisondev/lattice3d/internal/packet"
)

// Coord3DBinarySize is the length of the binary encoding: three LE int32.
const Coord3DBinarySize = 12

// ErrTrailingData is returned by UnmarshalBinary when data is longer than one coordinate.
var ErrTrailingData = errors.New("trailing data after coordinate")

// Serialize exposes the fields "x", "y", "z", in that order, to ar.
// Works for both writing and reading archives.
func (c *Coord3D) Serialize(ar archive.Archive) error {
	if err := ar.Int32("x", &c.X); err != nil {
		return err
	}
	if err := ar.Int32("y", &c.Y); err != nil {
		return err
	}
	return ar.Int32("z", &c.Z)
}

// AppendBinary appends the binary encoding of c to w.
func (c Coord3D) AppendBinary(w *packet.Writer) {
	// BinaryWriter never fails.
	_ = c.Serialize(archive.NewBinaryWriter(w))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c Coord3D) MarshalBinary() ([]byte, error) {
	w := packet.NewWriter(Coord3DBinarySize)
	c.AppendBinary(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// data must hold exactly one coordinate.
func (c *Coord3D) UnmarshalBinary(data []byte) error {
	r := packet.NewReader(data)
	var tmp Coord3D
	if err := tmp.Serialize(archive.NewBinaryReader(r)); err != nil {
		return fmt.Errorf("decoding coordinate: %w", err)
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("decoding coordinate: %w (%d bytes)", ErrTrailingData, r.Remaining())
	}
	*c = tmp
	return nil
}

// MarshalYAML implements yaml.Marshaler as a flow mapping {x: 1, y: 2, z: 3}.
func (c Coord3D) MarshalYAML() (any, error) {
	nw := archive.NewNodeWriter(yaml.FlowStyle)
	if err := c.Serialize(nw); err != nil {
		return nil, err
	}
	return nw.Node(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
// Accepts a mapping with keys x, y, z or the shorthand sequence [x, y, z].
func (c *Coord3D) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var v []int32
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("coordinate at line %d: %w", node.Line, err)
		}
		if len(v) != 3 {
			return fmt.Errorf("coordinate at line %d: want 3 components, got %d", node.Line, len(v))
		}
		*c = Coord3D{X: v[0], Y: v[1], Z: v[2]}
		return nil
	}

	nr, err := archive.NewNodeReader(node)
	if err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	var tmp Coord3D
	if err := tmp.Serialize(nr); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	*c = tmp
	return nil
}
