// Package archive provides field-tagged archives used to serialize lattice
// coordinates. A type exposes its fields by visiting them in a fixed order:
//
//	func (c *Coord3D) Serialize(ar archive.Archive) error {
//		if err := ar.Int32("x", &c.X); err != nil { ... }
//		...
//	}
//
// The same visit works for both directions: a writing archive reads *v,
// a reading archive stores into *v.
package archive

import "errors"

var (
	// ErrMissingField is returned by a reading archive when a named field is absent.
	ErrMissingField = errors.New("missing field")

	// ErrNotMapping is returned when a YAML node cannot hold named fields.
	ErrNotMapping = errors.New("node is not a mapping")
)

// Archive visits named int32 fields.
type Archive interface {
	Int32(name string, v *int32) error
}
