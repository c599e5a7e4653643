package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidDimension is returned by Get and Set for a dimension outside {0, 1, 2}.
var ErrInvalidDimension = errors.New("invalid dimension")

// Coord3D is an integer position (or extent) in a 3D lattice.
// Value type, передаётся по значению. Zero value is (0, 0, 0).
//
// Operators never mutate their operands; Set is the only mutating method.
// Coord3D has no internal synchronization.
type Coord3D struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

// NewCoord3D создаёт Coord3D с указанными координатами (без валидации).
func NewCoord3D(x, y, z int32) Coord3D {
	return Coord3D{X: x, Y: y, Z: z}
}

// Equal reports whether all three components match.
func (c Coord3D) Equal(o Coord3D) bool {
	return c.X == o.X && c.Y == o.Y && c.Z == o.Z
}

// NotEqual is the negation of Equal.
func (c Coord3D) NotEqual(o Coord3D) bool {
	return c.X != o.X || c.Y != o.Y || c.Z != o.Z
}

// Less orders coordinates lexicographically by (X, Y, Z).
func (c Coord3D) Less(o Coord3D) bool {
	return c.X < o.X || (c.X == o.X && (c.Y < o.Y || (c.Y == o.Y && c.Z < o.Z)))
}

// Compare returns -1, 0 or +1 following the Less order.
// Suitable for slices.SortFunc and slices.BinarySearchFunc.
func Compare(a, b Coord3D) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// Add returns c + o.
func (c Coord3D) Add(o Coord3D) Coord3D {
	return Coord3D{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns c - o.
func (c Coord3D) Sub(o Coord3D) Coord3D {
	return Coord3D{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Neg returns -c.
func (c Coord3D) Neg() Coord3D {
	return Coord3D{X: -c.X, Y: -c.Y, Z: -c.Z}
}

// Div divides each component by s, truncating toward zero.
// s == 0 panics (integer divide by zero); callers must guard.
func (c Coord3D) Div(s int32) Coord3D {
	return Coord3D{X: c.X / s, Y: c.Y / s, Z: c.Z / s}
}

// Mod wraps c into the extent b: each component lands in [0, b).
// Used for toroidal lattice addressing, e.g. (-1, 5, 2).Mod(4, 4, 4) == (3, 1, 2).
// Components of b must be positive; zero panics, negative is undefined.
func (c Coord3D) Mod(b Coord3D) Coord3D {
	return Coord3D{
		X: ((c.X % b.X) + b.X) % b.X,
		Y: ((c.Y % b.Y) + b.Y) % b.Y,
		Z: ((c.Z % b.Z) + b.Z) % b.Z,
	}
}

// InRange reports whether c lies inside a lattice of the given extent,
// i.e. 0 <= c.k < bound.k on every axis.
func (c Coord3D) InRange(bound Coord3D) bool {
	return c.X >= 0 && c.X < bound.X &&
		c.Y >= 0 && c.Y < bound.Y &&
		c.Z >= 0 && c.Z < bound.Z
}

// Size returns X*Y*Z, the cell count when c is an extent.
// No overflow protection.
func (c Coord3D) Size() int32 {
	return c.X * c.Y * c.Z
}

// Length returns the Euclidean norm.
func (c Coord3D) Length() float64 {
	x, y, z := float64(c.X), float64(c.Y), float64(c.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// Get returns the component for dimension 0 (X), 1 (Y) or 2 (Z).
func (c Coord3D) Get(dimension int) (int32, error) {
	switch dimension {
	case 0:
		return c.X, nil
	case 1:
		return c.Y, nil
	case 2:
		return c.Z, nil
	default:
		return 0, fmt.Errorf("get dimension %d: %w", dimension, ErrInvalidDimension)
	}
}

// Set stores v into dimension 0 (X), 1 (Y) or 2 (Z).
// On error the receiver is left unchanged.
func (c *Coord3D) Set(dimension int, v int32) error {
	switch dimension {
	case 0:
		c.X = v
	case 1:
		c.Y = v
	case 2:
		c.Z = v
	default:
		return fmt.Errorf("set dimension %d: %w", dimension, ErrInvalidDimension)
	}
	return nil
}

// String formats c as "(x, y, z)". Write-only, not meant for parsing.
func (c Coord3D) String() string {
	// Hot in debug logging; avoid fmt.Sprintf.
	b := make([]byte, 0, 40)
	b = append(b, '(')
	b = strconv.AppendInt(b, int64(c.X), 10)
	b = append(b, ", "...)
	b = strconv.AppendInt(b, int64(c.Y), 10)
	b = append(b, ", "...)
	b = strconv.AppendInt(b, int64(c.Z), 10)
	b = append(b, ')')
	return string(b)
}
