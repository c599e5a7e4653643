package model

import (
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/lattice3d/internal/packet"
)

// Checkpoint is a named snapshot of lattice positions.
// Only the three integer fields of each coordinate are persisted.
type Checkpoint struct {
	Name      string
	Extent    Coord3D
	Cells     []Coord3D
	Digest    []byte // BLAKE2b-256, see CheckpointDigest
	CreatedAt time.Time
}

// NewCheckpoint создаёт Checkpoint и вычисляет digest.
// cells is copied.
func NewCheckpoint(name string, extent Coord3D, cells []Coord3D) *Checkpoint {
	cp := &Checkpoint{
		Name:   name,
		Extent: extent,
		Cells:  append([]Coord3D(nil), cells...),
	}
	cp.Digest = CheckpointDigest(cp.Extent, cp.Cells)
	return cp
}

// CheckpointDigest hashes the binary encoding of extent followed by every cell in order.
func CheckpointDigest(extent Coord3D, cells []Coord3D) []byte {
	w := packet.Get()
	defer w.Put()

	extent.AppendBinary(w)
	for _, c := range cells {
		c.AppendBinary(w)
	}

	sum := blake2b.Sum256(w.Bytes())
	return sum[:]
}
