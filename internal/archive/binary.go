package archive

import (
	"fmt"

	"github.com/udisondev/lattice3d/internal/packet"
)

// BinaryWriter writes fields as consecutive little-endian int32 values.
// Field names are not encoded, so readers must visit fields in the same order.
type BinaryWriter struct {
	w *packet.Writer
}

// NewBinaryWriter wraps w.
func NewBinaryWriter(w *packet.Writer) *BinaryWriter {
	return &BinaryWriter{w: w}
}

// Int32 appends *v.
func (a *BinaryWriter) Int32(_ string, v *int32) error {
	a.w.WriteInt(*v)
	return nil
}

// BinaryReader reads fields written by BinaryWriter.
type BinaryReader struct {
	r *packet.Reader
}

// NewBinaryReader wraps r.
func NewBinaryReader(r *packet.Reader) *BinaryReader {
	return &BinaryReader{r: r}
}

// Int32 reads the next value into *v.
func (a *BinaryReader) Int32(name string, v *int32) error {
	val, err := a.r.ReadInt()
	if err != nil {
		return fmt.Errorf("reading field %q: %w", name, err)
	}
	*v = val
	return nil
}
