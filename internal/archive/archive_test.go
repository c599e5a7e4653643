package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/lattice3d/internal/packet"
)

// triple visits three fields the same way a coordinate does.
type triple struct{ a, b, c int32 }

func (t *triple) visit(ar Archive) error {
	if err := ar.Int32("x", &t.a); err != nil {
		return err
	}
	if err := ar.Int32("y", &t.b); err != nil {
		return err
	}
	return ar.Int32("z", &t.c)
}

func TestBinaryRoundTrip(t *testing.T) {
	in := triple{a: -5, b: 0, c: 1 << 20}

	w := packet.NewWriter(12)
	require.NoError(t, in.visit(NewBinaryWriter(w)))
	assert.Equal(t, 12, w.Len())

	var out triple
	r := packet.NewReader(w.Bytes())
	require.NoError(t, out.visit(NewBinaryReader(r)))
	assert.Equal(t, in, out)
	assert.Equal(t, 0, r.Remaining())
}

func TestBinaryReader_ShortData(t *testing.T) {
	var out triple
	err := out.visit(NewBinaryReader(packet.NewReader([]byte{1, 0, 0, 0, 2, 0, 0, 0})))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"z"`)
}

func TestNodeWriter_FieldOrder(t *testing.T) {
	in := triple{a: 1, b: -2, c: 3}

	nw := NewNodeWriter(yaml.FlowStyle)
	require.NoError(t, in.visit(nw))

	out, err := yaml.Marshal(nw.Node())
	require.NoError(t, err)
	assert.Equal(t, "{x: 1, y: -2, z: 3}\n", string(out))
}

func TestNodeRoundTrip(t *testing.T) {
	in := triple{a: 7, b: 8, c: -9}

	nw := NewNodeWriter(0)
	require.NoError(t, in.visit(nw))

	nr, err := NewNodeReader(nw.Node())
	require.NoError(t, err)

	var out triple
	require.NoError(t, out.visit(nr))
	assert.Equal(t, in, out)
}

func TestNodeReader(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    triple
		wantErr error
	}{
		{
			name: "block mapping",
			doc:  "x: 1\ny: 2\nz: 3\n",
			want: triple{1, 2, 3},
		},
		{
			name: "keys out of order",
			doc:  "{z: 3, x: 1, y: 2}",
			want: triple{1, 2, 3},
		},
		{
			name:    "missing field",
			doc:     "{x: 1, y: 2}",
			wantErr: ErrMissingField,
		},
		{
			name:    "sequence is not a mapping",
			doc:     "[1, 2, 3]",
			wantErr: ErrNotMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &doc))

			nr, err := NewNodeReader(&doc)
			if err == nil {
				var got triple
				err = got.visit(nr)
				if tt.wantErr == nil {
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return
				}
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNodeReader_NotAnInteger(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("{x: 1, y: abc, z: 3}"), &doc))

	nr, err := NewNodeReader(&doc)
	require.NoError(t, err)

	var got triple
	err = got.visit(nr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "y"`)
}

func TestNewNodeReader_Nil(t *testing.T) {
	_, err := NewNodeReader(nil)
	assert.ErrorIs(t, err, ErrNotMapping)
}
