package dynobj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/wippyai/cdata/errors"
)

const meshSchema = `
types:
  - name: Mesh
    fields:
      - {name: verts, type: "Vec3[3]"}
      - {name: next, type: MeshPtr}
    offsets:
      - {offset: 0, name: tag, type: c_uint}
  - name: MeshPtr
    pointer: {byteness: 4, to: Mesh}
  - name: Vec3
    fields:
      - {name: x, type: c_float}
      - {name: y, type: c_float}
      - {name: z, type: c_float}
  - name: Grid
    fields:
      - {name: cells, type: "c_ubyte[2][4]"}
`

func TestLoadSchema(t *testing.T) {
	rt := New()
	s, err := LoadSchema(rt, []byte(meshSchema))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesh", "MeshPtr", "Vec3", "Grid"}, s.Names())

	mesh, ok := s.Class("Mesh")
	require.True(t, ok)
	assert.Same(t, rt.StructureBase(), mesh.Base())

	fields, _ := mesh.Attr("_fields_")
	verts := fields.(Tuple)[0].(Tuple)
	assert.Equal(t, "verts", verts[0])
	arr := verts[1].(*Class)
	n, _ := arr.Attr("_length_")
	assert.Equal(t, int64(3), n)
	elem, _ := arr.Attr("_type_")
	vec3, _ := s.Class("Vec3")
	assert.Same(t, vec3, elem)

	offs, _ := mesh.Attr("_offsets_")
	assert.Equal(t, Tuple{int64(0), "tag", rt.Scalar("I")}, offs.(Tuple)[0])

	ptr, _ := s.Class("MeshPtr")
	b, _ := ptr.Attr("_byteness_")
	assert.Equal(t, int64(4), b)
	to, _ := ptr.Attr("_type_")
	assert.Same(t, mesh, to)

	grid, _ := s.Class("Grid")
	gf, _ := grid.Attr("_fields_")
	outer := gf.(Tuple)[0].(Tuple)[1].(*Class)
	outerLen, _ := outer.Attr("_length_")
	assert.Equal(t, int64(4), outerLen)
	inner, _ := outer.Attr("_type_")
	innerLen, _ := inner.(*Class).Attr("_length_")
	assert.Equal(t, int64(2), innerLen)

	_, ok = s.Class("Nope")
	assert.False(t, ok)
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind cerrors.Kind
	}{
		{"bad yaml", "types: [", cerrors.KindInvalidData},
		{"unknown name", "types:\n  - name: A\n    fields:\n      - {name: x, type: Missing}\n", cerrors.KindNoType},
		{"malformed expr", "types:\n  - name: A\n    fields:\n      - {name: x, type: \"c_int[\"}\n", cerrors.KindInvalidData},
		{"self by value", "types:\n  - name: A\n    fields:\n      - {name: x, type: A}\n", cerrors.KindInvalidData},
		{"cycle via array", "types:\n  - name: A\n    fields:\n      - {name: b, type: \"B[2]\"}\n  - name: B\n    fields:\n      - {name: a, type: A}\n", cerrors.KindInvalidData},
		{"duplicate", "types:\n  - name: A\n  - name: A\n", cerrors.KindInvalidData},
		{"shadows scalar", "types:\n  - name: c_int\n", cerrors.KindInvalidData},
		{"no name", "types:\n  - fields: []\n", cerrors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchema(New(), []byte(tt.doc))
			require.Error(t, err)
			assert.True(t, cerrors.IsKind(err, tt.kind), "got %v", err)
			var e *cerrors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, cerrors.PhaseSchema, e.Phase)
		})
	}
}

func TestLoadSchemaPointerCycle(t *testing.T) {
	doc := `
types:
  - name: Node
    fields:
      - {name: value, type: c_int}
      - {name: next, type: NodePtr}
  - name: NodePtr
    pointer: {to: Node}
`
	s, err := LoadSchema(New(), []byte(doc))
	require.NoError(t, err)
	ptr, _ := s.Class("NodePtr")
	_, ok := ptr.Attr("_byteness_")
	assert.False(t, ok)
}
