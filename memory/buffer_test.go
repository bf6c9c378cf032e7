package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/cdata/errors"
)

func TestBuffer_ReadWrite(t *testing.T) {
	buf := NewBuffer(0x1000, 8)

	require.NoError(t, buf.Write(0x1002, []byte{0xaa, 0xbb}))
	data, err := buf.Read(0x1000, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0xaa, 0xbb}, data)
	assert.Equal(t, uint64(8), buf.Size())

	tests := []struct {
		name string
		addr uint64
		n    uint32
	}{
		{"below base", 0xfff, 1},
		{"past end", 0x1007, 2},
		{"far", 0xffffffffffffffff, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buf.Read(tt.addr, tt.n)
			require.Error(t, err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.KindOutOfBounds, e.Kind)
			assert.Equal(t, tt.addr, e.Value)

			err = buf.Write(tt.addr, make([]byte, tt.n))
			assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))
		})
	}
}

func TestArena(t *testing.T) {
	buf := NewBuffer(0x1001, 32)
	arena := NewArena(buf)

	a, err := arena.Alloc(3, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1001), a)

	b, err := arena.Alloc(8, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1008), b)
	assert.Equal(t, uint64(15), arena.Used())

	_, err = arena.Alloc(64, 1)
	assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))

	_, err = arena.Alloc(1, 3)
	assert.True(t, errors.IsKind(err, errors.KindInvalidData))

	arena.Reset()
	c, err := arena.Alloc(1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1001), c)
}
