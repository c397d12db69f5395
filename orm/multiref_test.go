package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiRefAdd(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"))
	require.NoError(t, err)

	require.NoError(t, m.Add([]byte("b")))
	require.NoError(t, m.Add([]byte("d")))
	assert.Error(t, m.Add([]byte("a")))

	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c"), []byte("d")}, m.Refs)
	assert.NoError(t, m.Validate())
}

func TestMultiRefRemove(t *testing.T) {
	m, err := NewMultiRef([]byte("a"), []byte("b"))
	require.NoError(t, err)

	assert.Error(t, m.Remove([]byte("x")))
	require.NoError(t, m.Remove([]byte("a")))
	require.NoError(t, m.Remove([]byte("b")))
	assert.Error(t, m.Validate())
}

func TestMultiRefCodec(t *testing.T) {
	m, err := NewMultiRef([]byte{0, 0, 0, 1}, []byte{0, 0, 0, 2})
	require.NoError(t, err)

	raw, err := m.Marshal()
	require.NoError(t, err)

	var got MultiRef
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, m.Refs, got.Refs)

	cpy := got.Copy().(*MultiRef)
	cpy.Refs[0] = []byte("changed")
	assert.Equal(t, []byte{0, 0, 0, 1}, got.Refs[0])
}
