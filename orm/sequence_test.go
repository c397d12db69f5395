package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket, name string
		increments   int64
	}{
		"short run":      {"bankacct", "id", 3},
		"other name":     {"bankacct", "other", 11},
		"other bucket":   {"withdraw", "id", 248},
		"continue a run": {"bankacct", "id", 7},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			start, err := s.Latest(db)
			require.NoError(t, err)

			var val []byte
			for i := int64(0); i < tc.increments; i++ {
				prev := val
				val, err = s.NextVal(db)
				require.NoError(t, err)
				if bytes.Compare(val, prev) != 1 {
					t.Fatal("sequence values must grow")
				}
			}

			got, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, start+tc.increments, got)
			assert.Equal(t, EncodeSequence(got), val)
		})
	}
}

func TestSequenceNextID(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("bankacct", "id")
	for want := uint64(0); want < 5; want++ {
		id, err := s.NextID(db)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	v, err = DecodeSequence(EncodeSequence(1 << 40))
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrState.Is(err))
}
