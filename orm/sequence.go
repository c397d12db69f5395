package orm

import (
	"encoding/binary"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Sequence is a persistent counter. Values grow both as integers and in
// byte order of their 8 byte big endian encoding.
type Sequence struct {
	id []byte
}

// NewSequence returns the counter called name that belongs to bucket.
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the encoded new value.
func (s *Sequence) NextVal(db jointbank.KVStore) ([]byte, error) {
	val, err := s.advance(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt advances the counter and returns the new value, starting at 1.
func (s *Sequence) NextInt(db jointbank.KVStore) (int64, error) {
	return s.advance(db)
}

// NextID hands out identifiers starting at 0. Each call returns the value
// the counter had before it was advanced.
func (s *Sequence) NextID(db jointbank.KVStore) (uint64, error) {
	val, err := s.advance(db)
	if err != nil {
		return 0, err
	}
	return uint64(val - 1), nil
}

// Latest returns the current counter value without changing it.
func (s *Sequence) Latest(db jointbank.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, err
	}
	return DecodeSequence(raw)
}

func (s *Sequence) advance(db jointbank.KVStore) (int64, error) {
	cur, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	cur++
	if err := db.Set(s.id, EncodeSequence(cur)); err != nil {
		return 0, err
	}
	return cur, nil
}

// DecodeSequence reads a stored counter value. Nil decodes to zero.
func DecodeSequence(raw []byte) (int64, error) {
	switch len(raw) {
	case 0:
		if raw == nil {
			return 0, nil
		}
	case 8:
		return int64(binary.BigEndian.Uint64(raw)), nil
	}
	return 0, errors.Wrapf(errors.ErrState, "sequence value must be 8 bytes, got %d", len(raw))
}

// EncodeSequence returns the 8 byte big endian form of val.
func EncodeSequence(val int64) []byte {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(val))
	return raw[:]
}
