package store

import (
	"github.com/iov-one/jointbank/errors"
)

// SliceIterator iterates over a preloaded list of models.
type SliceIterator struct {
	data []Model
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over data, in the given order.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Next() (key, value []byte, err error) {
	if len(s.data) == 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.data[0]
	s.data = s.data[1:]
	return m.Key, m.Value, nil
}

func (s *SliceIterator) Release() {
	s.data = nil
}

// EmptyKVStore holds no data and ignores all writes. It is the bottom layer
// of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failing write leaves the previous ones applied, so use it only in front
// of in memory stores.
type NonAtomicBatch struct {
	out     SetDeleter
	pending []pendingWrite
}

var _ Batch = (*NonAtomicBatch)(nil)

type pendingWrite struct {
	key   []byte
	value []byte
	del   bool
}

// NewNonAtomicBatch returns an empty batch writing to out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.pending = append(b.pending, pendingWrite{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.pending = append(b.pending, pendingWrite{key: key, del: true})
	return nil
}

// Write flushes all recorded writes and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, w := range b.pending {
		var err error
		if w.del {
			err = b.out.Delete(w.key)
		} else {
			err = b.out.Set(w.key, w.value)
		}
		if err != nil {
			return err
		}
	}
	b.pending = nil
	return nil
}

// Len returns the number of writes waiting for Write.
func (b *NonAtomicBatch) Len() int {
	return len(b.pending)
}
