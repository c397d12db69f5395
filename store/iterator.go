package store

import (
	"bytes"

	"github.com/iov-one/jointbank/errors"
)

// mergeIterator combines a snapshot of cached entries with the iterator of
// the parent store. For keys present in both, the cached entry wins.
type mergeIterator struct {
	cached  []entry
	parent  Iterator
	head    *Model
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cached:  cached,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.pull(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

// pull loads the next parent entry into head. head is nil once the parent
// is exhausted.
func (it *mergeIterator) pull() error {
	key, value, err := it.parent.Next()
	switch {
	case err == nil:
		it.head = &Model{Key: key, Value: value}
	case errors.ErrIteratorDone.Is(err):
		it.head = nil
	default:
		return err
	}
	return nil
}

// before reports whether key a is returned before key b.
func (it *mergeIterator) before(a, b []byte) bool {
	if it.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

func (it *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if len(it.cached) == 0 && it.head == nil {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		if len(it.cached) == 0 || (it.head != nil && it.before(it.head.Key, it.cached[0].key)) {
			m := it.head
			if err := it.pull(); err != nil {
				return nil, nil, err
			}
			return m.Key, m.Value, nil
		}

		e := it.cached[0]
		it.cached = it.cached[1:]
		if it.head != nil && bytes.Equal(it.head.Key, e.key) {
			if err := it.pull(); err != nil {
				return nil, nil, err
			}
		}
		if e.deleted {
			continue
		}
		return e.key, e.value, nil
	}
}

func (it *mergeIterator) Release() {
	it.cached = nil
	it.head = nil
	it.parent.Release()
}
