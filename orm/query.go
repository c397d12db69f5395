package orm

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// consumeIterator will read all remaining data into an
// array and release the iterator
func consumeIterator(itr jointbank.Iterator) ([]jointbank.Model, error) {
	defer itr.Release()

	var res []jointbank.Model
	for {
		switch key, value, err := itr.Next(); {
		case err == nil:
			res = append(res, jointbank.Model{Key: key, Value: value})
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// consumeIteratorKeys returns a list of all keys that given iterator returns.
// This function should be used only for iterators when the result size is
// known to be small as all results are kept in memory.
func consumeIteratorKeys(itr jointbank.Iterator) ([][]byte, error) {
	defer itr.Release()

	var keys [][]byte
	for {
		switch key, _, err := itr.Next(); {
		case err == nil:
			keys = append(keys, key)
		case errors.ErrIteratorDone.Is(err):
			return keys, nil
		default:
			return nil, err
		}
	}
}

// queryPrefix returns all models stored under keys beginning with prefix.
func queryPrefix(db jointbank.ReadOnlyKVStore, prefix []byte) ([]jointbank.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// prefixRange returns the [start, end) range covering every key that begins
// with prefix. An end of nil means the range is open. An empty prefix covers
// the whole store.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		panic("nil key not allowed")
	}
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for n := len(end) - 1; n >= 0; n-- {
		end[n]++
		if end[n] != 0 {
			return prefix, end
		}
	}
	// prefix was all 0xFF
	return prefix, nil
}

// keysIterator returns a fixed list of keys without values.
type keysIterator struct {
	keys [][]byte
}

var _ jointbank.Iterator = (*keysIterator)(nil)

func (it *keysIterator) Next() ([]byte, []byte, error) {
	if len(it.keys) == 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	key := it.keys[0]
	it.keys = it.keys[1:]
	return key, nil, nil
}

func (keysIterator) Release() {}

// failedIterator returns the error it was created with on every call.
type failedIterator struct {
	err error
}

var _ jointbank.Iterator = (*failedIterator)(nil)

func (it *failedIterator) Next() ([]byte, []byte, error) {
	return nil, nil, it.err
}

func (failedIterator) Release() {}
