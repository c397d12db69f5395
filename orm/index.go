package orm

import (
	"bytes"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Index is a secondary index on bucket data.
type Index interface {
	jointbank.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update must be called whenever an entity of the bucket changes.
	// A nil prev is an insert, a nil save is a delete. Both being nil or
	// having different keys is an error.
	Update(db jointbank.KVStore, prev Object, save Object) error

	// Keys iterates over the primary keys of all entities indexed under
	// given value. Iterator values are always nil.
	Keys(db jointbank.ReadOnlyKVStore, value []byte) jointbank.Iterator
}

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given object
type MultiKeyIndexer func(Object) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(obj Object) ([][]byte, error) {
		key, err := indexer(obj)
		if err != nil || key == nil {
			return nil, err
		}
		return [][]byte{key}, nil
	}
}

// compactIndex keeps every primary key indexed under one value in a single
// db entry. A unique index stores the raw primary key, others a MultiRef.
// The collection indexed under a single value is expected to be small, for
// example the accounts of one owner.
type compactIndex struct {
	name   string
	prefix []byte
	unique bool
	index  MultiKeyIndexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewMultiKeyIndex returns an index that stores references calculated by
// indexer. refKey turns a reference into the absolute db key of the indexed
// entity. When unique is set, a value can reference a single entity only.
func NewMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		prefix: []byte("_i." + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i compactIndex) Name() string {
	return i.name
}

func (i compactIndex) dbKey(value []byte) []byte {
	out := make([]byte, 0, len(i.prefix)+len(value))
	return append(append(out, i.prefix...), value...)
}

// readRefs decodes a stored index entry into the list of references.
func (i compactIndex) readRefs(raw []byte) ([][]byte, error) {
	if raw == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var set MultiRef
	if err := set.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "index %s: %s", i.name, err)
	}
	return set.Refs, nil
}

func (i compactIndex) Update(db jointbank.KVStore, prev Object, save Object) error {
	if prev == nil && save == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	}
	if prev != nil && save != nil && !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}

	var prevValues, saveValues [][]byte
	var pk []byte
	if prev != nil {
		values, err := i.index(prev)
		if err != nil {
			return err
		}
		prevValues, pk = values, prev.Key()
	}
	if save != nil {
		values, err := i.index(save)
		if err != nil {
			return err
		}
		saveValues, pk = values, save.Key()
	}

	added := subtract(saveValues, prevValues)
	if i.unique {
		for _, v := range added {
			if len(v) == 0 {
				continue
			}
			taken, err := db.Has(i.dbKey(v))
			if err != nil {
				return err
			}
			if taken {
				return errors.Wrap(errors.ErrDuplicate, i.name)
			}
		}
	}
	for _, v := range subtract(prevValues, saveValues) {
		if err := i.unlink(db, v, pk); err != nil {
			return err
		}
	}
	for _, v := range added {
		if err := i.link(db, v, pk); err != nil {
			return err
		}
	}
	return nil
}

// link adds pk to the references stored under value.
func (i compactIndex) link(db jointbank.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.dbKey(value)
	if i.unique {
		return db.Set(key, pk)
	}
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	refs, err := i.readRefs(raw)
	if err != nil {
		return err
	}
	set := MultiRef{Refs: refs}
	if err := set.Add(pk); err != nil {
		return err
	}
	return i.writeSet(db, key, &set)
}

// unlink removes pk from the references stored under value.
func (i compactIndex) unlink(db jointbank.KVStore, value, pk []byte) error {
	if len(value) == 0 {
		return nil
	}
	key := i.dbKey(value)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s has no entry to remove", i.name)
	}
	if i.unique {
		if !bytes.Equal(raw, pk) {
			return errors.Wrapf(errors.ErrNotFound, "index %s references another object", i.name)
		}
		return db.Delete(key)
	}
	refs, err := i.readRefs(raw)
	if err != nil {
		return err
	}
	set := MultiRef{Refs: refs}
	if err := set.Remove(pk); err != nil {
		return err
	}
	if len(set.Refs) == 0 {
		return db.Delete(key)
	}
	return i.writeSet(db, key, &set)
}

func (i compactIndex) writeSet(db jointbank.KVStore, key []byte, set *MultiRef) error {
	raw, err := set.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal index")
	}
	return db.Set(key, raw)
}

func (i compactIndex) Keys(db jointbank.ReadOnlyKVStore, value []byte) jointbank.Iterator {
	raw, err := db.Get(i.dbKey(value))
	if err != nil {
		return &failedIterator{err: err}
	}
	if raw == nil {
		return &failedIterator{err: errors.ErrIteratorDone}
	}
	refs, err := i.readRefs(raw)
	if err != nil {
		return &failedIterator{err: err}
	}
	return &keysIterator{keys: refs}
}

// Query resolves index values into the stored entities they reference.
func (i compactIndex) Query(db jointbank.ReadOnlyKVStore, mod string, data []byte) ([]jointbank.Model, error) {
	var refs [][]byte
	switch mod {
	case jointbank.KeyQueryMod:
		keys, err := consumeIteratorKeys(i.Keys(db, data))
		if err != nil {
			return nil, err
		}
		refs = keys
	case jointbank.PrefixQueryMod:
		entries, err := queryPrefix(db, i.dbKey(data))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			keys, err := i.readRefs(e.Value)
			if err != nil {
				return nil, err
			}
			refs = append(refs, keys...)
		}
	default:
		return nil, errors.Wrap(errors.ErrInput, "unknown query modifier: "+mod)
	}

	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]jointbank.Model, 0, len(refs))
	for _, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res = append(res, jointbank.Model{Key: key, Value: value})
	}
	return res, nil
}

// subtract returns all elements of minuend that are not in subtrahend.
func subtract(minuend [][]byte, subtrahend [][]byte) [][]byte {
	if minuend == nil {
		return nil
	}
	out := make([][]byte, 0, len(minuend))
	for _, m := range minuend {
		if !containsBytes(subtrahend, m) {
			out = append(out, m)
		}
	}
	return out
}

func containsBytes(set [][]byte, b []byte) bool {
	for _, s := range set {
		if bytes.Equal(s, b) {
			return true
		}
	}
	return false
}
