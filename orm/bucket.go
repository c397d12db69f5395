/*
Package orm maps typed entities onto a key value store.

State space is split into buckets. A bucket keeps a single type of object
under a name prefix, addressed by a primary key. It can maintain secondary
indexes (unique or not) and named sequences for key generation.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// SeqID is the name of the default ID sequence of a bucket.
const SeqID = "id"

var validBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of one type under a common key prefix, together
// with the secondary indexes declared on it. Buckets are meant to be wrapped
// by a type safe layer.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ jointbank.QueryHandler = Bucket{}

// NewBucket returns a bucket that stores clones of proto. It panics when the
// name is not 3 to 10 lowercase letters or underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !validBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket and its indexes in the query router. An empty
// name registers under the bucket name.
func (b Bucket) Register(name string, r jointbank.QueryRouter) {
	if name == "" {
		name = b.name
	}
	path := "/" + name
	r.Register(path, b)
	for iname, idx := range b.indexes {
		r.Register(path+"/"+iname, idx)
	}
}

// Query returns raw entries by primary key or primary key prefix. A missing
// key yields an empty result.
func (b Bucket) Query(db jointbank.ReadOnlyKVStore, mod string, data []byte) ([]jointbank.Model, error) {
	if mod == jointbank.PrefixQueryMod {
		return queryPrefix(db, b.DBKey(data))
	}
	if mod != jointbank.KeyQueryMod {
		return nil, errors.Wrap(errors.ErrInput, "unknown query modifier: "+mod)
	}
	key := b.DBKey(data)
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return nil, err
	}
	return []jointbank.Model{{Key: key, Value: raw}}, nil
}

// DBKey returns the absolute store key of a primary key. The result is
// always a fresh slice.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Get returns the object stored under key, or nil when there is none.
func (b Bucket) Get(db jointbank.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

// Has returns true if an element is stored under the given key.
func (b Bucket) Has(db jointbank.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse builds an object of the bucket type out of a primary key and its
// serialized value.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot unmarshal %s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes obj, keeping all indexes in sync.
func (b Bucket) Save(db jointbank.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal")
	}
	if raw == nil {
		// zero value messages serialize to nothing
		raw = []byte{}
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object stored under key together with its index
// entries.
func (b Bucket) Delete(db jointbank.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) reindex(db jointbank.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// Sequence returns the named sequence of this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket with a single key index added.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex returns a copy of the bucket with an index that can
// reference an object under many values. Registering the same name twice
// panics.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	indexes := map[string]Index{
		name: NewMultiKeyIndex(b.name+"_"+name, indexer, unique, b.DBKey),
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// IndexKeys returns the primary keys of all objects indexed under given
// value, in the byte order of the keys.
func (b Bucket) IndexKeys(db jointbank.ReadOnlyKVStore, name string, value []byte) ([][]byte, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	return consumeIteratorKeys(idx.Keys(db, value))
}

// GetIndexed loads all objects indexed under value by the named index.
func (b Bucket) GetIndexed(db jointbank.ReadOnlyKVStore, name string, value []byte) ([]Object, error) {
	keys, err := b.IndexKeys(db, name, value)
	if err != nil || len(keys) == 0 {
		return nil, err
	}
	objs := make([]Object, 0, len(keys))
	for _, key := range keys {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
