package orm

import (
	"reflect"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Model is an entity that a ModelBucket can store.
type Model interface {
	jointbank.Persistent
	Validate() error
	Copy() CloneableData
}

// ModelBucket stores Models directly, hiding the Object wrapping of the
// underlying Bucket.
type ModelBucket interface {
	// One loads the entity stored under key into dest. ErrNotFound is
	// returned when there is none, ErrType when dest has the wrong type.
	One(db jointbank.ReadOnlyKVStore, key []byte, dest Model) error

	// Put validates m and saves it under key.
	Put(db jointbank.KVStore, key []byte, m Model) error

	// Delete removes the entity stored under key, or returns ErrNotFound.
	Delete(db jointbank.KVStore, key []byte) error

	// Has returns nil when an entity is stored under key, ErrNotFound
	// otherwise.
	Has(db jointbank.ReadOnlyKVStore, key []byte) error

	// ByIndex returns the primary keys indexed under value.
	ByIndex(db jointbank.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// Register exposes the bucket in the query router.
	Register(name string, r jointbank.QueryRouter)
}

// NewModelBucket returns a ModelBucket backed by b.
func NewModelBucket(b Bucket) ModelBucket {
	return &modelBucket{bucket: b}
}

type modelBucket struct {
	bucket Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db jointbank.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.bucket.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	src := reflect.ValueOf(obj.Value())
	dst := reflect.ValueOf(dest)
	if !src.Type().AssignableTo(dst.Type()) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", obj.Value(), dest)
	}
	dst.Elem().Set(src.Elem())
	return nil
}

func (mb *modelBucket) Put(db jointbank.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	if err := mb.bucket.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db jointbank.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.bucket.Delete(db, key)
}

func (mb *modelBucket) Has(db jointbank.ReadOnlyKVStore, key []byte) error {
	// the store panics on nil keys
	if key == nil {
		return errors.ErrNotFound
	}
	switch ok, err := mb.bucket.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) ByIndex(db jointbank.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	return mb.bucket.IndexKeys(db, indexName, value)
}

func (mb *modelBucket) Register(name string, r jointbank.QueryRouter) {
	mb.bucket.Register(name, r)
}
