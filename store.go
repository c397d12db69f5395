package jointbank

// ReadOnlyKVStore gives read access to a key value store. Nil keys are not
// allowed and make implementations panic.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist.
	Get(key []byte) ([]byte, error)

	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order, with the
	// same restrictions as Iterator.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by KVStore and Batch. Implementations
// must not modify the given slices.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that applies its operations on Write.
	NewBatch() Batch
}

// Batch collects writes and applies them at once.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator returns the entries of a key range one by one.
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Release()
//   for {
//     key, value, err := it.Next()
//     if errors.ErrIteratorDone.Is(err) {
//       break
//     }
//     ...
//   }
type Iterator interface {
	// Next returns the following entry or errors.ErrIteratorDone when the
	// range is exhausted.
	Next() (key, value []byte, err error)

	// Release frees the resources of the iterator.
	Release()
}

// CacheableKVStore can stack a cache of uncommitted writes on top of
// itself, like a database SAVEPOINT.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes on top of a parent store. Reads see the cached
// writes. Write applies them to the parent, Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore

	Write() error
	Discard()
}

// CommitKVStore is a versioned store persisting state to disk. Changes are
// made in a CacheWrap and become a new version on Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit persists a new version.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the newest stable version from disk.
	LoadLatestVersion() error

	// LatestVersion returns the identity of the newest version.
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by height and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
