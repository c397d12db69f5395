package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/jointbank/errors"
)

// btreeDegree is the degree of every cache tree. Caches are short lived and
// small, a low degree keeps inserts cheap.
const btreeDegree = 2

// BTreeCacheable adds a btree based cache wrap to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that can be written to this store or dropped.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, nil)
}

// MemStore returns an in memory store without persistence, useful for
// tests and throw away state.
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

// BTreeCacheWrap keeps uncommitted writes in a btree on top of a parent
// store. Reads fall through to the parent for keys the cache does not know.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent. Nothing reaches parent
// until Write is called. free may be nil, nested caches share it to reuse
// tree nodes.
func NewBTreeCacheWrap(parent KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(btreeDegree, free),
		free:   free,
		parent: parent,
	}
}

// CacheWrap stacks another cache on top of this one.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.free)
}

// NewBatch returns a batch writing into this cache.
func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write applies the final state of every cached key to the parent in a
// single batch and empties the cache.
func (c BTreeCacheWrap) Write() error {
	defer c.Discard()

	batch := c.parent.NewBatch()
	var err error
	c.tree.Ascend(func(i btree.Item) bool {
		e := i.(entry)
		if e.deleted {
			err = batch.Delete(e.key)
		} else {
			err = batch.Set(e.key, e.value)
		}
		return err == nil
	})
	if err != nil {
		return errors.Wrap(err, "cache write")
	}
	return batch.Write()
}

// Discard drops all cached writes.
func (c BTreeCacheWrap) Discard() {
	c.tree.Clear(true)
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return nil
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return nil
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := c.lookup(key); ok {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

func (c BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := c.tree.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// Iterator returns keys of [start, end) in ascending order, merging the
// cache with the parent store.
func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(c.snapshot(start, end, false), parent, false)
}

// ReverseIterator returns keys of [start, end) in descending order, merging
// the cache with the parent store.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(c.snapshot(start, end, true), parent, true)
}

// snapshot copies the cached entries of [start, end). A nil bound means
// unbounded.
func (c BTreeCacheWrap) snapshot(start, end []byte, reverse bool) []entry {
	var res []entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		c.tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// entry is a cached write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
