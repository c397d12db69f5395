package store

import "github.com/iov-one/jointbank"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = jointbank.ReadOnlyKVStore
type SetDeleter = jointbank.SetDeleter
type KVStore = jointbank.KVStore
type Batch = jointbank.Batch
type Iterator = jointbank.Iterator
type CacheableKVStore = jointbank.CacheableKVStore
type KVCacheWrap = jointbank.KVCacheWrap
type CommitKVStore = jointbank.CommitKVStore
type CommitID = jointbank.CommitID
type Model = jointbank.Model

// Pair constructs a model from a key-value pair
var Pair = jointbank.Pair
