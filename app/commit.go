package app

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// CommitStore keeps the committed state of a CommitKVStore together with
// the two caches that CheckTx and DeliverTx write to between commits.
type CommitStore struct {
	committed jointbank.CommitKVStore
	deliver   jointbank.KVCacheWrap
	check     jointbank.KVCacheWrap
}

// NewCommitStore loads the latest version of store. It panics when the
// version cannot be loaded.
func NewCommitStore(store jointbank.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the height and hash of the last commit.
func (cs *CommitStore) CommitInfo() (jointbank.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit writes the deliver cache into the store and persists a new
// version. Check state is dropped and both caches start over from the new
// version.
func (cs *CommitStore) Commit() (jointbank.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return jointbank.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() jointbank.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() jointbank.CacheableKVStore {
	return cs.deliver
}

// CommittedStore returns a cache wrap over the last committed state. Any
// write to it is dropped.
func (cs *CommitStore) CommittedStore() jointbank.KVCacheWrap {
	return cs.committed.CacheWrap()
}

// chainIDKey lives in the "_jb:" namespace reserved for application data.
var chainIDKey = []byte("_jb:chainID")

// mustLoadChainID returns the stored chain id, or an empty string. It
// panics on a store failure.
func mustLoadChainID(kv jointbank.ReadOnlyKVStore) string {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID writes the chain id once. A second write or an invalid id is
// an error.
func saveChainID(kv jointbank.KVStore, chainID string) error {
	if !jointbank.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chainId")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "can't modify chain id after genesis init")
	}
	return errors.Wrap(kv.Set(chainIDKey, []byte(chainID)), "save chainId")
}
