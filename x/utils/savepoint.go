package utils

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Savepoint runs the next handler in a cache wrap of the store. Its writes
// reach the store only when the handler succeeds.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ jointbank.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is inactive until OnCheck or
// OnDeliver enables it.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *jointbank.CheckResult
	err := WithSavepoint(store, func(db jointbank.KVStore) error {
		var err error
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *jointbank.DeliverResult
	err := WithSavepoint(store, func(db jointbank.KVStore) error {
		var err error
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// WithSavepoint calls fn with a cache wrap of the store. The cache is
// written to the store only if fn succeeds, otherwise every write made by
// fn is discarded. A store that cannot be cache wrapped is passed as is.
func WithSavepoint(store jointbank.KVStore, fn func(jointbank.KVStore) error) error {
	cstore, ok := store.(jointbank.CacheableKVStore)
	if !ok {
		return fn(store)
	}

	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
