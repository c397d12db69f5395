package utils

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Recovery turns a panic further down the stack into an ErrPanic error.
// The panic is logged with the context logger.
type Recovery struct{}

var _ jointbank.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (_ *jointbank.CheckResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (_ *jointbank.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

func logPanic(ctx jointbank.Context, err *error) {
	if errors.ErrPanic.Is(*err) {
		jointbank.GetLogger(ctx).Error("Recovered panic", "err", *err)
	}
}
