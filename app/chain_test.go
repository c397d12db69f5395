package app

import (
	"context"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/weavetest"
	"github.com/iov-one/jointbank/weavetest/assert"
	"github.com/iov-one/jointbank/x/utils"
)

// panicAtHeight panics when the block height is at or above the given value.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	if h, _ := jointbank.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	if h, _ := jointbank.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	c3 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		c2,
		panicAtHeight(6),
		c3,
	).WithHandler(h)

	bg := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bankaccount/create"}}

	_, err := stack.Check(bg, nil, tx)
	assert.Nil(t, err)
	ctx := jointbank.WithHeight(bg, 4)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.Nil(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// trigger a panic, recovery must turn it into an error
	ctx = jointbank.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrPanic, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// the panic happens before reaching c3
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var missing *weavetest.Decorator
	d := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(nil, d, missing).WithHandler(h)
	_, err := stack.Check(context.Background(), nil, &weavetest.Tx{})
	assert.Nil(t, err)
	assert.Equal(t, 1, d.CallCount())
	assert.Equal(t, 1, h.CallCount())
}
