package app

import (
	"context"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/weavetest"
	"github.com/iov-one/jointbank/weavetest/assert"
)

func TestRouterSuccess(t *testing.T) {
	const path = "bankaccount/deposit"

	var (
		msg     = &weavetest.Msg{RoutePath: path}
		handler = &weavetest.Handler{}
		r       = NewRouter()
	)

	r.Handle(path, handler)

	if _, err := r.Check(context.TODO(), nil, &weavetest.Tx{Msg: msg}); err != nil {
		t.Fatalf("check failed: %s", err)
	}
	if _, err := r.Deliver(context.TODO(), nil, &weavetest.Tx{Msg: msg}); err != nil {
		t.Fatalf("delivery failed: %s", err)
	}
	if n := handler.CallCount(); n != 2 {
		t.Fatalf("want 2 calls, got %d", n)
	}
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()

	msg := &weavetest.Msg{RoutePath: "bankaccount/unknown"}

	_, err := r.Check(context.TODO(), nil, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(context.TODO(), nil, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterBrokenTx(t *testing.T) {
	r := NewRouter()
	_, err := r.Deliver(context.TODO(), nil, &weavetest.Tx{Err: errors.ErrType})
	assert.IsErr(t, errors.ErrType, err)
}

func TestRouterInvalidRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle("bankaccount/create", &weavetest.Handler{})

	assert.Panics(t, func() { r.Handle("bankaccount/create", &weavetest.Handler{}) })
	assert.Panics(t, func() { r.Handle("bank:7", &weavetest.Handler{}) })
}
