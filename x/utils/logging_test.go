package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/weavetest"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := jointbank.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bankaccount/deposit"}}

	ok := weavetest.Decorate(&weavetest.Handler{
		DeliverResult: jointbank.DeliverResult{Log: "deposited"},
	}, NewLogging())
	if _, err := ok.Deliver(ctx, db, tx); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "deposited") || !strings.Contains(out, "path=bankaccount/deposit") {
		t.Fatalf("unexpected log output: %s", out)
	}

	buf.Reset()
	fail := weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrUnauthorized}, NewLogging())
	if _, err := fail.Deliver(ctx, db, tx); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %v", err)
	}
	out = buf.String()
	if !strings.HasPrefix(out, "E[") || !strings.Contains(out, "unauthorized") {
		t.Fatalf("failure must be logged as an error: %s", out)
	}
}
