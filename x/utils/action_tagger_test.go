package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store"
	"github.com/iov-one/jointbank/weavetest"
	"github.com/iov-one/jointbank/weavetest/assert"
	"github.com/iov-one/jointbank/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack jointbank.Handler
		tx    jointbank.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bankaccount/create"}},
			tags:  []common.KVPair{stringTag(utils.ActionKey, "bankaccount/create")},
		},
		"passes through error": {
			stack: weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bankaccount/create"}},
			err:   errors.ErrHuman,
		},
		"message error is returned early": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Err: errors.ErrMsg},
			err:   errors.ErrMsg,
		},
		"tags are additive": {
			stack: weavetest.Decorate(&weavetest.Handler{
				DeliverResult: jointbank.DeliverResult{Tags: []common.KVPair{stringTag("bankaccount.event", "deposit")}},
			}, utils.NewActionTagger()),
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bankaccount/deposit"}},
			tags: []common.KVPair{stringTag("bankaccount.event", "deposit"), stringTag(utils.ActionKey, "bankaccount/deposit")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if tc.err != nil {
				assert.IsErr(t, tc.err, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
