package utils

import (
	"github.com/iov-one/jointbank"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key holding the path of the delivered message.
const ActionKey = "action"

// ActionTagger tags every successful DeliverTx with the message path, so
// clients can search and subscribe by message kind.
type ActionTagger struct{}

var _ jointbank.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver fails before calling next if the message cannot be read.
func (ActionTagger) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tag := common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())}
	res.Tags = append(res.Tags, tag)
	return res, nil
}
