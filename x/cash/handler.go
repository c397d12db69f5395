package cash

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x"
)

// RegisterRoutes registers the handlers of this extension. Wallets held by
// any of the custodians cannot be used by a send message.
func RegisterRoutes(r jointbank.Registry, auth x.Authenticator, control Controller, custodians ...Custodian) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control, custodians...))
}

// Custodian is implemented by extensions that keep value in a wallet on
// behalf of others and move it with their own rules.
type Custodian interface {
	Holds(db jointbank.ReadOnlyKVStore, addr jointbank.Address) (bool, error)
}

// RegisterQuery exposes the wallets under "/wallets".
func RegisterQuery(qr jointbank.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}

// SendHandler transfers value between wallets. The source must sign the
// transaction.
type SendHandler struct {
	auth       x.Authenticator
	control    Controller
	custodians []Custodian
}

var _ jointbank.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller, custodians ...Custodian) SendHandler {
	return SendHandler{auth: auth, control: control, custodians: custodians}
}

// Check validates the message and its signature. Balances are verified on
// delivery only.
func (h SendHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, err := h.load(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: sendTxCost}, nil
}

func (h SendHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	msg, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &jointbank.DeliverResult{}, nil
}

func (h SendHandler) load(ctx jointbank.Context, db jointbank.ReadOnlyKVStore, tx jointbank.Tx) (*SendMsg, error) {
	var msg *SendMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source principal missing")
	}
	for _, c := range h.custodians {
		for _, addr := range []jointbank.Address{msg.Source, msg.Destination} {
			held, err := c.Holds(db, addr)
			if err != nil {
				return nil, errors.Wrap(err, "custody")
			}
			if held {
				return nil, errors.Wrapf(errors.ErrUnauthorized, "wallet %s is held in custody", addr)
			}
		}
	}
	return msg, nil
}
