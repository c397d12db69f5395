package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/identity"
)

// Tx is the transaction accepted by the node. It declares the calling
// principal and carries exactly one message.
type Tx struct {
	Principal          jointbank.Address               `protobuf:"bytes,1,opt,name=principal,proto3" json:"principal,omitempty"`
	SendMsg            *cash.SendMsg                   `protobuf:"bytes,2,opt,name=send_msg,proto3" json:"send_msg,omitempty"`
	CreateAccountMsg   *bankaccount.CreateAccountMsg   `protobuf:"bytes,3,opt,name=create_account_msg,proto3" json:"create_account_msg,omitempty"`
	DepositMsg         *bankaccount.DepositMsg         `protobuf:"bytes,4,opt,name=deposit_msg,proto3" json:"deposit_msg,omitempty"`
	RequestWithdrawMsg *bankaccount.RequestWithdrawMsg `protobuf:"bytes,5,opt,name=request_withdraw_msg,proto3" json:"request_withdraw_msg,omitempty"`
	ApproveWithdrawMsg *bankaccount.ApproveWithdrawMsg `protobuf:"bytes,6,opt,name=approve_withdraw_msg,proto3" json:"approve_withdraw_msg,omitempty"`
	WithdrawMsg        *bankaccount.WithdrawMsg        `protobuf:"bytes,7,opt,name=withdraw_msg,proto3" json:"withdraw_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var _ jointbank.Tx = (*Tx)(nil)
var _ identity.PrincipalTx = (*Tx)(nil)

type txWire Tx

func (m *txWire) Reset()         { *m = txWire{} }
func (m *txWire) String() string { return proto.CompactTextString(m) }
func (*txWire) ProtoMessage()    {}

// Marshal serializes the transaction with protobuf.
func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txWire)(tx))
}

// Unmarshal loads the transaction from its protobuf representation.
func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txWire)(tx))
}

// TxDecoder creates a Tx and unmarshals bytes into it. Principals sent to
// the node must be well formed addresses.
func TxDecoder(bz []byte) (jointbank.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(tx.Principal) != 0 {
		if err := tx.Principal.Validate(); err != nil {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "invalid principal: %s", err)
		}
	}
	return tx, nil
}

// GetPrincipal returns the declared caller.
func (tx *Tx) GetPrincipal() jointbank.Address {
	return tx.Principal
}

// GetMsg returns the only message set on the transaction.
func (tx *Tx) GetMsg() (jointbank.Msg, error) {
	var msgs []jointbank.Msg
	if tx.SendMsg != nil {
		msgs = append(msgs, tx.SendMsg)
	}
	if tx.CreateAccountMsg != nil {
		msgs = append(msgs, tx.CreateAccountMsg)
	}
	if tx.DepositMsg != nil {
		msgs = append(msgs, tx.DepositMsg)
	}
	if tx.RequestWithdrawMsg != nil {
		msgs = append(msgs, tx.RequestWithdrawMsg)
	}
	if tx.ApproveWithdrawMsg != nil {
		msgs = append(msgs, tx.ApproveWithdrawMsg)
	}
	if tx.WithdrawMsg != nil {
		msgs = append(msgs, tx.WithdrawMsg)
	}

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "exactly one message allowed, got %d", len(msgs))
	}
}

// SetMsg sets the given message on the transaction, clearing any other.
func (tx *Tx) SetMsg(msg jointbank.Msg) error {
	*tx = Tx{Principal: tx.Principal}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.SendMsg = m
	case *bankaccount.CreateAccountMsg:
		tx.CreateAccountMsg = m
	case *bankaccount.DepositMsg:
		tx.DepositMsg = m
	case *bankaccount.RequestWithdrawMsg:
		tx.RequestWithdrawMsg = m
	case *bankaccount.ApproveWithdrawMsg:
		tx.ApproveWithdrawMsg = m
	case *bankaccount.WithdrawMsg:
		tx.WithdrawMsg = m
	default:
		return errors.Wrapf(errors.ErrMsg, "unsupported message %T", msg)
	}
	return nil
}
