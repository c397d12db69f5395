package bankaccount

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

const (
	pathCreateAccount   = "bankaccount/create"
	pathDeposit         = "bankaccount/deposit"
	pathRequestWithdraw = "bankaccount/request"
	pathApproveWithdraw = "bankaccount/approve"
	pathWithdraw        = "bankaccount/withdraw"
)

var (
	_ jointbank.Msg = (*CreateAccountMsg)(nil)
	_ jointbank.Msg = (*DepositMsg)(nil)
	_ jointbank.Msg = (*RequestWithdrawMsg)(nil)
	_ jointbank.Msg = (*ApproveWithdrawMsg)(nil)
	_ jointbank.Msg = (*WithdrawMsg)(nil)
)

// CreateAccountMsg opens a new account owned by the caller and the other
// owners.
type CreateAccountMsg struct {
	OtherOwners []jointbank.Address `protobuf:"bytes,1,rep,name=other_owners,proto3" json:"other_owners,omitempty"`
}

type createAccountMsgWire CreateAccountMsg

func (m *createAccountMsgWire) Reset()         { *m = createAccountMsgWire{} }
func (m *createAccountMsgWire) String() string { return proto.CompactTextString(m) }
func (*createAccountMsgWire) ProtoMessage()    {}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAccountMsgWire)(m))
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createAccountMsgWire)(m))
}

func (CreateAccountMsg) Path() string {
	return pathCreateAccount
}

// Validate checks the other owners are distinct and within the limit. The
// caller is checked by the handler.
func (m *CreateAccountMsg) Validate() error {
	for i, o := range m.OtherOwners {
		if len(o) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "owner %d", i)
		}
		for _, prev := range m.OtherOwners[:i] {
			if prev.Equals(o) {
				return errors.Wrapf(ErrDuplicateOwner, "owner %d is listed twice", i)
			}
		}
	}
	if n := 1 + len(m.OtherOwners); n > MaxOwners {
		return errors.Wrapf(ErrTooManyOwners, "maximum of %d owners per account, got %d", MaxOwners, n)
	}
	return nil
}

// DepositMsg moves value from the caller into an account.
type DepositMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,proto3" json:"account_id"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

type depositMsgWire DepositMsg

func (m *depositMsgWire) Reset()         { *m = depositMsgWire{} }
func (m *depositMsgWire) String() string { return proto.CompactTextString(m) }
func (*depositMsgWire) ProtoMessage()    {}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsgWire)(m))
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsgWire)(m))
}

func (DepositMsg) Path() string {
	return pathDeposit
}

func (m *DepositMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "deposit")
	}
	return nil
}

// RequestWithdrawMsg opens a withdraw request against an account.
type RequestWithdrawMsg struct {
	AccountID uint64 `protobuf:"varint,1,opt,name=account_id,proto3" json:"account_id"`
	Amount    uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

type requestWithdrawMsgWire RequestWithdrawMsg

func (m *requestWithdrawMsgWire) Reset()         { *m = requestWithdrawMsgWire{} }
func (m *requestWithdrawMsgWire) String() string { return proto.CompactTextString(m) }
func (*requestWithdrawMsgWire) ProtoMessage()    {}

func (m *RequestWithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*requestWithdrawMsgWire)(m))
}

func (m *RequestWithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*requestWithdrawMsgWire)(m))
}

func (RequestWithdrawMsg) Path() string {
	return pathRequestWithdraw
}

func (m *RequestWithdrawMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "withdraw request")
	}
	return nil
}

// ApproveWithdrawMsg approves a withdraw request created by another owner.
type ApproveWithdrawMsg struct {
	AccountID  uint64 `protobuf:"varint,1,opt,name=account_id,proto3" json:"account_id"`
	WithdrawID uint64 `protobuf:"varint,2,opt,name=withdraw_id,proto3" json:"withdraw_id"`
}

type approveWithdrawMsgWire ApproveWithdrawMsg

func (m *approveWithdrawMsgWire) Reset()         { *m = approveWithdrawMsgWire{} }
func (m *approveWithdrawMsgWire) String() string { return proto.CompactTextString(m) }
func (*approveWithdrawMsgWire) ProtoMessage()    {}

func (m *ApproveWithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*approveWithdrawMsgWire)(m))
}

func (m *ApproveWithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*approveWithdrawMsgWire)(m))
}

func (ApproveWithdrawMsg) Path() string {
	return pathApproveWithdraw
}

// Validate accepts any pair of ids, existence is checked by the handler.
func (m *ApproveWithdrawMsg) Validate() error {
	return nil
}

// WithdrawMsg executes an approved withdraw request.
type WithdrawMsg struct {
	AccountID  uint64 `protobuf:"varint,1,opt,name=account_id,proto3" json:"account_id"`
	WithdrawID uint64 `protobuf:"varint,2,opt,name=withdraw_id,proto3" json:"withdraw_id"`
}

type withdrawMsgWire WithdrawMsg

func (m *withdrawMsgWire) Reset()         { *m = withdrawMsgWire{} }
func (m *withdrawMsgWire) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgWire) ProtoMessage()    {}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawMsgWire)(m))
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawMsgWire)(m))
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

// Validate accepts any pair of ids, existence is checked by the handler.
func (m *WithdrawMsg) Validate() error {
	return nil
}
