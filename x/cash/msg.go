package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

// Ensure we implement the Msg interface
var _ jointbank.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves value between two wallets.
type SendMsg struct {
	Source      jointbank.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination jointbank.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string            `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

type sendMsgWire SendMsg

func (m *sendMsgWire) Reset()         { *m = sendMsgWire{} }
func (m *sendMsgWire) String() string { return proto.CompactTextString(m) }
func (*sendMsgWire) ProtoMessage()    {}

// Marshal serializes the message with protobuf.
func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgWire)(m))
}

// Unmarshal loads the message from its protobuf representation.
func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgWire)(m))
}

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrState, "memo too long")
	}
	return nil
}
