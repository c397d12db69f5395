package bankaccount

import (
	"testing"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/weavetest"
	"github.com/iov-one/jointbank/weavetest/assert"
)

func TestValidateMsg(t *testing.T) {
	a, b, c, d := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()

	cases := map[string]struct {
		msg     jointbank.Msg
		wantErr *errors.Error
	}{
		"create single owner account": {
			msg: &CreateAccountMsg{},
		},
		"create four owner account": {
			msg: &CreateAccountMsg{OtherOwners: []jointbank.Address{a, b, c}},
		},
		"create with five owners": {
			msg:     &CreateAccountMsg{OtherOwners: []jointbank.Address{a, b, c, d}},
			wantErr: ErrTooManyOwners,
		},
		"create with duplicated owner": {
			msg:     &CreateAccountMsg{OtherOwners: []jointbank.Address{a, b, a}},
			wantErr: ErrDuplicateOwner,
		},
		"create with opaque owner": {
			msg: &CreateAccountMsg{OtherOwners: []jointbank.Address{a, jointbank.Address{0x01}}},
		},
		"create with empty owner": {
			msg:     &CreateAccountMsg{OtherOwners: []jointbank.Address{a, nil}},
			wantErr: errors.ErrEmpty,
		},
		"deposit": {
			msg: &DepositMsg{AccountID: 3, Amount: 1},
		},
		"deposit nothing": {
			msg:     &DepositMsg{AccountID: 3},
			wantErr: ErrInvalidAmount,
		},
		"request": {
			msg: &RequestWithdrawMsg{Amount: 10},
		},
		"request nothing": {
			msg:     &RequestWithdrawMsg{AccountID: 1},
			wantErr: ErrInvalidAmount,
		},
		"approve": {
			msg: &ApproveWithdrawMsg{AccountID: 1, WithdrawID: 2},
		},
		"withdraw": {
			msg: &WithdrawMsg{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.msg.Validate())
		})
	}
}

func TestMsgSerialization(t *testing.T) {
	a := weavetest.NewAddress()
	msg := &CreateAccountMsg{OtherOwners: []jointbank.Address{a}}
	raw, err := msg.Marshal()
	assert.Nil(t, err)

	var got CreateAccountMsg
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, []jointbank.Address{a}, got.OtherOwners)
	assert.Equal(t, "bankaccount/create", got.Path())
}
