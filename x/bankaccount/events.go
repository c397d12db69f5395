package bankaccount

import (
	"strconv"
	"strings"

	"github.com/iov-one/jointbank"
	"github.com/tendermint/tendermint/libs/common"
)

// Tag keys used to index the transactions of this extension.
const (
	TagEvent     = "bankaccount.event"
	TagAccount   = "bankaccount.account"
	TagOwners    = "bankaccount.owners"
	TagUser      = "bankaccount.user"
	TagWithdraw  = "bankaccount.withdraw"
	TagValue     = "bankaccount.value"
	TagTimestamp = "bankaccount.timestamp"

	ownerListSep = ","
)

// Event is a notification about a completed operation.
type Event interface {
	// Name is the kind of the event, used as the bankaccount.event tag.
	Name() string
	// Tags renders the event as transaction tags.
	Tags() []common.KVPair
}

// AccountCreatedEvent is emitted when an account is opened.
type AccountCreatedEvent struct {
	Owners    []jointbank.Address
	ID        uint64
	Timestamp jointbank.UnixTime
}

func (AccountCreatedEvent) Name() string { return "account_created" }

func (e AccountCreatedEvent) Tags() []common.KVPair {
	owners := make([]string, len(e.Owners))
	for i, o := range e.Owners {
		owners[i] = o.String()
	}
	return []common.KVPair{
		tag(TagEvent, e.Name()),
		tag(TagAccount, strconv.FormatUint(e.ID, 10)),
		tag(TagOwners, strings.Join(owners, ownerListSep)),
		tag(TagTimestamp, strconv.FormatInt(int64(e.Timestamp), 10)),
	}
}

// DepositEvent is emitted when value is deposited into an account.
type DepositEvent struct {
	User      jointbank.Address
	AccountID uint64
	Value     uint64
	Timestamp jointbank.UnixTime
}

func (DepositEvent) Name() string { return "deposit" }

func (e DepositEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag(TagEvent, e.Name()),
		tag(TagUser, e.User.String()),
		tag(TagAccount, strconv.FormatUint(e.AccountID, 10)),
		tag(TagValue, strconv.FormatUint(e.Value, 10)),
		tag(TagTimestamp, strconv.FormatInt(int64(e.Timestamp), 10)),
	}
}

// WithdrawRequestedEvent is emitted when a withdraw request is opened.
type WithdrawRequestedEvent struct {
	User       jointbank.Address
	AccountID  uint64
	WithdrawID uint64
	Amount     uint64
	Timestamp  jointbank.UnixTime
}

func (WithdrawRequestedEvent) Name() string { return "withdraw_requested" }

func (e WithdrawRequestedEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag(TagEvent, e.Name()),
		tag(TagUser, e.User.String()),
		tag(TagAccount, strconv.FormatUint(e.AccountID, 10)),
		tag(TagWithdraw, strconv.FormatUint(e.WithdrawID, 10)),
		tag(TagValue, strconv.FormatUint(e.Amount, 10)),
		tag(TagTimestamp, strconv.FormatInt(int64(e.Timestamp), 10)),
	}
}

// WithdrawEvent is emitted when a withdraw request is executed. It carries
// only the request id.
type WithdrawEvent struct {
	WithdrawID uint64
	Timestamp  jointbank.UnixTime
}

func (WithdrawEvent) Name() string { return "withdraw" }

func (e WithdrawEvent) Tags() []common.KVPair {
	return []common.KVPair{
		tag(TagEvent, e.Name()),
		tag(TagWithdraw, strconv.FormatUint(e.WithdrawID, 10)),
		tag(TagTimestamp, strconv.FormatInt(int64(e.Timestamp), 10)),
	}
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
