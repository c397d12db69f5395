package bankaccount

import (
	"encoding/binary"
	"strconv"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/orm"
)

const (
	// AccountBucketName is where accounts are stored.
	AccountBucketName = "bankacct"
	// WithdrawBucketName is where withdraw requests are stored.
	WithdrawBucketName = "withdraw"

	ownerIndex   = "owner"
	custodyIndex = "custody"
)

// Account is a value ledger shared by up to four owners.
type Account struct {
	ID        uint64              `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Owners    []jointbank.Address `protobuf:"bytes,2,rep,name=owners,proto3" json:"owners"`
	Balance   uint64              `protobuf:"varint,3,opt,name=balance,proto3" json:"balance"`
	CreatedAt jointbank.UnixTime  `protobuf:"varint,4,opt,name=created_at,proto3" json:"created_at"`
}

var _ orm.CloneableData = (*Account)(nil)

type accountWire Account

func (m *accountWire) Reset()         { *m = accountWire{} }
func (m *accountWire) String() string { return proto.CompactTextString(m) }
func (*accountWire) ProtoMessage()    {}

// Marshal serializes the account with protobuf.
func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*accountWire)(a))
}

// Unmarshal loads the account from its protobuf representation.
func (a *Account) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*accountWire)(a))
}

// Validate ensures the owner set is well formed. Owners are opaque
// principals, only their presence and uniqueness are checked.
func (a *Account) Validate() error {
	if len(a.Owners) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owners")
	}
	if len(a.Owners) > MaxOwners {
		return errors.Wrapf(ErrTooManyOwners, "%d owners", len(a.Owners))
	}
	for i, o := range a.Owners {
		if len(o) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "owner %d", i)
		}
		for _, prev := range a.Owners[:i] {
			if prev.Equals(o) {
				return errors.Wrapf(ErrDuplicateOwner, "owner %d", i)
			}
		}
	}
	return nil
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() orm.CloneableData {
	owners := make([]jointbank.Address, len(a.Owners))
	copy(owners, a.Owners)
	return &Account{
		ID:        a.ID,
		Owners:    owners,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// IsOwner returns true if given principal is one of the owners.
func (a *Account) IsOwner(p jointbank.Address) bool {
	if p == nil {
		return false
	}
	for _, o := range a.Owners {
		if o.Equals(p) {
			return true
		}
	}
	return false
}

// Quorum is the number of approvals a request needs before it can be
// executed. Every owner other than the creator must approve.
func (a *Account) Quorum() int {
	return len(a.Owners) - 1
}

// WithdrawRequest is a pending or executed transfer out of an account.
type WithdrawRequest struct {
	AccountID   uint64              `protobuf:"varint,1,opt,name=account_id,proto3" json:"account_id"`
	ID          uint64              `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Creator     jointbank.Address   `protobuf:"bytes,3,opt,name=creator,proto3" json:"creator"`
	Amount      uint64              `protobuf:"varint,4,opt,name=amount,proto3" json:"amount"`
	Approvals   []jointbank.Address `protobuf:"bytes,5,rep,name=approvals,proto3" json:"approvals"`
	Completed   bool                `protobuf:"varint,6,opt,name=completed,proto3" json:"completed"`
	CreatedAt   jointbank.UnixTime  `protobuf:"varint,7,opt,name=created_at,proto3" json:"created_at"`
	CompletedAt jointbank.UnixTime  `protobuf:"varint,8,opt,name=completed_at,proto3" json:"completed_at,omitempty"`
}

var _ orm.CloneableData = (*WithdrawRequest)(nil)

type withdrawRequestWire WithdrawRequest

func (m *withdrawRequestWire) Reset()         { *m = withdrawRequestWire{} }
func (m *withdrawRequestWire) String() string { return proto.CompactTextString(m) }
func (*withdrawRequestWire) ProtoMessage()    {}

// Marshal serializes the request with protobuf.
func (w *WithdrawRequest) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawRequestWire)(w))
}

// Unmarshal loads the request from its protobuf representation.
func (w *WithdrawRequest) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawRequestWire)(w))
}

// Validate ensures the request is consistent.
func (w *WithdrawRequest) Validate() error {
	if len(w.Creator) == 0 {
		return errors.Wrap(errors.ErrEmpty, "creator")
	}
	if w.Amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "amount")
	}
	for i, a := range w.Approvals {
		if len(a) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "approval %d", i)
		}
		if a.Equals(w.Creator) {
			return errors.Wrapf(ErrNoSelfApproval, "approval %d", i)
		}
	}
	if w.Completed && w.CompletedAt.IsZero() {
		return errors.Wrap(errors.ErrState, "completion time missing")
	}
	return nil
}

// Copy returns a deep copy of the request.
func (w *WithdrawRequest) Copy() orm.CloneableData {
	approvals := make([]jointbank.Address, len(w.Approvals))
	copy(approvals, w.Approvals)
	return &WithdrawRequest{
		AccountID:   w.AccountID,
		ID:          w.ID,
		Creator:     w.Creator,
		Amount:      w.Amount,
		Approvals:   approvals,
		Completed:   w.Completed,
		CreatedAt:   w.CreatedAt,
		CompletedAt: w.CompletedAt,
	}
}

// HasApproved returns true if given principal already approved the request.
func (w *WithdrawRequest) HasApproved(p jointbank.Address) bool {
	for _, a := range w.Approvals {
		if a.Equals(p) {
			return true
		}
	}
	return false
}

// AccountKey returns the primary key of an account.
func AccountKey(id uint64) []byte {
	return idKey(id)
}

// idKey encodes an id as 8 big endian bytes, keeping the numeric order.
func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// decodeID reverses idKey.
func decodeID(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrState, "invalid id %X", raw)
	}
	return binary.BigEndian.Uint64(raw), nil
}

// WithdrawKey returns the primary key of a withdraw request. Requests of
// the same account share the account key as prefix.
func WithdrawKey(accountID, withdrawID uint64) []byte {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key, accountID)
	binary.BigEndian.PutUint64(key[8:], withdrawID)
	return key
}

// CustodyAddress returns the address holding the value of an account.
func CustodyAddress(accountID uint64) jointbank.Address {
	return custodyOf(AccountKey(accountID))
}

func custodyOf(accountKey []byte) jointbank.Address {
	return jointbank.NewCondition(AccountBucketName, "account", accountKey).Address()
}

// AccountBucket stores accounts indexed by owner and by custody address.
type AccountBucket struct {
	orm.ModelBucket
	ids orm.Sequence
}

// NewAccountBucket returns a bucket for accounts.
func NewAccountBucket() AccountBucket {
	b := orm.NewBucket(AccountBucketName, orm.NewSimpleObj(nil, &Account{})).
		WithMultiKeyIndex(ownerIndex, ownerIndexer, false).
		WithIndex(custodyIndex, custodyIndexer, true)
	return AccountBucket{
		ModelBucket: orm.NewModelBucket(b),
		ids:         b.Sequence(orm.SeqID),
	}
}

func ownerIndexer(obj orm.Object) ([][]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	acct, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "can only index accounts, got %T", obj.Value())
	}
	keys := make([][]byte, len(acct.Owners))
	for i, o := range acct.Owners {
		keys[i] = o
	}
	return keys, nil
}

func custodyIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	return custodyOf(obj.Key()), nil
}

// Holds returns true if addr is the custody address of an account. The
// value of such an address can leave it only through a withdraw request.
func (b AccountBucket) Holds(db jointbank.ReadOnlyKVStore, addr jointbank.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	keys, err := b.ByIndex(db, custodyIndex, addr)
	if err != nil {
		return false, err
	}
	return len(keys) != 0, nil
}

// Create stores a new account under the next free id and returns it.
func (b AccountBucket) Create(db jointbank.KVStore, acct *Account) (*Account, error) {
	id, err := b.ids.NextID(db)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	acct.ID = id
	if err := b.Put(db, AccountKey(id), acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Save writes back a modified account.
func (b AccountBucket) Save(db jointbank.KVStore, acct *Account) error {
	return b.Put(db, AccountKey(acct.ID), acct)
}

// GetAccount returns the account with given id, or ErrNotFound.
func (b AccountBucket) GetAccount(db jointbank.ReadOnlyKVStore, id uint64) (*Account, error) {
	var acct Account
	if err := b.One(db, AccountKey(id), &acct); err != nil {
		return nil, err
	}
	acct.ID = id
	return &acct, nil
}

// AccountsOf returns ids of all accounts owned by given principal, in
// creation order.
func (b AccountBucket) AccountsOf(db jointbank.ReadOnlyKVStore, principal jointbank.Address) ([]uint64, error) {
	if len(principal) == 0 {
		return nil, nil
	}
	keys, err := b.ByIndex(db, ownerIndex, principal)
	if err != nil {
		return nil, err
	}
	// keys are sorted by bytes and the big endian encoding keeps the
	// numeric order
	ids := make([]uint64, len(keys))
	for i, k := range keys {
		id, err := decodeID(k)
		if err != nil {
			return nil, errors.Wrap(err, "account key")
		}
		ids[i] = id
	}
	return ids, nil
}

// Owners returns the owners of an account. A missing account has no owners.
func (b AccountBucket) Owners(db jointbank.ReadOnlyKVStore, id uint64) ([]jointbank.Address, error) {
	acct, err := b.GetAccount(db, id)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return acct.Owners, nil
}

// Balance returns the balance of an account. A missing account has zero
// balance.
func (b AccountBucket) Balance(db jointbank.ReadOnlyKVStore, id uint64) (uint64, error) {
	acct, err := b.GetAccount(db, id)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return acct.Balance, nil
}

// WithdrawBucket stores withdraw requests keyed by account and request id.
type WithdrawBucket struct {
	orm.ModelBucket
}

// NewWithdrawBucket returns a bucket for withdraw requests.
func NewWithdrawBucket() WithdrawBucket {
	b := orm.NewBucket(WithdrawBucketName, orm.NewSimpleObj(nil, &WithdrawRequest{}))
	return WithdrawBucket{
		ModelBucket: orm.NewModelBucket(b),
	}
}

// Create stores a new request under the next free id of its account.
func (b WithdrawBucket) Create(db jointbank.KVStore, req *WithdrawRequest) (*WithdrawRequest, error) {
	seq := orm.NewSequence(WithdrawBucketName, strconv.FormatUint(req.AccountID, 10))
	id, err := seq.NextID(db)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	req.ID = id
	if err := b.Put(db, WithdrawKey(req.AccountID, id), req); err != nil {
		return nil, err
	}
	return req, nil
}

// Save writes back a modified request.
func (b WithdrawBucket) Save(db jointbank.KVStore, req *WithdrawRequest) error {
	return b.Put(db, WithdrawKey(req.AccountID, req.ID), req)
}

// GetRequest returns a withdraw request, or ErrNotFound.
func (b WithdrawBucket) GetRequest(db jointbank.ReadOnlyKVStore, accountID, withdrawID uint64) (*WithdrawRequest, error) {
	var req WithdrawRequest
	if err := b.One(db, WithdrawKey(accountID, withdrawID), &req); err != nil {
		return nil, err
	}
	req.AccountID = accountID
	req.ID = withdrawID
	return &req, nil
}

// Approvals returns the number of approvals of a request. A missing request
// has no approvals.
func (b WithdrawBucket) Approvals(db jointbank.ReadOnlyKVStore, accountID, withdrawID uint64) (int, error) {
	req, err := b.GetRequest(db, accountID, withdrawID)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return len(req.Approvals), nil
}
