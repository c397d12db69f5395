package bankaccount

import (
	"strconv"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/utils"
)

const (
	createAccountCost   int64 = 100
	depositCost         int64 = 50
	requestWithdrawCost int64 = 50
	approveWithdrawCost int64 = 20
	withdrawCost        int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r jointbank.Registry, auth x.Authenticator, bank cash.Controller, sink EventSink) {
	if sink == nil {
		sink = NopSink{}
	}
	accounts := NewAccountBucket()
	requests := NewWithdrawBucket()

	r.Handle(pathCreateAccount, CreateAccountHandler{auth: auth, accounts: accounts, sink: sink})
	r.Handle(pathDeposit, DepositHandler{auth: auth, accounts: accounts, bank: bank, sink: sink})
	r.Handle(pathRequestWithdraw, RequestWithdrawHandler{auth: auth, accounts: accounts, requests: requests, sink: sink})
	r.Handle(pathApproveWithdraw, ApproveWithdrawHandler{auth: auth, accounts: accounts, requests: requests})
	r.Handle(pathWithdraw, WithdrawHandler{auth: auth, accounts: accounts, requests: requests, bank: bank, sink: sink})
}

// RegisterQuery registers accounts as "/bankaccounts" and withdraw
// requests as "/withdrawals".
func RegisterQuery(qr jointbank.QueryRouter) {
	NewAccountBucket().Register("bankaccounts", qr)
	NewWithdrawBucket().Register("withdrawals", qr)
}

// caller returns the principal of the current call. Every operation
// requires one.
func caller(ctx jointbank.Context, auth x.Authenticator) (jointbank.Address, error) {
	p := x.MainSigner(ctx, auth)
	if p == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing principal")
	}
	return p, nil
}

// ownedAccount loads the account and ensures the caller is one of its
// owners. A missing account has no owners.
func ownedAccount(db jointbank.ReadOnlyKVStore, accounts AccountBucket, id uint64, p jointbank.Address) (*Account, error) {
	acct, err := accounts.GetAccount(db, id)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNotAnOwner, "account %d", id)
	case err != nil:
		return nil, errors.Wrap(err, "cannot load account")
	}
	if !acct.IsOwner(p) {
		return nil, errors.Wrapf(ErrNotAnOwner, "account %d", id)
	}
	return acct, nil
}

// CreateAccountHandler opens new accounts.
type CreateAccountHandler struct {
	auth     x.Authenticator
	accounts AccountBucket
	sink     EventSink
}

var _ jointbank.Handler = CreateAccountHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateAccountHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: createAccountCost}, nil
}

// Deliver stores a new account with zero balance. The account id is
// returned as the result data.
func (h CreateAccountHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	owners, now, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	acct, err := h.accounts.Create(db, &Account{
		Owners:    owners,
		CreatedAt: now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}

	event := AccountCreatedEvent{Owners: acct.Owners, ID: acct.ID, Timestamp: now}
	h.sink.Notify(ctx, event)
	return &jointbank.DeliverResult{
		Data: idKey(acct.ID),
		Tags: event.Tags(),
	}, nil
}

// validate returns the full owner set, caller first.
func (h CreateAccountHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) ([]jointbank.Address, jointbank.UnixTime, error) {
	var msg *CreateAccountMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, 0, errors.Wrap(err, "load msg")
	}
	p, err := caller(ctx, h.auth)
	if err != nil {
		return nil, 0, err
	}
	for _, o := range msg.OtherOwners {
		if o.Equals(p) {
			return nil, 0, errors.Wrap(ErrDuplicateOwner, "account creator should be not passed as an owner")
		}
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, 0, err
	}
	if n := 1 + len(msg.OtherOwners); n > int(conf.MaxOwners) {
		return nil, 0, errors.Wrapf(ErrTooManyOwners, "maximum of %d owners per account, got %d", conf.MaxOwners, n)
	}
	now, err := jointbank.BlockUnixTime(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "block time")
	}

	owners := make([]jointbank.Address, 0, 1+len(msg.OtherOwners))
	owners = append(owners, p)
	owners = append(owners, msg.OtherOwners...)
	return owners, now, nil
}

// DepositHandler moves value from the caller into an account.
type DepositHandler struct {
	auth     x.Authenticator
	accounts AccountBucket
	bank     cash.Controller
	sink     EventSink
}

var _ jointbank.Handler = DepositHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: depositCost}, nil
}

// Deliver transfers the value to the account custody and increases the
// balance. Both happen or neither does.
func (h DepositHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	msg, acct, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := jointbank.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	balance, err := x.AddAmount(acct.Balance, msg.Amount)
	if err != nil {
		return nil, errors.Wrap(err, "account balance")
	}

	err = utils.WithSavepoint(db, func(db jointbank.KVStore) error {
		if err := h.bank.MoveCoins(db, p, CustodyAddress(acct.ID), msg.Amount); err != nil {
			return errors.Wrap(err, "cannot transfer value")
		}
		acct.Balance = balance
		return h.accounts.Save(db, acct)
	})
	if err != nil {
		return nil, err
	}

	event := DepositEvent{User: p, AccountID: acct.ID, Value: msg.Amount, Timestamp: now}
	h.sink.Notify(ctx, event)
	return &jointbank.DeliverResult{Tags: event.Tags()}, nil
}

func (h DepositHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*DepositMsg, *Account, jointbank.Address, error) {
	var msg *DepositMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	acct, err := ownedAccount(db, h.accounts, msg.AccountID, p)
	if err != nil {
		return nil, nil, nil, err
	}
	return msg, acct, p, nil
}

// RequestWithdrawHandler opens withdraw requests.
type RequestWithdrawHandler struct {
	auth     x.Authenticator
	accounts AccountBucket
	requests WithdrawBucket
	sink     EventSink
}

var _ jointbank.Handler = RequestWithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RequestWithdrawHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: requestWithdrawCost}, nil
}

// Deliver stores a new pending request. The balance is not changed until
// the request is executed. The request id is returned as the result data.
func (h RequestWithdrawHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	msg, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := jointbank.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	req, err := h.requests.Create(db, &WithdrawRequest{
		AccountID: msg.AccountID,
		Creator:   p,
		Amount:    msg.Amount,
		CreatedAt: now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot store withdraw request")
	}

	event := WithdrawRequestedEvent{
		User:       p,
		AccountID:  req.AccountID,
		WithdrawID: req.ID,
		Amount:     req.Amount,
		Timestamp:  now,
	}
	h.sink.Notify(ctx, event)
	return &jointbank.DeliverResult{
		Data: idKey(req.ID),
		Tags: event.Tags(),
	}, nil
}

func (h RequestWithdrawHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*RequestWithdrawMsg, jointbank.Address, error) {
	var msg *RequestWithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	acct, err := ownedAccount(db, h.accounts, msg.AccountID, p)
	if err != nil {
		return nil, nil, err
	}
	if msg.Amount > acct.Balance {
		return nil, nil, errors.Wrapf(ErrInsufficientBalance, "requested %d, balance %d", msg.Amount, acct.Balance)
	}
	return msg, p, nil
}

// ApproveWithdrawHandler records approvals of withdraw requests.
type ApproveWithdrawHandler struct {
	auth     x.Authenticator
	accounts AccountBucket
	requests WithdrawBucket
}

var _ jointbank.Handler = ApproveWithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ApproveWithdrawHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: approveWithdrawCost}, nil
}

// Deliver adds the caller to the approvals of the request.
func (h ApproveWithdrawHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	req, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	req.Approvals = append(req.Approvals, p)
	if err := h.requests.Save(db, req); err != nil {
		return nil, errors.Wrap(err, "cannot store withdraw request")
	}
	return &jointbank.DeliverResult{}, nil
}

func (h ApproveWithdrawHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*WithdrawRequest, jointbank.Address, error) {
	var msg *ApproveWithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if _, err := ownedAccount(db, h.accounts, msg.AccountID, p); err != nil {
		return nil, nil, err
	}
	req, err := h.requests.GetRequest(db, msg.AccountID, msg.WithdrawID)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "withdraw request %d", msg.WithdrawID)
	}
	switch {
	case req.Completed:
		return nil, nil, errors.Wrapf(ErrAlreadyCompleted, "withdraw request %d", req.ID)
	case req.Creator.Equals(p):
		return nil, nil, errors.Wrap(ErrNoSelfApproval, "no approve")
	case req.HasApproved(p):
		return nil, nil, errors.Wrapf(ErrAlreadyApproved, "withdraw request %d", req.ID)
	}
	return req, p, nil
}

// WithdrawHandler executes approved withdraw requests.
type WithdrawHandler struct {
	auth     x.Authenticator
	accounts AccountBucket
	requests WithdrawBucket
	bank     cash.Controller
	sink     EventSink
}

var _ jointbank.Handler = WithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h WithdrawHandler) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &jointbank.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver marks the request completed and deducts the balance before the
// value leaves the custody. A transfer that calls back into the ledger
// sees the request as completed. If the transfer fails all writes are
// discarded.
func (h WithdrawHandler) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	acct, req, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := jointbank.BlockUnixTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}

	err = utils.WithSavepoint(db, func(db jointbank.KVStore) error {
		req.Completed = true
		req.CompletedAt = now
		if err := h.requests.Save(db, req); err != nil {
			return errors.Wrap(err, "cannot store withdraw request")
		}
		acct.Balance -= req.Amount
		if err := h.accounts.Save(db, acct); err != nil {
			return errors.Wrap(err, "cannot store account")
		}
		if err := h.bank.MoveCoins(db, CustodyAddress(acct.ID), p, req.Amount); err != nil {
			return errors.Wrap(err, "cannot transfer value")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := WithdrawEvent{WithdrawID: req.ID, Timestamp: now}
	h.sink.Notify(ctx, event)
	tags := append(event.Tags(), tag(TagAccount, strconv.FormatUint(acct.ID, 10)))
	return &jointbank.DeliverResult{Tags: tags}, nil
}

func (h WithdrawHandler) validate(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*Account, *WithdrawRequest, jointbank.Address, error) {
	var msg *WithdrawMsg
	if err := jointbank.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	acct, err := ownedAccount(db, h.accounts, msg.AccountID, p)
	if err != nil {
		return nil, nil, nil, err
	}
	req, err := h.requests.GetRequest(db, msg.AccountID, msg.WithdrawID)
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "withdraw request %d", msg.WithdrawID)
	}
	switch {
	case !req.Creator.Equals(p):
		return nil, nil, nil, errors.Wrapf(ErrNotRequestCreator, "withdraw request %d", req.ID)
	case req.Completed:
		return nil, nil, nil, errors.Wrapf(ErrAlreadyCompleted, "withdraw request %d", req.ID)
	case len(req.Approvals) < acct.Quorum():
		return nil, nil, nil, errors.Wrapf(ErrNotApproved, "%d of %d approvals", len(req.Approvals), acct.Quorum())
	case req.Amount > acct.Balance:
		return nil, nil, nil, errors.Wrapf(ErrInsufficientBalance, "requested %d, balance %d", req.Amount, acct.Balance)
	}
	return acct, req, p, nil
}
