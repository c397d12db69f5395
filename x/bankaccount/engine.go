package bankaccount

import (
	"context"
	"sync"
	"time"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/app"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/identity"
	"github.com/iov-one/jointbank/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine runs the ledger operations as plain method calls on top of a
// store, without a blockchain. All calls are serialized. Each mutating call
// goes through the same handlers as a transaction and either applies all
// of its changes or none.
type Engine struct {
	mu       sync.Mutex
	db       jointbank.CacheableKVStore
	bank     cash.Controller
	handler  jointbank.Handler
	accounts AccountBucket
	requests WithdrawBucket
	clock    func() time.Time
	logger   log.Logger
	height   int64
}

// NewEngine returns an engine operating on given store. Value is moved
// using bank. A nil sink drops all events.
func NewEngine(db jointbank.CacheableKVStore, bank cash.Controller, sink EventSink) *Engine {
	r := app.NewRouter()
	RegisterRoutes(r, identity.Authenticate{}, bank, sink)
	return &Engine{
		db:       db,
		bank:     bank,
		handler:  app.ChainDecorators(identity.NewDecorator()).WithHandler(r),
		accounts: NewAccountBucket(),
		requests: NewWithdrawBucket(),
		clock:    time.Now,
		logger:   log.NewNopLogger(),
	}
}

// WithClock sets the source of operation timestamps.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// WithLogger sets the logger passed to the handlers.
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.logger = logger
	return e
}

// CreateAccount opens an account owned by caller and others. The caller
// is the first owner. It returns the new account id.
func (e *Engine) CreateAccount(caller jointbank.Address, others ...jointbank.Address) (uint64, error) {
	res, err := e.deliver(caller, &CreateAccountMsg{OtherOwners: others})
	if err != nil {
		return 0, err
	}
	return decodeID(res.Data)
}

// Deposit moves amount from the caller wallet into the account.
func (e *Engine) Deposit(caller jointbank.Address, accountID, amount uint64) error {
	_, err := e.deliver(caller, &DepositMsg{AccountID: accountID, Amount: amount})
	return err
}

// RequestWithdraw opens a withdraw request and returns its id.
func (e *Engine) RequestWithdraw(caller jointbank.Address, accountID, amount uint64) (uint64, error) {
	res, err := e.deliver(caller, &RequestWithdrawMsg{AccountID: accountID, Amount: amount})
	if err != nil {
		return 0, err
	}
	return decodeID(res.Data)
}

// ApproveWithdraw records the approval of the caller.
func (e *Engine) ApproveWithdraw(caller jointbank.Address, accountID, withdrawID uint64) error {
	_, err := e.deliver(caller, &ApproveWithdrawMsg{AccountID: accountID, WithdrawID: withdrawID})
	return err
}

// Withdraw executes an approved request, moving the value to the caller
// wallet.
func (e *Engine) Withdraw(caller jointbank.Address, accountID, withdrawID uint64) error {
	_, err := e.deliver(caller, &WithdrawMsg{AccountID: accountID, WithdrawID: withdrawID})
	return err
}

// GetAccounts returns ids of all accounts owned by principal, in creation
// order.
func (e *Engine) GetAccounts(principal jointbank.Address) ([]uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts.AccountsOf(e.db, principal)
}

// GetOwners returns the owners of an account, empty if it does not exist.
func (e *Engine) GetOwners(accountID uint64) ([]jointbank.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts.Owners(e.db, accountID)
}

// GetBalance returns the balance of an account, zero if it does not exist.
func (e *Engine) GetBalance(accountID uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts.Balance(e.db, accountID)
}

// GetApprovals returns the number of approvals of a request, zero if it
// does not exist.
func (e *Engine) GetApprovals(accountID, withdrawID uint64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.requests.Approvals(e.db, accountID, withdrawID)
}

// WalletBalance returns the value held by a principal outside of any
// account.
func (e *Engine) WalletBalance(addr jointbank.Address) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bank.Balance(e.db, addr)
}

func (e *Engine) deliver(caller jointbank.Address, msg jointbank.Msg) (*jointbank.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(caller) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing principal")
	}

	e.height++
	ctx := context.Background()
	ctx = jointbank.WithHeader(ctx, abci.Header{Height: e.height, Time: e.clock()})
	ctx = jointbank.WithHeight(ctx, e.height)
	ctx = jointbank.WithLogger(ctx, e.logger)

	tx := &engineTx{principal: caller, msg: msg}
	var res *jointbank.DeliverResult
	err := utils.WithSavepoint(e.db, func(db jointbank.KVStore) (err error) {
		defer errors.Recover(&err)
		res, err = e.handler.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// engineTx is the in process transaction built for each engine call.
type engineTx struct {
	principal jointbank.Address
	msg       jointbank.Msg
}

var _ identity.PrincipalTx = (*engineTx)(nil)

func (tx *engineTx) GetMsg() (jointbank.Msg, error) {
	return tx.msg, nil
}

func (tx *engineTx) GetPrincipal() jointbank.Address {
	return tx.principal
}

func (tx *engineTx) Marshal() ([]byte, error) {
	return tx.msg.Marshal()
}

func (tx *engineTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "engine transactions are not decoded")
}
