/*
Package app links together all the various components
to construct the jointbank node application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/app"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/store/iavl"
	"github.com/iov-one/jointbank/x"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	"github.com/iov-one/jointbank/x/identity"
	"github.com/iov-one/jointbank/x/utils"
)

// Authenticator returns the authentication used by all handlers, the
// principal declared by the transaction.
func Authenticator() x.Authenticator {
	return x.ChainAuth(identity.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		identity.NewDecorator(),
		// on DeliverTx, a failing message leaves no trace
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the cash and bank account
// handlers. Bank account events are passed to the sink.
func Router(authFn x.Authenticator, sink bankaccount.EventSink) *app.Router {
	r := app.NewRouter()
	bank := cash.NewController(cash.NewWalletBucket())
	cash.RegisterRoutes(r, authFn, bank, bankaccount.NewAccountBucket())
	bankaccount.RegisterRoutes(r, authFn, bank, sink)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/bankaccounts" and "/withdrawals"
func QueryRouter() jointbank.QueryRouter {
	r := jointbank.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		bankaccount.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(sink bankaccount.EventSink) jointbank.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn, sink))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h jointbank.Handler,
	tx jointbank.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (jointbank.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}
