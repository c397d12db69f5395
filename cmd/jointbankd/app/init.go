package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/app"
	"github.com/iov-one/jointbank/commands/server"
	"github.com/iov-one/jointbank/errors"
	"github.com/iov-one/jointbank/x/bankaccount"
	"github.com/iov-one/jointbank/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
)

const (
	appName = "jointbank"

	defaultInitialBalance uint64 = 123456789
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// You can set the funded address and its balance, ie.
// "init <hex address> [<balance>]". Without an address a new key
// is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr jointbank.Address
	if len(args) > 0 {
		a, err := jointbank.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "address")
		}
		if a == nil {
			return nil, errors.Wrap(errors.ErrEmpty, "address")
		}
		addr = a
	} else {
		key, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		addr = key.Address
		fmt.Printf("address: %s\nprivate key: %X\n", addr, []byte(key.Private))
	}

	balance := defaultInitialBalance
	if len(args) > 1 {
		b, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "invalid balance %q", args[1])
		}
		balance = b
	}

	opts := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: addr, Balance: balance},
		},
		"conf": map[string]interface{}{
			"bankaccount": bankaccount.DefaultConfiguration(),
		},
	}
	raw, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// Initializer loads every extension state from the genesis.
func Initializer() jointbank.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		bankaccount.Initializer{},
	)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "jointbank.db")
	}

	stack := Stack(bankaccount.LogSink{})
	application, err := Application(appName, stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializer())

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}
