package app

import (
	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete ABCI application. It decodes transactions and runs
// them through the handler on top of the StoreApp state.
type BaseApp struct {
	*StoreApp
	decoder jointbank.TxDecoder
	handler jointbank.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application processing transactions decoded by
// decoder with handler. When debug is set, error responses carry the full
// error log.
func NewBaseApp(store *StoreApp, decoder jointbank.TxDecoder, handler jointbank.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return jointbank.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return jointbank.DeliverOrError(res, err, b.debug)
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return jointbank.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return jointbank.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx jointbank.Tx) jointbank.Context {
	return jointbank.WithLogInfo(b.BlockContext(), "call", call, "path", jointbank.GetPath(tx))
}

// decode turns a decoder panic into an error.
func (b BaseApp) decode(raw []byte) (tx jointbank.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
