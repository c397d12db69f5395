package jointbank

import (
	"github.com/iov-one/jointbank/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful DeliverTx. Failures are
// always reported as errors.
type DeliverResult struct {
	// Data is the machine readable result, ie. the key of a created entity.
	Data []byte
	// Log is a human readable note.
	Log string
	// Tags are indexed by tendermint, so transactions can be searched by
	// them.
	Tags []common.KVPair
}

// ToABCI returns the tendermint representation of the result.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data: d.Data,
		Log:  d.Log,
		Tags: d.Tags,
	}
}

// CheckResult is the outcome of a successful CheckTx.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the cost charged for running the transaction.
	GasAllocated int64
}

// ToABCI returns the tendermint representation of the result.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the response of a DeliverTx call, built from the
// error if there is one.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	switch {
	case err != nil:
		return DeliverTxError(err, debug)
	case res == nil:
		return abci.ResponseDeliverTx{}
	default:
		return res.ToABCI()
	}
}

// CheckOrError returns the response of a CheckTx call, built from the error
// if there is one.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	switch {
	case err != nil:
		return CheckTxError(err, debug)
	case res == nil:
		return abci.ResponseCheckTx{}
	default:
		return res.ToABCI()
	}
}

// DeliverTxError returns the response for a failed DeliverTx. The full
// error is only exposed in debug mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + log}
}

// CheckTxError returns the response for a failed CheckTx. The full error is
// only exposed in debug mode.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + log}
}

// QueryError returns the response for a failed query.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}
