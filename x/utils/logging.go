package utils

import (
	"time"

	"github.com/iov-one/jointbank"
)

// Logging writes one log entry per processed transaction with its path,
// duration and outcome. Failures are logged as errors. Successful checks
// are logged at debug level, successful deliveries at info level.
type Logging struct{}

var _ jointbank.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if err == nil {
		msg = res.Log
	}
	logTx(ctx, tx, start, msg, err, false)
	return res, err
}

// logTx emits an entry even when msg is empty, the attached fields are
// what matters.
func logTx(ctx jointbank.Context, tx jointbank.Tx, start time.Time, msg string, err error, check bool) {
	logger := jointbank.GetLogger(ctx).With(
		"path", jointbank.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	if err != nil {
		logger.Error(msg, "err", err)
	} else if check {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
