package weavetest

import "github.com/iov-one/jointbank"

// Decorator is a jointbank.Decorator mock. It fails with CheckErr or
// DeliverErr when set, without calling the next handler. Every call is
// counted.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ jointbank.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns h wrapped by d.
func Decorate(h jointbank.Handler, d jointbank.Decorator) jointbank.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   jointbank.Handler
	decorator jointbank.Decorator
}

func (d decorated) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
