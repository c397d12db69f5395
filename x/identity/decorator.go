/*
Package identity carries the caller of a transaction. The caller is an
opaque principal address declared by the transaction. Verifying that the
transaction was really sent by this principal is up to the transport.
*/
package identity

import (
	"github.com/iov-one/jointbank"
)

// PrincipalTx is implemented by transactions that declare their caller.
type PrincipalTx interface {
	jointbank.Tx
	GetPrincipal() jointbank.Address
}

// Decorator stores the declared principal in the context. The principal is
// only compared with others, its format is not checked. A transaction
// without a principal is passed along untouched, it is up to the handler to
// reject it.
type Decorator struct{}

var _ jointbank.Decorator = Decorator{}

// NewDecorator returns a principal decorator.
func NewDecorator() Decorator {
	return Decorator{}
}

// Check stores the principal before calling down the stack.
func (d Decorator) Check(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	return next.Check(withTxPrincipal(ctx, tx), store, tx)
}

// Deliver stores the principal before calling down the stack.
func (d Decorator) Deliver(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	return next.Deliver(withTxPrincipal(ctx, tx), store, tx)
}

func withTxPrincipal(ctx jointbank.Context, tx jointbank.Tx) jointbank.Context {
	ptx, ok := tx.(PrincipalTx)
	if !ok {
		return ctx
	}
	if p := ptx.GetPrincipal(); len(p) != 0 {
		return WithPrincipal(ctx, p)
	}
	return ctx
}
