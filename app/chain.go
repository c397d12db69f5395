package app

import (
	"reflect"

	"github.com/iov-one/jointbank"
)

// Decorators is an ordered list of decorators waiting for the final
// handler.
type Decorators struct {
	chain []jointbank.Decorator
}

// ChainDecorators starts a stack. The first decorator given is the outermost
// one and runs first. Nil entries, including typed nil pointers, are
// skipped.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     identity.NewDecorator(),
//   ).WithHandler(router)
func ChainDecorators(chain ...jointbank.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of the stack with more decorators appended.
func (d Decorators) Chain(chain ...jointbank.Decorator) Decorators {
	out := make([]jointbank.Decorator, 0, len(d.chain)+len(chain))
	out = append(out, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return Decorators{chain: out}
}

func isNilDecorator(d jointbank.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h jointbank.Handler) jointbank.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated runs one decorator around the rest of the stack.
type decorated struct {
	dec  jointbank.Decorator
	next jointbank.Handler
}

var _ jointbank.Handler = decorated{}

func (s decorated) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
