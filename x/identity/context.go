package identity

import (
	"context"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/x"
)

type contextKey int // local to the identity module

const (
	contextKeyPrincipal contextKey = iota
)

// WithPrincipal returns a context that carries given address as the
// authenticated caller. Only the decorator and in process callers such as
// the standalone engine are expected to set it.
func WithPrincipal(ctx jointbank.Context, principal jointbank.Address) jointbank.Context {
	return context.WithValue(ctx, contextKeyPrincipal, principal)
}

// GetPrincipal returns the caller stored in the context, or nil.
func GetPrincipal(ctx jointbank.Context) jointbank.Address {
	val, _ := ctx.Value(contextKeyPrincipal).(jointbank.Address)
	return val
}

// Authenticate exposes the principal stored in the context as an
// x.Authenticator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetPrincipals returns the caller of the current context. May be empty.
func (Authenticate) GetPrincipals(ctx jointbank.Context) []jointbank.Address {
	p := GetPrincipal(ctx)
	if p == nil {
		return nil
	}
	return []jointbank.Address{p}
}

// HasAddress returns true if the caller is the given address.
func (Authenticate) HasAddress(ctx jointbank.Context, addr jointbank.Address) bool {
	p := GetPrincipal(ctx)
	return p != nil && p.Equals(addr)
}
