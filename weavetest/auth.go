package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/jointbank"
)

// Auth is an x.Authenticator mock that authenticates a fixed set of
// addresses. Principal, when set, comes first and is the main caller.
type Auth struct {
	Principal  jointbank.Address
	Principals []jointbank.Address
}

func (a *Auth) GetPrincipals(jointbank.Context) []jointbank.Address {
	if a.Principal == nil {
		return a.Principals
	}
	return append([]jointbank.Address{a.Principal}, a.Principals...)
}

func (a *Auth) HasAddress(ctx jointbank.Context, addr jointbank.Address) bool {
	return containsAddress(a.GetPrincipals(ctx), addr)
}

// CtxAuth is an x.Authenticator mock that reads the principals from the
// context, stored there under Key by SetPrincipals.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetPrincipals(ctx jointbank.Context, principals ...jointbank.Address) jointbank.Context {
	return context.WithValue(ctx, a.Key, principals)
}

func (a *CtxAuth) GetPrincipals(ctx jointbank.Context) []jointbank.Address {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []jointbank.Address:
		return v
	default:
		panic(fmt.Sprintf("instead of []jointbank.Address got %T", v))
	}
}

func (a *CtxAuth) HasAddress(ctx jointbank.Context, addr jointbank.Address) bool {
	return containsAddress(a.GetPrincipals(ctx), addr)
}

func containsAddress(set []jointbank.Address, addr jointbank.Address) bool {
	for _, a := range set {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
