package x

import (
	"github.com/iov-one/jointbank"
)

// Authenticator reveals who authorized the transaction being processed.
// Handlers receive it in their constructor, so that the identity provider
// can be swapped without touching the extension.
type Authenticator interface {
	// GetPrincipals returns all authenticated addresses. The first one is
	// the main caller.
	GetPrincipals(jointbank.Context) []jointbank.Address

	// HasAddress returns true if addr is among the principals.
	HasAddress(jointbank.Context, jointbank.Address) bool
}

// MultiAuth merges the principals of several Authenticators.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth returns an Authenticator combining impls in order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetPrincipals returns the principals of all Authenticators, first seen
// first, without duplicates.
func (m MultiAuth) GetPrincipals(ctx jointbank.Context) []jointbank.Address {
	var all []jointbank.Address
	for _, impl := range m.impls {
		for _, p := range impl.GetPrincipals(ctx) {
			if !contains(all, p) {
				all = append(all, p)
			}
		}
	}
	return all
}

func (m MultiAuth) HasAddress(ctx jointbank.Context, addr jointbank.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the main caller, or nil when nobody is authenticated.
func MainSigner(ctx jointbank.Context, auth Authenticator) jointbank.Address {
	if p := auth.GetPrincipals(ctx); len(p) > 0 {
		return p[0]
	}
	return nil
}

// HasAllAddresses returns true if every address of required is
// authenticated.
func HasAllAddresses(ctx jointbank.Context, auth Authenticator, required []jointbank.Address) bool {
	return HasNAddresses(ctx, auth, required, len(required))
}

// HasNAddresses returns true if at least n addresses of required are
// authenticated.
func HasNAddresses(ctx jointbank.Context, auth Authenticator, required []jointbank.Address, n int) bool {
	for _, r := range required {
		if n <= 0 {
			break
		}
		if auth.HasAddress(ctx, r) {
			n--
		}
	}
	return n <= 0
}

func contains(list []jointbank.Address, addr jointbank.Address) bool {
	for _, a := range list {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}
