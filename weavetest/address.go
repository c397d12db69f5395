package weavetest

import (
	"testing"

	"github.com/iov-one/jointbank"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// jointbank.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) jointbank.Address {
	t.Helper()

	addr, err := jointbank.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
