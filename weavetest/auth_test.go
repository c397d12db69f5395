package weavetest

import (
	"context"
	"reflect"
	"testing"

	"github.com/iov-one/jointbank"
)

func TestAuthNoPrincipals(t *testing.T) {
	var a Auth

	if got := a.GetPrincipals(nil); got != nil {
		t.Fatalf("unexpected principals: %+v", got)
	}

	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingPrincipalAndPrincipals(t *testing.T) {
	addrs := []jointbank.Address{
		NewAddress(),
		NewAddress(),
		NewAddress(),
	}

	a := Auth{
		Principal:  addrs[0],
		Principals: addrs[1:],
	}

	if got := a.GetPrincipals(nil); !reflect.DeepEqual(got, addrs) {
		for i, p := range got {
			t.Logf("principal %d: %s", i, p)
		}
		t.Fatalf("unexpected principals")
	}

	for i, addr := range addrs {
		if !a.HasAddress(nil, addr) {
			t.Errorf("principal %d (%s) should be present", i, addr)
		}
	}

	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	a := CtxAuth{Key: "auth"}
	ctx := context.Background()

	if got := a.GetPrincipals(ctx); got != nil {
		t.Fatalf("unexpected principals: %+v", got)
	}

	alice := NewAddress()
	ctx = a.SetPrincipals(ctx, alice)
	if got := a.GetPrincipals(ctx); len(got) != 1 || !got[0].Equals(alice) {
		t.Fatalf("unexpected principals: %+v", got)
	}
	if !a.HasAddress(ctx, alice) {
		t.Fatal("alice must be present")
	}
	if a.HasAddress(ctx, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}
