package jointbank

import (
	"testing"
)

type staticQuery []Model

func (q staticQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(
		func(r QueryRouter) { r.Register("/wallets", staticQuery{Pair([]byte("a"), []byte("1"))}) },
		func(r QueryRouter) { r.Register("/accounts", staticQuery(nil)) },
	)

	if got := r.Paths(); len(got) != 2 || got[0] != "/accounts" || got[1] != "/wallets" {
		t.Fatalf("unexpected paths: %v", got)
	}
	if r.Handler("/missing") != nil {
		t.Fatal("unknown path must not have a handler")
	}
	res, err := r.Handler("/wallets").Query(nil, KeyQueryMod, nil)
	if err != nil {
		t.Fatalf("query: %s", err)
	}
	if len(res) != 1 || string(res[0].Value) != "1" {
		t.Fatalf("unexpected result: %v", res)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("registering a path twice must panic")
		}
	}()
	r.Register("/wallets", staticQuery(nil))
}
