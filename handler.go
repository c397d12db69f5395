package jointbank

import (
	"encoding/json"
)

// Handler processes the messages of one extension, for example creating an
// account or approving a withdrawal.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the check state without
// committing to it.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction against the deliver state.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs shared logic, such as authentication or logging, around
// the next handler of a stack.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis app state. Each extension reads the JSON document
// stored under its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the document stored under key into obj. A missing key
// leaves obj untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension into the store.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
