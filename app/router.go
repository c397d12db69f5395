package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/jointbank"
	"github.com/iov-one/jointbank/errors"
)

var validRoute = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches each message to the handler registered for its path.
type Router struct {
	routes map[string]jointbank.Handler
}

var (
	_ jointbank.Registry = (*Router)(nil)
	_ jointbank.Handler  = (*Router)(nil)
)

func NewRouter() *Router {
	return &Router{routes: make(map[string]jointbank.Handler)}
}

// Handle registers h for path. It panics on a malformed or duplicated path.
func (r *Router) Handle(path string, h jointbank.Handler) {
	if !validRoute(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// route returns the handler of the message carried by tx. Unknown paths get
// a handler that fails with ErrNotFound.
func (r *Router) route(tx jointbank.Tx) (jointbank.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if h, ok := r.routes[msg.Path()]; ok {
		return h, nil
	}
	return unknownPath(msg.Path()), nil
}

func (r *Router) Check(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx jointbank.Context, db jointbank.KVStore, tx jointbank.Tx) (*jointbank.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

type unknownPath string

func (p unknownPath) err() error {
	return errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(p))
}

func (p unknownPath) Check(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.CheckResult, error) {
	return nil, p.err()
}

func (p unknownPath) Deliver(jointbank.Context, jointbank.KVStore, jointbank.Tx) (*jointbank.DeliverResult, error) {
	return nil, p.err()
}
