package weavetest

import (
	"testing"

	"github.com/iov-one/jointbank/errors"
)

func TestSuccessfulDecorator(t *testing.T) {
	var (
		d Decorator
		h Handler
	)

	_, _ = d.Check(nil, nil, nil, &h)
	assertHCounts(t, &h, 1, 0)

	_, _ = d.Deliver(nil, nil, nil, &h)
	assertHCounts(t, &h, 1, 1)

	if d.CallCount() != 2 {
		t.Fatalf("want 2 decorator calls, got %d", d.CallCount())
	}
}

func TestDecoratorWithError(t *testing.T) {
	d := Decorator{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrNotFound,
	}

	// When using an error returning decorator, handler is never called.
	// Otherwise using nil would panic.
	if _, err := d.Check(nil, nil, nil, nil); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected check error: %v", err)
	}
	if _, err := d.Deliver(nil, nil, nil, nil); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected deliver error: %v", err)
	}
}

func TestDecorate(t *testing.T) {
	var (
		d Decorator
		h Handler
	)
	handler := Decorate(&h, &d)
	_, _ = handler.Check(nil, nil, nil)
	_, _ = handler.Deliver(nil, nil, nil)
	assertHCounts(t, &h, 1, 1)
	if d.CheckCallCount() != 1 || d.DeliverCallCount() != 1 {
		t.Fatal("decorator not called")
	}
}
