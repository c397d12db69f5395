// Package assert holds the small set of assertions shared by tests that
// do not need testify.
package assert

import (
	"reflect"
)

// Tester is the part of testing.TB the assertions rely on.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails when value is neither nil nor a nil chan, func, interface, map,
// pointer or slice.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails when want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
}

// Panics fails when fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails unless got is want or, when want has an Is method, want.Is
// accepts got.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if m, ok := want.(interface{ Is(error) bool }); ok && m.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}
