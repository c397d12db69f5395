package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

var (
	errTestClass  = Register(9000, "test class")
	errTestMember = RegisterAs(9001, "test member", errTestClass)
	errTestNested = RegisterAs(9002, "test nested member", errTestMember)
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
		"Newf reveals root cause": {
			err:  errTestMember.Newf("account %d", 4),
			root: errTestMember,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected root: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
		"class matches its member": {
			a:      errTestClass,
			b:      errTestMember,
			wantIs: true,
		},
		"class matches a wrapped member": {
			a:      errTestClass,
			b:      Wrap(errTestMember, "wrapped"),
			wantIs: true,
		},
		"class matches a member of a member": {
			a:      errTestClass,
			b:      errTestNested.New("deep"),
			wantIs: true,
		},
		"member does not match its class": {
			a:      errTestMember,
			b:      errTestClass,
			wantIs: false,
		},
		"member does not match a sibling class": {
			a:      ErrState,
			b:      errTestMember,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicated code must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "again")
}

func TestClass(t *testing.T) {
	if errTestMember.Class() != errTestClass {
		t.Fatal("member must belong to the class")
	}
	if errTestClass.Class() != nil {
		t.Fatal("class must not have a parent")
	}
}

func TestWrapStackTrace(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "inner"), "outer")
	if stackTrace(err) == nil {
		t.Fatal("stack trace not recorded")
	}
	full := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(full, "outer: inner: not found") {
		t.Fatalf("unexpected message: %s", full)
	}
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stack trace does not point to the creation place: %s", full)
	}
	if got := fmt.Sprintf("%v", err); got != "outer: inner: not found" {
		t.Fatalf("unexpected short message: %q", got)
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
