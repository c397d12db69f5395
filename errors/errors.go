package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes below 100 are reserved for
// this package.
var (
	// ErrUnauthorized is returned when the signers of a transaction lack
	// the permission required by the operation.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned for a malformed message or a message that cannot
	// be routed.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a stored entity is malformed.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key or index value is taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman signals a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable is returned on an attempt to change a value that is
	// fixed once written.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an entity is not in a state allowing the
	// operation.
	ErrState = Register(10, "invalid state")

	// ErrType is returned for a value of an unexpected type.
	ErrType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when funds do not cover an amount.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount is returned for an amount that is not acceptable, for
	// example zero.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput is returned for malformed client input.
	ErrInput = Register(14, "invalid input")

	// ErrOverflow is returned when a result does not fit its type.
	ErrOverflow = Register(15, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the storage layer fails.
	ErrDatabase = Register(16, "database error")

	// ErrIteratorDone is returned by an exhausted iterator.
	ErrIteratorDone = Register(17, "iterator done")

	// ErrPanic is created by Recover only. Its message is never shown to
	// clients, the recovered value may reveal process details.
	ErrPanic = Register(111222, "panic")
)

// registry maps every registered code to its root error. Code 1 is the
// internal error code of errors without registration.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a root error with a code unique in the process. Reusing
// a code panics, so call it from package initialization only.
func Register(code uint32, description string) *Error {
	return RegisterAs(code, description, nil)
}

// RegisterAs declares a root error that also belongs to class. The class
// matches, with Is, all errors registered within it:
//
//   ErrNotAnOwner = errors.RegisterAs(1100, "not an owner", errors.ErrUnauthorized)
//   errors.ErrUnauthorized.Is(ErrNotAnOwner) // true
//
// The member keeps its own ABCI code.
func RegisterAs(code uint32, description string, class *Error) *Error {
	if prev, ok := registry[code]; ok {
		name := "internal"
		if prev != nil {
			name = prev.desc
		}
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, name))
	}
	e := &Error{code: code, desc: description, class: class}
	registry[code] = e
	return e
}

// Error is a root error. Errors returned to clients wrap exactly one root,
// which provides the ABCI code of the response.
type Error struct {
	code  uint32
	desc  string
	class *Error
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Class returns the class e was registered within, or nil.
func (e *Error) Class() *Error {
	return e.class
}

// New wraps e with description. It is the same as Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with a format string.
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is returns true if the root of err is kind or a member of the class kind.
// A nil kind matches nil errors, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return errIsNil(err)
	}
	root, ok := rootOf(err)
	if !ok {
		return false
	}
	for e := root; e != nil; e = e.class {
		if e == kind {
			return true
		}
	}
	return false
}

// rootOf unwraps err until a root error is found.
func rootOf(err error) (*Error, bool) {
	for err != nil {
		if root, ok := err.(*Error); ok {
			return root, true
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil, false
}

// Wrap adds description to err. The stack trace is recorded by the
// innermost wrap only. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format appends the recorded stack trace when printed with %+v.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := stackTrace(e); st != nil {
		fmt.Fprintf(s, "%+v", st)
	}
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the wrap chain of err.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
