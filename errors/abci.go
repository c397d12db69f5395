package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of a successful ABCI response.
	SuccessABCICode uint32 = 0

	// Errors that carry no code are reported under internalABCICode. Their
	// message is replaced by internalABCILog outside of debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the ABCI response for err. Errors
// without a code are internal. Unless debug is set their log is the generic
// internal message. In debug mode the log holds the full error with its
// stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := ABCICode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// ABCICode returns the code of the outermost error in the wrap chain that
// provides one, or the internal code. Nil is a success.
func ABCICode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		next, ok := err.(causer)
		if !ok {
			break
		}
		err = next.Cause()
	}
	return internalABCICode
}

// errIsNil also detects a nil pointer stored in the error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Redact hides errors that must not reach a client. Panics and errors
// without a code become a generic internal error. Debug mode disables
// redaction.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || ABCICode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
