/*
Package errors implements the error handling used across jointbank.

Every error returned by a handler must be built on top of a root error
declared with Register or RegisterAs. The root carries the ABCI code that is
sent back to the client, so that a client can tell failures apart without
parsing the log message.

Root errors can be grouped into classes. A root registered with RegisterAs is
matched by its own Is method and by the Is method of its class:

	var ErrNotAnOwner = errors.RegisterAs(1100, "not an owner", errors.ErrUnauthorized)

	err := ErrNotAnOwner.Newf("account %d", id)
	ErrNotAnOwner.Is(err)          // true
	errors.ErrUnauthorized.Is(err) // true

To add context use Wrap, Wrapf or the New and Newf methods of a root error.
The innermost wrap records a stack trace that is printed with the %+v verb.
Do not create wrapped errors as package level variables, the recorded stack
trace would point to the package initialization.
*/
package errors
