package bankaccount

import "github.com/iov-one/jointbank/errors"

// Each error belongs to one of the framework classes, so a caller may test
// for the broad kind (errors.ErrUnauthorized.Is(err)) or for the exact
// reason (ErrNotAnOwner.Is(err)).
var (
	ErrNotAnOwner        = errors.RegisterAs(1100, "you are not an owner of this account", errors.ErrUnauthorized)
	ErrNoSelfApproval    = errors.RegisterAs(1101, "request creator cannot approve", errors.ErrUnauthorized)
	ErrNotRequestCreator = errors.RegisterAs(1102, "you did not create this request", errors.ErrUnauthorized)

	ErrDuplicateOwner = errors.RegisterAs(1110, "owners must be unique", errors.ErrInput)
	ErrTooManyOwners  = errors.RegisterAs(1111, "too many owners per account", errors.ErrInput)
	ErrInvalidAmount  = errors.RegisterAs(1112, "amount must be positive", errors.ErrInput)

	ErrInsufficientBalance = errors.RegisterAs(1120, "insufficient balance", errors.ErrState)
	ErrAlreadyApproved     = errors.RegisterAs(1121, "you can approve a request only once", errors.ErrState)
	ErrNotApproved         = errors.RegisterAs(1122, "withdraw request is not approved", errors.ErrState)
	ErrAlreadyCompleted    = errors.RegisterAs(1123, "withdraw request already completed", errors.ErrState)
)
