package x

import (
	"math"

	"github.com/iov-one/jointbank/errors"
)

// AddAmount returns a + b or ErrOverflow if the result does not fit uint64.
func AddAmount(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// SubAmount returns a - b or ErrInsufficientAmount if b is greater than a.
func SubAmount(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "%d - %d", a, b)
	}
	return a - b, nil
}
