package jointbank

import (
	"encoding/json"
	"time"

	"github.com/iov-one/jointbank/errors"
)

// UnixTime is a moment in time with seconds precision, stored as the
// number of seconds since the epoch. It is the time format of all models
// and messages.
type UnixTime int64

// AsUnixTime truncates t to seconds.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the UTC time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add returns t moved by d. Fractions of a second are dropped.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string. Times
// before the epoch are rejected.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var seconds int64
	if err := json.Unmarshal(raw, &seconds); err != nil {
		var tm time.Time
		if err := json.Unmarshal(raw, &tm); err != nil {
			return errors.Wrap(errors.ErrInput, "invalid time format")
		}
		seconds = tm.Unix()
	}
	if seconds < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(seconds)
	return nil
}
