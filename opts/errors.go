package opts

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned by Build when a custom timestamp pattern
// cannot be compiled or fails the probe format call.
var ErrInvalidTimeFormat = errors.New("invalid timestamp format")

// TimeFormatError carries the rejected pattern and the underlying cause.
// It matches ErrInvalidTimeFormat with errors.Is.
type TimeFormatError struct {
	Pattern string
	Err     error
}

func (e *TimeFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %q", ErrInvalidTimeFormat, e.Pattern)
	}
	return fmt.Sprintf("%s %q: %v", ErrInvalidTimeFormat, e.Pattern, e.Err)
}

func (e *TimeFormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidTimeFormat}
	}
	return []error{ErrInvalidTimeFormat, e.Err}
}
