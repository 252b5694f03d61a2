package carbon

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode is returned when a transport mode has no factor table entry.
	ErrUnknownMode = errors.New("unknown transport mode")

	// ErrInvalidDistance is returned for negative, NaN or infinite distances.
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrDivisionByZero is returned when a percentage is requested against a
	// zero baseline with a non-zero numerator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidInput is returned for negative or non-finite emissions, credits
	// or pricing parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// UnknownModeError reports the mode that was not found.
type UnknownModeError struct {
	Mode TransportMode
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownMode, string(e.Mode))
}

// Unwrap allows errors.Is(err, ErrUnknownMode).
func (e *UnknownModeError) Unwrap() error {
	return ErrUnknownMode
}
