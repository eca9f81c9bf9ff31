package txscript

import (
	"fmt"
)

// SigningError is returned when the signing key rejects a digest or fails
// to produce a signature.
type SigningError struct {
	InputIndex int
	Err        error
}

func (e *SigningError) Error() string {
	if e.InputIndex < 0 {
		return fmt.Sprintf("signing failed: %s", e.Err)
	}
	return fmt.Sprintf("signing input %d failed: %s", e.InputIndex, e.Err)
}

// Unwrap returns the error reported by the signing key.
func (e *SigningError) Unwrap() error {
	return e.Err
}

// AggregationError is returned when partial signatures cannot be assembled
// into a multisig unlocking script, or do not match its redeem script.
type AggregationError struct {
	InputIndex  int
	Description string
	Err         error
}

func (e *AggregationError) Error() string {
	msg := fmt.Sprintf("input %d: %s", e.InputIndex, e.Description)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *AggregationError) Unwrap() error {
	return e.Err
}

func aggregationError(idx int, err error, format string, args ...interface{}) *AggregationError {
	return &AggregationError{
		InputIndex:  idx,
		Description: fmt.Sprintf(format, args...),
		Err:         err,
	}
}
