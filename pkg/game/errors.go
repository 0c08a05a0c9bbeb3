package game

import (
	"errors"
	"fmt"
)

// ValidationError reports an illegal command: wrong die, blocked target,
// wrong owner, out-of-range point, or acting while bar checkers remain
// unentered. It is user-facing and guarantees that no state was mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InvariantError signals an upstream defect: an unrecognized move tag, a
// malformed snapshot, or a broken random source. It is never
// user-recoverable and callers treat it as fatal.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string { return e.Reason }

func invariantf(format string, args ...interface{}) *InvariantError {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err is (or wraps) an InvariantError.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
