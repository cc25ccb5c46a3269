package tournament

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks user-correctable failures: nothing was mutated and
	// the message is safe to surface to the operator.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition marks an operation applied to a match or
	// tournament in the wrong state. The state is left untouched; callers
	// may treat it as non-fatal but it is always reported, never swallowed.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound marks lookups of players, tables or archive entries that
	// do not exist.
	ErrNotFound = errors.New("not found")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func transitionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
