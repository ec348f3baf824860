/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer layers (stores, HTTP handlers) wrap these with additional context.

ERROR CATEGORIES:
  1. Argument errors - A required reference is missing
  2. Period errors - A malformed account validity interval
  3. Not-found errors - Used by store implementations

NOTE:
  Missing aggregate data is deliberately NOT an error: overtime aggregation
  normalizes absence-of-data to zero (see overtime.go).
*/
package leave

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidArgument is returned when a required reference (e.g. the
	// person) is missing. Never silently defaulted.
	ErrInvalidArgument = errors.New("required argument missing")

	// ErrInvalidAccountPeriod is returned when an account's validity
	// interval is malformed: start after end, or spanning more than one
	// accounting year.
	ErrInvalidAccountPeriod = errors.New("invalid account validity period")

	// ErrAccountNotFound is returned by stores when no account exists for
	// a person and year.
	ErrAccountNotFound = errors.New("account not found")

	// ErrApplicationNotFound is returned by stores for unknown application IDs.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrDuplicateAccount is returned when a second account would be created
	// for the same person and accounting year.
	ErrDuplicateAccount = errors.New("account already exists for person and year")

	// ErrRemindBeforeApplication is returned when a remind date would be
	// stamped earlier than the application date.
	ErrRemindBeforeApplication = errors.New("remind date before application date")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidPeriodError describes why an account validity interval was rejected.
type InvalidPeriodError struct {
	From   Date
	To     Date
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid account period [%s, %s]: %s", e.From, e.To, e.Reason)
}

func (e *InvalidPeriodError) Unwrap() error {
	return ErrInvalidAccountPeriod
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidAccountPeriod) ||
		errors.Is(err, ErrDuplicateAccount) ||
		errors.Is(err, ErrRemindBeforeApplication)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrApplicationNotFound)
}
