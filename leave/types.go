/*
Package leave provides the core leave-balance engine.

PURPOSE:
  This package contains the pure domain logic for leave accounting:
  prorating an annual vacation entitlement over a partial validity period,
  aggregating overtime-reduction adjustments per person, deciding which
  waiting applications are overdue for a reminder, and filtering application
  collections by period, person and status.

KEY CONCEPTS IN THIS FILE (types.go):
  - Account: One person's entitlement for a bounded validity interval
  - Application: A single request for time off
  - ApplicationStatus: Workflow state, read-only from this package
  - Person/PersonID: Opaque identity references

DESIGN PRINCIPLES:
  1. Purity: Every operation here is a side-effect-free computation over
     values supplied by the caller. No I/O, no internal mutable state.
  2. Precision: Uses decimal.Decimal to avoid floating-point errors in
     day and hour arithmetic.
  3. Explicit absence: Nullable fields (remind date, overtime hours) are
     pointers, never sentinel values.

SEE ALSO:
  - accrual.go: Entitlement proration and half-day rounding
  - reminder.go: Overdue-reminder predicate
  - overtime.go: Overtime-reduction aggregation
  - filter.go: Application collection filtering
*/
package leave

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type PersonID string
type AccountID string
type ApplicationID string

// Person is an identity reference. This package never mutates it.
type Person struct {
	ID        PersonID
	LoginName string
}

// =============================================================================
// ACCOUNT - One person's entitlement for a validity interval
// =============================================================================

// Account represents a person's vacation entitlement for a bounded validity
// interval. ValidFrom and ValidTo are inclusive and must fall within the
// same accounting year. A person has at most one account per year.
type Account struct {
	ID     AccountID
	Person PersonID

	ValidFrom Date
	ValidTo   Date

	// AnnualVacationDays is the full-year entitlement.
	AnnualVacationDays decimal.Decimal

	// VacationDays is the actual (possibly prorated) entitlement for the
	// validity interval, computed once at account creation.
	VacationDays decimal.Decimal

	// RemainingVacationDays is carried over from the prior period. It is the
	// only field adjusted after creation, as applications are approved.
	RemainingVacationDays decimal.Decimal

	// RemainingVacationDaysExpire marks whether the carried-over remainder
	// has a forfeiture date.
	RemainingVacationDaysExpire bool
}

// Year returns the accounting year the account belongs to.
func (a Account) Year() int {
	return a.ValidFrom.Year()
}

// =============================================================================
// APPLICATION - A request for time off
// =============================================================================

type ApplicationStatus string

const (
	StatusWaiting   ApplicationStatus = "waiting"
	StatusAllowed   ApplicationStatus = "allowed"
	StatusRejected  ApplicationStatus = "rejected"
	StatusCancelled ApplicationStatus = "cancelled"
)

// Application is one request for time off. Status transitions happen in the
// external approval workflow; this package only reads it. RemindDate is
// stamped by the external notification dispatcher, never here.
type Application struct {
	ID     ApplicationID
	Person PersonID
	Status ApplicationStatus

	// ApplicationDate is the day the request was filed.
	ApplicationDate Date

	// RemindDate is the day the last reminder was sent, nil if never.
	// Invariant: when set, it is never before ApplicationDate.
	RemindDate *Date

	// Requested absence period, inclusive on both sides.
	StartDate Date
	EndDate   Date

	// Days is the number of vacation days the absence consumes.
	Days decimal.Decimal

	// OvertimeReductionHours adjusts the person's overtime balance.
	// Negative means overtime is reduced. Nil when the request carries
	// no overtime component.
	OvertimeReductionHours *decimal.Decimal

	Reason string
}

// Period returns the requested absence period.
func (app Application) Period() (Date, Date) {
	return app.StartDate, app.EndDate
}

// OverlapsPeriod reports whether the absence period intersects [start, end],
// inclusive on both sides.
func (app Application) OverlapsPeriod(start, end Date) bool {
	return app.StartDate.BeforeOrEqual(end) && app.EndDate.AfterOrEqual(start)
}
