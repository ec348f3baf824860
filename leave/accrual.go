/*
accrual.go - Entitlement proration and half-day rounding

PURPOSE:
  Computes the actual vacation-day entitlement for an account whose validity
  interval covers only part of the accounting year (mid-year hires, mid-year
  contract changes).

ALGORITHM:
  1. Count the calendar months the interval covers. The starting month is
     weighted: starting before the 15th earns the full month, starting on or
     after the 15th earns half of it.
  2. Monthly accrual rate = annual entitlement / 12.
  3. Raw entitlement = weighted months x monthly rate.
  4. Round the raw value to the half-day grid (see roundToHalfDays).

  An account aligned to the whole accounting year returns the annual
  entitlement untouched, so fractional entitlements like 33.3 survive.

EXAMPLE:
  calc := EntitlementCalculator{}
  account := Account{
      ValidFrom:          NewDate(2012, time.August, 1),
      ValidTo:            NewDate(2012, time.December, 31),
      AnnualVacationDays: decimal.NewFromInt(28),
  }
  days, err := calc.ActualVacationDays(account)
  // days = 12 (5 months x 28/12 = 11.67, rounded up)

SEE ALSO:
  - balance.go: Combines the entitlement with carryover and consumption
  - errors.go: InvalidPeriodError for malformed intervals
*/
package leave

import (
	"github.com/shopspring/decimal"
)

var (
	twelve     = decimal.NewFromInt(12)
	twentyFour = decimal.NewFromInt(24)
	half       = decimal.RequireFromString("0.5")

	// Rounding thresholds on the fractional part of the raw entitlement.
	// Derived from observed behavior: 11.67 -> 12, 9.33 -> 9.5, 11.1 -> 11,
	// 17.5 -> 18, 12.83 -> 13.
	roundDownBelow = decimal.RequireFromString("0.3")
	roundUpFrom    = half
)

// monthsInYear is the number of weighted months in a full accounting year.
const monthsInYear = 12

// EntitlementCalculator prorates an annual vacation entitlement over an
// account's validity interval. Stateless; safe for concurrent use.
type EntitlementCalculator struct{}

// ActualVacationDays returns the entitlement for the account's validity
// interval, rounded to the half-day grid. The result is non-negative and
// deterministic for identical inputs.
//
// Fails with ErrInvalidAccountPeriod if ValidFrom is after ValidTo or the
// interval spans more than one accounting year.
func (EntitlementCalculator) ActualVacationDays(account Account) (decimal.Decimal, error) {
	from, to := account.ValidFrom, account.ValidTo

	if from.After(to) {
		return decimal.Zero, &InvalidPeriodError{From: from, To: to, Reason: "start after end"}
	}
	if from.Year() != to.Year() {
		return decimal.Zero, &InvalidPeriodError{From: from, To: to, Reason: "spans more than one accounting year"}
	}

	halfMonths := weightedHalfMonths(from, to)

	// Full accounting year: the annual entitlement applies as-is, without
	// touching the half-day grid.
	if halfMonths == 2*monthsInYear {
		return account.AnnualVacationDays, nil
	}

	// raw = halfMonths/2 x annual/12, kept in one exact expression.
	raw := account.AnnualVacationDays.
		Mul(decimal.NewFromInt(int64(halfMonths))).
		Div(twentyFour)

	return roundToHalfDays(raw), nil
}

// weightedHalfMonths counts the months covered by [from, to] in half-month
// units. The starting month counts full (2) when the interval begins before
// the 15th and half (1) from the 15th onward; every later month counts full.
func weightedHalfMonths(from, to Date) int {
	wholeMonths := int(to.Month()) - int(from.Month())

	startWeight := 2
	if from.Day() >= 15 {
		startWeight = 1
	}

	return 2*wholeMonths + startWeight
}

// roundToHalfDays rounds a raw entitlement to the half-day grid. With f the
// fractional part of the value:
//
//	f == 0          keep the whole number
//	f <  0.3        round down to the whole
//	0.3 <= f < 0.5  round up to the half
//	f >= 0.5        round up to the next whole
func roundToHalfDays(raw decimal.Decimal) decimal.Decimal {
	whole := raw.Floor()
	frac := raw.Sub(whole)

	switch {
	case frac.IsZero():
		return whole
	case frac.LessThan(roundDownBelow):
		return whole
	case frac.LessThan(roundUpFrom):
		return whole.Add(half)
	default:
		return whole.Add(decimal.NewFromInt(1))
	}
}
