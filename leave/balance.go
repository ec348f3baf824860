/*
balance.go - Composed balance view for one account

PURPOSE:
  Combines the prorated entitlement, the carried-over remainder and the
  vacation days consumed by approved applications into the summary a person
  sees. Pure computation over an already-fetched snapshot; the caller supplies
  the account and its applications.
*/
package leave

import (
	"github.com/shopspring/decimal"
)

// Balance is the user-facing summary for one account's accounting year.
type Balance struct {
	Person PersonID
	Year   int

	// Entitlement is the account's actual (prorated) vacation days.
	Entitlement decimal.Decimal

	// CarriedOver is the remainder from the prior period.
	CarriedOver decimal.Decimal

	// CarriedOverExpires marks whether the remainder has a forfeiture date.
	CarriedOverExpires bool

	// Consumed is the sum of vacation days of approved applications whose
	// absence period overlaps the account's validity interval.
	Consumed decimal.Decimal

	// Remaining = Entitlement + CarriedOver - Consumed.
	Remaining decimal.Decimal

	// OvertimeReduction is the person's total overtime adjustment in hours.
	OvertimeReduction decimal.Decimal
}

// ComputeBalance builds the balance view for an account from the person's
// applications. Applications of other persons are ignored, so the caller may
// pass an unfiltered collection.
func ComputeBalance(account Account, applications []Application) Balance {
	approved := ByPeriodAndPersonAndStatus(
		applications,
		account.ValidFrom,
		account.ValidTo,
		account.Person,
		StatusAllowed,
	)

	consumed := decimal.Zero
	for _, app := range approved {
		consumed = consumed.Add(app.Days)
	}

	// Zero-default by construction: an empty person would have matched no
	// applications anyway, but the account always names one.
	overtime, err := TotalOvertimeReduction(applications, account.Person)
	if err != nil {
		overtime = decimal.Zero
	}

	remaining := account.VacationDays.
		Add(account.RemainingVacationDays).
		Sub(consumed)

	return Balance{
		Person:             account.Person,
		Year:               account.Year(),
		Entitlement:        account.VacationDays,
		CarriedOver:        account.RemainingVacationDays,
		CarriedOverExpires: account.RemainingVacationDaysExpire,
		Consumed:           consumed,
		Remaining:          remaining,
		OvertimeReduction:  overtime,
	}
}
