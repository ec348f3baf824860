/*
overtime.go - Overtime-reduction aggregation

PURPOSE:
  Sums the overtime-reduction hours recorded on a person's applications.
  Absence of data is normalized to an exact zero at this boundary: callers
  never receive an absent result for this operation.
*/
package leave

import (
	"github.com/shopspring/decimal"
)

// TotalOvertimeReduction sums OvertimeReductionHours across the given
// applications of person. Applications of other persons and applications
// without an overtime value are skipped. Returns exactly zero when nothing
// contributes, never an absent value.
//
// Fails with ErrInvalidArgument when person is empty.
func TotalOvertimeReduction(applications []Application, person PersonID) (decimal.Decimal, error) {
	if person == "" {
		return decimal.Zero, ErrInvalidArgument
	}

	total := decimal.Zero
	for _, app := range applications {
		if app.Person != person || app.OvertimeReductionHours == nil {
			continue
		}
		total = total.Add(*app.OvertimeReductionHours)
	}
	return total, nil
}

// NormalizeOvertimeTotal converts a store-level aggregate, where nil stands
// for "no rows", into an explicit zero. Store implementations use this when
// they compute the sum in SQL.
func NormalizeOvertimeTotal(total *decimal.Decimal) decimal.Decimal {
	if total == nil {
		return decimal.Zero
	}
	return *total
}
