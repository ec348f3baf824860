package leave_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/leave-engine/leave"
)

func TestComputeBalance(t *testing.T) {
	acc := leave.Account{
		ID:                    "acc-1",
		Person:                "horst",
		ValidFrom:             date(2012, time.January, 1),
		ValidTo:               date(2012, time.December, 31),
		AnnualVacationDays:    dec("28"),
		VacationDays:          dec("28"),
		RemainingVacationDays: dec("5"),
	}

	approved := absence("a", "horst", leave.StatusAllowed, date(2012, time.May, 1), date(2012, time.May, 3))
	approved.Days = dec("3")

	waiting := absence("b", "horst", leave.StatusWaiting, date(2012, time.June, 1), date(2012, time.June, 5))
	waiting.Days = dec("5")

	otherPerson := absence("c", "klaus", leave.StatusAllowed, date(2012, time.May, 1), date(2012, time.May, 3))
	otherPerson.Days = dec("3")

	otherYear := absence("d", "horst", leave.StatusAllowed, date(2013, time.May, 1), date(2013, time.May, 3))
	otherYear.Days = dec("3")

	overtime := withOvertime("e", "horst", "-8")

	balance := leave.ComputeBalance(acc, []leave.Application{approved, waiting, otherPerson, otherYear, overtime})

	assert.Equal(t, leave.PersonID("horst"), balance.Person)
	assert.Equal(t, 2012, balance.Year)
	assert.True(t, balance.Entitlement.Equal(dec("28")), "entitlement: %s", balance.Entitlement)
	assert.True(t, balance.CarriedOver.Equal(dec("5")), "carried over: %s", balance.CarriedOver)
	assert.True(t, balance.Consumed.Equal(dec("3")), "consumed: %s", balance.Consumed)
	assert.True(t, balance.Remaining.Equal(dec("30")), "remaining: %s", balance.Remaining)
	assert.True(t, balance.OvertimeReduction.Equal(dec("-8")), "overtime: %s", balance.OvertimeReduction)
}

func TestComputeBalance_NoApplications(t *testing.T) {
	acc := leave.Account{
		ID:                 "acc-1",
		Person:             "horst",
		ValidFrom:          date(2012, time.January, 1),
		ValidTo:            date(2012, time.December, 31),
		AnnualVacationDays: dec("28"),
		VacationDays:       dec("28"),
	}

	balance := leave.ComputeBalance(acc, nil)

	assert.True(t, balance.Consumed.IsZero())
	assert.True(t, balance.OvertimeReduction.IsZero(), "overtime defaults to zero, never absent")
	assert.True(t, balance.Remaining.Equal(dec("28")))
}
