package leave_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/leave"
)

func withOvertime(id, person string, hours string) leave.Application {
	h := decimal.RequireFromString(hours)
	return leave.Application{
		ID:                     leave.ApplicationID(id),
		Person:                 leave.PersonID(person),
		Status:                 leave.StatusAllowed,
		ApplicationDate:        date(2012, time.March, 1),
		StartDate:              date(2012, time.March, 10),
		EndDate:                date(2012, time.March, 10),
		OvertimeReductionHours: &h,
	}
}

func TestTotalOvertimeReduction_SumsPersonsHours(t *testing.T) {
	apps := []leave.Application{
		withOvertime("a", "horst", "-8"),
		withOvertime("b", "horst", "-2.5"),
		withOvertime("c", "klaus", "-4"),
	}

	got, err := leave.TotalOvertimeReduction(apps, "horst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(dec("-10.5")) {
		t.Errorf("got %s, want -10.5", got)
	}
}

func TestTotalOvertimeReduction_NoDataIsExactlyZero(t *testing.T) {
	// No applications at all.
	got, err := leave.TotalOvertimeReduction(nil, "horst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.Zero) {
		t.Errorf("got %s, want 0", got)
	}

	// Applications exist but none carry an overtime value.
	plain := leave.Application{ID: "a", Person: "horst", Status: leave.StatusWaiting}
	got, err = leave.TotalOvertimeReduction([]leave.Application{plain}, "horst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.Zero) {
		t.Errorf("got %s, want 0", got)
	}
}

func TestTotalOvertimeReduction_IgnoresOtherPersons(t *testing.T) {
	apps := []leave.Application{withOvertime("a", "klaus", "-8")}

	got, err := leave.TotalOvertimeReduction(apps, "horst")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.Zero) {
		t.Errorf("got %s, want 0", got)
	}
}

func TestTotalOvertimeReduction_MissingPerson(t *testing.T) {
	_, err := leave.TotalOvertimeReduction(nil, "")
	if !errors.Is(err, leave.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNormalizeOvertimeTotal(t *testing.T) {
	if got := leave.NormalizeOvertimeTotal(nil); !got.Equal(decimal.Zero) {
		t.Errorf("nil aggregate must normalize to zero, got %s", got)
	}

	v := dec("-3")
	if got := leave.NormalizeOvertimeTotal(&v); !got.Equal(v) {
		t.Errorf("got %s, want -3", got)
	}
}
