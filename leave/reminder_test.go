package leave_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/leave"
)

func waiting(id string, applied leave.Date) leave.Application {
	return leave.Application{
		ID:              leave.ApplicationID(id),
		Person:          "horst",
		Status:          leave.StatusWaiting,
		ApplicationDate: applied,
		StartDate:       applied.AddDays(10),
		EndDate:         applied.AddDays(12),
	}
}

// =============================================================================
// FIRST-REMINDER BOUNDARY
// =============================================================================

func TestOverdueForReminder_NeverReminded(t *testing.T) {
	applied := date(2012, time.November, 1)
	app := waiting("app-1", applied)
	const graceDays = 2

	cases := []struct {
		name  string
		today leave.Date
		want  bool
	}{
		{"before grace period ends", applied.AddDays(1), false},
		{"exactly at grace boundary", applied.AddDays(graceDays), false},
		{"one day past boundary", applied.AddDays(graceDays + 1), true},
		{"long past boundary", applied.AddDays(30), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.OverdueForReminder(app, tc.today, graceDays)
			if got != tc.want {
				t.Errorf("today=%s: got %v, want %v", tc.today, got, tc.want)
			}
		})
	}
}

func TestOverdueForReminder_ZeroGracePeriod(t *testing.T) {
	applied := date(2012, time.November, 1)
	app := waiting("app-1", applied)

	if leave.OverdueForReminder(app, applied, 0) {
		t.Error("not due on the application day itself")
	}
	if !leave.OverdueForReminder(app, applied.AddDays(1), 0) {
		t.Error("due the day after with a zero grace period")
	}
}

// =============================================================================
// REMINDED-BEFORE BRANCH
// =============================================================================

func TestOverdueForReminder_AlreadyRemindedToday(t *testing.T) {
	today := date(2012, time.November, 10)
	app := waiting("app-1", date(2012, time.November, 1))
	app.RemindDate = &today

	if leave.OverdueForReminder(app, today, 2) {
		t.Error("must not flag the same application twice on one calendar day")
	}
}

func TestOverdueForReminder_RemindedOnEarlierDay(t *testing.T) {
	reminded := date(2012, time.November, 9)
	app := waiting("app-1", date(2012, time.November, 1))
	app.RemindDate = &reminded

	if !leave.OverdueForReminder(app, date(2012, time.November, 10), 2) {
		t.Error("reminded yesterday, due again today")
	}
}

func TestOverdueForReminder_SecondInvocationSameDay(t *testing.T) {
	// Once the dispatcher stamps RemindDate with today, the predicate flips
	// to false for the rest of the day.
	today := date(2012, time.November, 20)
	app := waiting("app-1", date(2012, time.November, 1))

	if !leave.OverdueForReminder(app, today, 2) {
		t.Fatal("expected application to be due")
	}

	app.RemindDate = &today

	if leave.OverdueForReminder(app, today, 2) {
		t.Error("second invocation on the same day must return false")
	}
}

// =============================================================================
// COLLECTION SCAN
// =============================================================================

func TestDueForReminder(t *testing.T) {
	today := date(2012, time.November, 20)
	yesterday := date(2012, time.November, 19)

	fresh := waiting("fresh", today.AddDays(-1))

	overdue := waiting("overdue", today.AddDays(-10))

	flaggedToday := waiting("flagged-today", today.AddDays(-10))
	flaggedToday.RemindDate = &today

	flaggedEarlier := waiting("flagged-earlier", today.AddDays(-10))
	flaggedEarlier.RemindDate = &yesterday

	allowed := waiting("allowed", today.AddDays(-10))
	allowed.Status = leave.StatusAllowed

	due := leave.DueForReminder(
		[]leave.Application{fresh, overdue, flaggedToday, flaggedEarlier, allowed},
		today, 2)

	if len(due) != 2 {
		t.Fatalf("expected 2 due applications, got %d", len(due))
	}
	if due[0].ID != "overdue" || due[1].ID != "flagged-earlier" {
		t.Errorf("wrong applications or order: %s, %s", due[0].ID, due[1].ID)
	}
}

func TestDueForReminder_EmptyResultIsNotNil(t *testing.T) {
	due := leave.DueForReminder(nil, date(2012, time.November, 20), 2)
	if due == nil {
		t.Error("scan must return an empty slice, not nil")
	}
	if len(due) != 0 {
		t.Errorf("expected no due applications, got %d", len(due))
	}
}
