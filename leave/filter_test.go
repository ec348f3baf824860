package leave_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/leave"
)

func absence(id, person string, status leave.ApplicationStatus, start, end leave.Date) leave.Application {
	return leave.Application{
		ID:              leave.ApplicationID(id),
		Person:          leave.PersonID(person),
		Status:          status,
		ApplicationDate: start.AddDays(-14),
		StartDate:       start,
		EndDate:         end,
	}
}

func TestByStatus(t *testing.T) {
	apps := []leave.Application{
		absence("a", "horst", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("b", "klaus", leave.StatusAllowed, date(2012, time.May, 2), date(2012, time.May, 4)),
		absence("c", "horst", leave.StatusWaiting, date(2012, time.June, 1), date(2012, time.June, 1)),
	}

	got := leave.ByStatus(apps, leave.StatusWaiting)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("unexpected result: %+v", got)
	}

	if rejected := leave.ByStatus(apps, leave.StatusRejected); rejected == nil || len(rejected) != 0 {
		t.Errorf("no matches must yield an empty slice, got %#v", rejected)
	}
}

func TestPeriodOverlapIsInclusive(t *testing.T) {
	// Absence May 10 - May 12.
	app := absence("a", "horst", leave.StatusWaiting, date(2012, time.May, 10), date(2012, time.May, 12))
	apps := []leave.Application{app}

	cases := []struct {
		name       string
		start, end leave.Date
		want       int
	}{
		{"query ends on absence start", date(2012, time.May, 1), date(2012, time.May, 10), 1},
		{"query starts on absence end", date(2012, time.May, 12), date(2012, time.May, 20), 1},
		{"absence inside query", date(2012, time.May, 1), date(2012, time.May, 31), 1},
		{"query inside absence", date(2012, time.May, 11), date(2012, time.May, 11), 1},
		{"query before absence", date(2012, time.May, 1), date(2012, time.May, 9), 0},
		{"query after absence", date(2012, time.May, 13), date(2012, time.May, 31), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := leave.ByPeriodAndPerson(apps, tc.start, tc.end, "horst")
			if len(got) != tc.want {
				t.Errorf("got %d matches, want %d", len(got), tc.want)
			}
		})
	}
}

func TestByPeriodAndPerson_FiltersPerson(t *testing.T) {
	apps := []leave.Application{
		absence("a", "horst", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("b", "klaus", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 3)),
	}

	got := leave.ByPeriodAndPerson(apps, date(2012, time.May, 1), date(2012, time.May, 31), "klaus")
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestByPeriodAndStatus(t *testing.T) {
	apps := []leave.Application{
		absence("a", "horst", leave.StatusAllowed, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("b", "horst", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("c", "horst", leave.StatusAllowed, date(2012, time.July, 1), date(2012, time.July, 3)),
	}

	got := leave.ByPeriodAndStatus(apps, date(2012, time.May, 1), date(2012, time.May, 31), leave.StatusAllowed)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestByPeriodAndPersonAndStatus(t *testing.T) {
	apps := []leave.Application{
		absence("a", "horst", leave.StatusAllowed, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("b", "klaus", leave.StatusAllowed, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("c", "horst", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 3)),
		absence("d", "horst", leave.StatusAllowed, date(2012, time.August, 1), date(2012, time.August, 3)),
	}

	got := leave.ByPeriodAndPersonAndStatus(apps,
		date(2012, time.May, 1), date(2012, time.May, 31), "horst", leave.StatusAllowed)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestFilterPreservesInputOrder(t *testing.T) {
	apps := []leave.Application{
		absence("z", "horst", leave.StatusWaiting, date(2012, time.May, 9), date(2012, time.May, 9)),
		absence("m", "horst", leave.StatusWaiting, date(2012, time.May, 1), date(2012, time.May, 1)),
		absence("a", "horst", leave.StatusWaiting, date(2012, time.May, 5), date(2012, time.May, 5)),
	}

	got := leave.ByStatus(apps, leave.StatusWaiting)
	for i, want := range []leave.ApplicationID{"z", "m", "a"} {
		if got[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, want)
		}
	}
}
