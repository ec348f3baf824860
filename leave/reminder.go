/*
reminder.go - Overdue-reminder predicate for waiting applications

PURPOSE:
  Decides whether a single waiting application currently qualifies for an
  overdue-reminder notification, and scans a collection for all of them.

TWO-STATE SPLIT:
  Never reminded:   due once the configured grace period after the
                    application date has strictly passed.
  Reminded before:  due again on any later calendar day, at most once per
                    day. Whether to actually re-notify (e.g. only after N
                    more days) is the dispatcher's policy, not ours - the
                    sole guarantee here is "not already flagged today".

The predicate never mutates RemindDate. Stamping it after a successful
notification is the external dispatcher's responsibility.

SEE ALSO:
  - filter.go: ByStatus used to pre-filter waiting applications
*/
package leave

// OverdueForReminder reports whether the application is currently due for an
// overdue-reminder notification. It applies only to applications in the
// waiting state; callers must pre-filter by status.
//
// daysBeforeFirstReminder is the externally configured grace period (>= 0)
// between filing and the first reminder. The boundary is strict: on exactly
// applicationDate + daysBeforeFirstReminder the application is not yet due.
func OverdueForReminder(app Application, today Date, daysBeforeFirstReminder int) bool {
	if app.RemindDate == nil {
		// never reminded before
		minDateForNotification := app.ApplicationDate.AddDays(daysBeforeFirstReminder)
		return minDateForNotification.Before(today)
	}

	// already reminded today?
	return !app.RemindDate.Equal(today)
}

// DueForReminder returns the waiting applications that currently qualify for
// a reminder, in the order they were given. The result is never nil.
func DueForReminder(applications []Application, today Date, daysBeforeFirstReminder int) []Application {
	due := []Application{}
	for _, app := range ByStatus(applications, StatusWaiting) {
		if OverdueForReminder(app, today, daysBeforeFirstReminder) {
			due = append(due, app)
		}
	}
	return due
}
