/*
filter.go - Read-only filtering of application collections

PURPOSE:
  Pure filtering operations over an application slice: by status, by period
  overlap and person, by period overlap and status, and the combination of
  all three. Used by the reminder scan, overtime aggregation and reporting
  callers.

SEMANTICS:
  "Overlap" means the application's absence period intersects the queried
  period, inclusive bounds on both sides. Input order is preserved; no
  ordering of our own is imposed. An empty result is a valid outcome and is
  always an empty slice, never nil.
*/
package leave

// ByStatus returns the applications in the given status.
func ByStatus(applications []Application, status ApplicationStatus) []Application {
	return filter(applications, func(app Application) bool {
		return app.Status == status
	})
}

// ByPeriodAndPerson returns person's applications whose absence period
// overlaps [start, end].
func ByPeriodAndPerson(applications []Application, start, end Date, person PersonID) []Application {
	return filter(applications, func(app Application) bool {
		return app.Person == person && app.OverlapsPeriod(start, end)
	})
}

// ByPeriodAndStatus returns the applications in the given status whose
// absence period overlaps [start, end].
func ByPeriodAndStatus(applications []Application, start, end Date, status ApplicationStatus) []Application {
	return filter(applications, func(app Application) bool {
		return app.Status == status && app.OverlapsPeriod(start, end)
	})
}

// ByPeriodAndPersonAndStatus combines all three criteria.
func ByPeriodAndPersonAndStatus(applications []Application, start, end Date, person PersonID, status ApplicationStatus) []Application {
	return filter(applications, func(app Application) bool {
		return app.Person == person && app.Status == status && app.OverlapsPeriod(start, end)
	})
}

func filter(applications []Application, keep func(Application) bool) []Application {
	out := []Application{}
	for _, app := range applications {
		if keep(app) {
			out = append(out, app)
		}
	}
	return out
}
