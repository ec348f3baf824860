/*
store.go - Persistence interfaces for accounts and applications

PURPOSE:
  Defines the boundary between the pure engine and the persistence
  collaborator. The engine itself performs no I/O; stores hand it consistent,
  already-fetched snapshots and accept the remind-date stamp back from the
  notification dispatcher.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite store
  - store/memory: In-memory store for tests and development

ORDERING:
  Stores return applications in storage order. The engine's filters preserve
  whatever order the store provides.
*/
package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountStore persists vacation accounts. A person has at most one account
// per accounting year; SaveAccount enforces the uniqueness.
type AccountStore interface {
	// SaveAccount inserts a new account. Returns ErrDuplicateAccount when
	// one already exists for the person and year.
	SaveAccount(ctx context.Context, account Account) error

	// UpdateRemainingVacationDays adjusts the only mutable account field.
	UpdateRemainingVacationDays(ctx context.Context, id AccountID, remaining decimal.Decimal) error

	// AccountByYearAndPerson returns the account for a person and year, or
	// ErrAccountNotFound.
	AccountByYearAndPerson(ctx context.Context, year int, person PersonID) (*Account, error)
}

// ApplicationStore persists leave applications.
type ApplicationStore interface {
	// SaveApplication inserts or replaces an application.
	SaveApplication(ctx context.Context, app Application) error

	// ApplicationByID returns one application, or ErrApplicationNotFound.
	ApplicationByID(ctx context.Context, id ApplicationID) (*Application, error)

	// ApplicationsByStatus returns all applications in the given status,
	// in storage order.
	ApplicationsByStatus(ctx context.Context, status ApplicationStatus) ([]Application, error)

	// ApplicationsByPerson returns all applications of a person, in
	// storage order.
	ApplicationsByPerson(ctx context.Context, person PersonID) ([]Application, error)

	// ApplicationsInPeriod returns applications whose absence period
	// overlaps [start, end], in storage order.
	ApplicationsInPeriod(ctx context.Context, start, end Date) ([]Application, error)

	// StampRemindDate records that a reminder was sent on day. Returns
	// ErrRemindBeforeApplication when day is earlier than the application
	// date, ErrApplicationNotFound for unknown IDs.
	StampRemindDate(ctx context.Context, id ApplicationID, day Date) error
}
