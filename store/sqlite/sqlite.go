/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements leave.AccountStore and leave.ApplicationStore using SQLite.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  accounts:     One row per person and accounting year
  applications: Leave requests with status, absence period and remind date

DATA REPRESENTATION:
  Dates are stored as ISO text (lexicographically ordered, so range queries
  work with plain comparisons). Decimals are stored as text to avoid float
  round-trips.

UNIQUENESS:
  idx_accounts_person_year enforces the one-account-per-person-per-year
  invariant at the database level; violations surface as
  leave.ErrDuplicateAccount.

WAL MODE:
  Opened with WAL (Write-Ahead Logging): multiple readers don't block, one
  writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/leave.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - leave/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/leave"
)

// Store implements the leave storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time interface checks.
var (
	_ leave.AccountStore     = (*Store)(nil)
	_ leave.ApplicationStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Accounts (one per person per accounting year)
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		person TEXT NOT NULL,
		year INTEGER NOT NULL,
		valid_from TEXT NOT NULL,
		valid_to TEXT NOT NULL,
		annual_vacation_days TEXT NOT NULL,
		vacation_days TEXT NOT NULL,
		remaining_vacation_days TEXT NOT NULL,
		remaining_expires INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- CRITICAL: a person has at most one account per accounting year
	CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_person_year
		ON accounts(person, year);

	-- Applications (leave requests)
	CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		person TEXT NOT NULL,
		status TEXT NOT NULL,
		application_date TEXT NOT NULL,
		remind_date TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days TEXT NOT NULL,
		overtime_hours TEXT,
		reason TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_applications_status
		ON applications(status);
	CREATE INDEX IF NOT EXISTS idx_applications_person
		ON applications(person);

	-- For period overlap queries (hot path)
	CREATE INDEX IF NOT EXISTS idx_applications_period
		ON applications(start_date, end_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ACCOUNT STORE (leave.AccountStore interface)
// =============================================================================

func (s *Store) SaveAccount(ctx context.Context, account leave.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO accounts
		(id, person, year, valid_from, valid_to, annual_vacation_days,
		 vacation_days, remaining_vacation_days, remaining_expires, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Person,
		account.Year(),
		account.ValidFrom.String(),
		account.ValidTo.String(),
		account.AnnualVacationDays.String(),
		account.VacationDays.String(),
		account.RemainingVacationDays.String(),
		account.RemainingVacationDaysExpire,
		time.Now().UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueConstraintError(err) {
			return leave.ErrDuplicateAccount
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (s *Store) UpdateRemainingVacationDays(ctx context.Context, id leave.AccountID, remaining decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET remaining_vacation_days = ? WHERE id = ?",
		remaining.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update remaining vacation days: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return leave.ErrAccountNotFound
	}
	return nil
}

func (s *Store) AccountByYearAndPerson(ctx context.Context, year int, person leave.PersonID) (*leave.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, person, valid_from, valid_to, annual_vacation_days,
		       vacation_days, remaining_vacation_days, remaining_expires
		FROM accounts
		WHERE person = ? AND year = ?
	`

	row := s.db.QueryRowContext(ctx, query, person, year)

	var (
		account                   leave.Account
		validFrom, validTo        string
		annual, actual, remaining string
	)
	err := row.Scan(&account.ID, &account.Person, &validFrom, &validTo,
		&annual, &actual, &remaining, &account.RemainingVacationDaysExpire)
	if err == sql.ErrNoRows {
		return nil, leave.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if account.ValidFrom, err = leave.ParseDate(validFrom); err != nil {
		return nil, fmt.Errorf("corrupt valid_from %q: %w", validFrom, err)
	}
	if account.ValidTo, err = leave.ParseDate(validTo); err != nil {
		return nil, fmt.Errorf("corrupt valid_to %q: %w", validTo, err)
	}
	if account.AnnualVacationDays, err = decimal.NewFromString(annual); err != nil {
		return nil, fmt.Errorf("corrupt annual_vacation_days %q: %w", annual, err)
	}
	if account.VacationDays, err = decimal.NewFromString(actual); err != nil {
		return nil, fmt.Errorf("corrupt vacation_days %q: %w", actual, err)
	}
	if account.RemainingVacationDays, err = decimal.NewFromString(remaining); err != nil {
		return nil, fmt.Errorf("corrupt remaining_vacation_days %q: %w", remaining, err)
	}

	return &account, nil
}

// =============================================================================
// APPLICATION STORE (leave.ApplicationStore interface)
// =============================================================================

const applicationColumns = `id, person, status, application_date, remind_date,
	start_date, end_date, days, overtime_hours, reason`

func (s *Store) SaveApplication(ctx context.Context, app leave.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO applications
		(id, person, status, application_date, remind_date, start_date, end_date,
		 days, overtime_hours, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			remind_date = excluded.remind_date,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			days = excluded.days,
			overtime_hours = excluded.overtime_hours,
			reason = excluded.reason
	`

	var remindDate sql.NullString
	if app.RemindDate != nil {
		remindDate = sql.NullString{String: app.RemindDate.String(), Valid: true}
	}
	var overtime sql.NullString
	if app.OvertimeReductionHours != nil {
		overtime = sql.NullString{String: app.OvertimeReductionHours.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		app.ID,
		app.Person,
		app.Status,
		app.ApplicationDate.String(),
		remindDate,
		app.StartDate.String(),
		app.EndDate.String(),
		app.Days.String(),
		overtime,
		app.Reason,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

func (s *Store) ApplicationByID(ctx context.Context, id leave.ApplicationID) (*leave.Application, error) {
	apps, err := s.queryApplications(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, leave.ErrApplicationNotFound
	}
	return &apps[0], nil
}

func (s *Store) ApplicationsByStatus(ctx context.Context, status leave.ApplicationStatus) ([]leave.Application, error) {
	return s.queryApplications(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE status = ? ORDER BY rowid ASC",
		status)
}

func (s *Store) ApplicationsByPerson(ctx context.Context, person leave.PersonID) ([]leave.Application, error) {
	return s.queryApplications(ctx,
		"SELECT "+applicationColumns+" FROM applications WHERE person = ? ORDER BY rowid ASC",
		person)
}

func (s *Store) ApplicationsInPeriod(ctx context.Context, start, end leave.Date) ([]leave.Application, error) {
	// Inclusive overlap: absence starts before the query ends and ends after
	// the query starts. ISO text dates compare correctly as strings.
	return s.queryApplications(ctx,
		"SELECT "+applicationColumns+` FROM applications
		 WHERE start_date <= ? AND end_date >= ? ORDER BY rowid ASC`,
		end.String(), start.String())
}

func (s *Store) StampRemindDate(ctx context.Context, id leave.ApplicationID, day leave.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE applications SET remind_date = ? WHERE id = ? AND application_date <= ?",
		day.String(), id, day.String())
	if err != nil {
		return fmt.Errorf("failed to stamp remind date: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish unknown ID from an invariant violation.
		var count int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM applications WHERE id = ?", id).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return leave.ErrApplicationNotFound
		}
		return leave.ErrRemindBeforeApplication
	}
	return nil
}

// OvertimeTotal computes the person's overtime-reduction sum in SQL.
// A nil result means no rows contributed; leave.NormalizeOvertimeTotal turns
// that into an explicit zero at the aggregation boundary.
func (s *Store) OvertimeTotal(ctx context.Context, person leave.PersonID) (*decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(overtime_hours) FROM applications WHERE person = ? AND overtime_hours IS NOT NULL",
		person,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to sum overtime: %w", err)
	}

	if !total.Valid {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(total.String)
	if err != nil {
		return nil, fmt.Errorf("corrupt overtime sum %q: %w", total.String, err)
	}
	return &parsed, nil
}

func (s *Store) queryApplications(ctx context.Context, query string, args ...any) ([]leave.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	apps := []leave.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func scanApplication(rows *sql.Rows) (leave.Application, error) {
	var (
		app                leave.Application
		applicationDate    string
		remindDate         sql.NullString
		startDate, endDate string
		days               string
		overtime, reason   sql.NullString
	)

	err := rows.Scan(&app.ID, &app.Person, &app.Status, &applicationDate,
		&remindDate, &startDate, &endDate, &days, &overtime, &reason)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to scan application: %w", err)
	}

	if app.ApplicationDate, err = leave.ParseDate(applicationDate); err != nil {
		return leave.Application{}, fmt.Errorf("corrupt application_date %q: %w", applicationDate, err)
	}
	if app.StartDate, err = leave.ParseDate(startDate); err != nil {
		return leave.Application{}, fmt.Errorf("corrupt start_date %q: %w", startDate, err)
	}
	if app.EndDate, err = leave.ParseDate(endDate); err != nil {
		return leave.Application{}, fmt.Errorf("corrupt end_date %q: %w", endDate, err)
	}
	if app.Days, err = decimal.NewFromString(days); err != nil {
		return leave.Application{}, fmt.Errorf("corrupt days %q: %w", days, err)
	}

	if remindDate.Valid {
		parsed, err := leave.ParseDate(remindDate.String)
		if err != nil {
			return leave.Application{}, fmt.Errorf("corrupt remind_date %q: %w", remindDate.String, err)
		}
		app.RemindDate = &parsed
	}
	if overtime.Valid {
		parsed, err := decimal.NewFromString(overtime.String)
		if err != nil {
			return leave.Application{}, fmt.Errorf("corrupt overtime_hours %q: %w", overtime.String, err)
		}
		app.OvertimeReductionHours = &parsed
	}
	app.Reason = reason.String

	return app, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
