// Package memory provides in-memory store implementations for tests and
// development. Guarded by a RWMutex; reads hand out copies so callers always
// work on a consistent snapshot.
package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// MEMORY STORE - Accounts and applications in process memory
// =============================================================================

type Store struct {
	mu           sync.RWMutex
	accounts     []leave.Account
	applications []leave.Application
}

func New() *Store {
	return &Store{}
}

// Compile-time interface checks.
var (
	_ leave.AccountStore     = (*Store)(nil)
	_ leave.ApplicationStore = (*Store)(nil)
)

// =============================================================================
// ACCOUNT STORE
// =============================================================================

func (s *Store) SaveAccount(_ context.Context, account leave.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Person == account.Person && existing.Year() == account.Year() {
			return leave.ErrDuplicateAccount
		}
	}
	s.accounts = append(s.accounts, account)
	return nil
}

func (s *Store) UpdateRemainingVacationDays(_ context.Context, id leave.AccountID, remaining decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].RemainingVacationDays = remaining
			return nil
		}
	}
	return leave.ErrAccountNotFound
}

func (s *Store) AccountByYearAndPerson(_ context.Context, year int, person leave.PersonID) (*leave.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Person == person && account.Year() == year {
			copied := account
			return &copied, nil
		}
	}
	return nil, leave.ErrAccountNotFound
}

// =============================================================================
// APPLICATION STORE
// =============================================================================

func (s *Store) SaveApplication(_ context.Context, app leave.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.applications {
		if s.applications[i].ID == app.ID {
			s.applications[i] = app
			return nil
		}
	}
	s.applications = append(s.applications, app)
	return nil
}

func (s *Store) ApplicationByID(_ context.Context, id leave.ApplicationID) (*leave.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, app := range s.applications {
		if app.ID == id {
			copied := app
			return &copied, nil
		}
	}
	return nil, leave.ErrApplicationNotFound
}

func (s *Store) ApplicationsByStatus(_ context.Context, status leave.ApplicationStatus) ([]leave.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return leave.ByStatus(s.applications, status), nil
}

func (s *Store) ApplicationsByPerson(_ context.Context, person leave.PersonID) ([]leave.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []leave.Application{}
	for _, app := range s.applications {
		if app.Person == person {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *Store) ApplicationsInPeriod(_ context.Context, start, end leave.Date) ([]leave.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []leave.Application{}
	for _, app := range s.applications {
		if app.OverlapsPeriod(start, end) {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *Store) StampRemindDate(_ context.Context, id leave.ApplicationID, day leave.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.applications {
		if s.applications[i].ID != id {
			continue
		}
		if day.Before(s.applications[i].ApplicationDate) {
			return leave.ErrRemindBeforeApplication
		}
		stamped := day
		s.applications[i].RemindDate = &stamped
		return nil
	}
	return leave.ErrApplicationNotFound
}
