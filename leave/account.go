/*
account.go - Account lifecycle helpers

PURPOSE:
  Creates accounts with their prorated entitlement computed up front, and
  rolls a person's account forward into a new accounting year, carrying the
  remainder over.

  Account creation is driven by an external workflow; this service is the
  piece of it that owns the entitlement math.
*/
package leave

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService creates and rolls over vacation accounts.
type AccountService struct {
	Accounts AccountStore
	Calc     EntitlementCalculator
}

// CreateAccount validates the validity interval, computes the actual
// entitlement and persists the account. The account ID is assigned here.
func (s *AccountService) CreateAccount(ctx context.Context, account Account) (*Account, error) {
	if account.Person == "" {
		return nil, ErrInvalidArgument
	}
	if account.AnnualVacationDays.IsNegative() || account.RemainingVacationDays.IsNegative() {
		return nil, fmt.Errorf("%w: vacation day counts must be non-negative", ErrInvalidArgument)
	}

	actual, err := s.Calc.ActualVacationDays(account)
	if err != nil {
		return nil, err
	}

	account.VacationDays = actual
	if account.ID == "" {
		account.ID = AccountID(uuid.NewString())
	}

	if err := s.Accounts.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetOrCreateForYear returns the person's account for year, creating it from
// the previous year's account when it does not exist yet. The new account
// covers the whole accounting year, keeps the previous annual entitlement and
// carries the previous remainder over.
func (s *AccountService) GetOrCreateForYear(ctx context.Context, year int, person PersonID) (*Account, error) {
	if person == "" {
		return nil, ErrInvalidArgument
	}

	existing, err := s.Accounts.AccountByYearAndPerson(ctx, year, person)
	if err == nil {
		return existing, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	previous, err := s.Accounts.AccountByYearAndPerson(ctx, year-1, person)
	if err != nil {
		return nil, fmt.Errorf("no account for %d to roll forward: %w", year-1, err)
	}

	carried := previous.RemainingVacationDays
	if previous.RemainingVacationDaysExpire {
		carried = decimal.Zero
	}

	return s.CreateAccount(ctx, Account{
		Person:                      person,
		ValidFrom:                   StartOfYear(year),
		ValidTo:                     EndOfYear(year),
		AnnualVacationDays:          previous.AnnualVacationDays,
		RemainingVacationDays:       carried,
		RemainingVacationDaysExpire: previous.RemainingVacationDaysExpire,
	})
}
