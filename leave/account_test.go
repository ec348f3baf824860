/*
account_test.go - Account lifecycle tests

Tests for:
- Entitlement proration on account creation
- Year rollover with and without expiring remainder
- Duplicate and validation errors
*/
package leave_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/store/memory"
)

func newAccountService() (*leave.AccountService, *memory.Store) {
	store := memory.New()
	return &leave.AccountService{Accounts: store}, store
}

func TestCreateAccount_ComputesProratedEntitlement(t *testing.T) {
	svc, _ := newAccountService()

	created, err := svc.CreateAccount(context.Background(), leave.Account{
		Person:             "horst",
		ValidFrom:          date(2012, 8, 1),
		ValidTo:            date(2012, 12, 31),
		AnnualVacationDays: dec("28"),
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if !created.VacationDays.Equal(dec("12")) {
		t.Errorf("Expected 12 prorated days, got %s", created.VacationDays)
	}
	if created.ID == "" {
		t.Error("Expected a generated account ID")
	}
}

func TestCreateAccount_RejectsMissingPerson(t *testing.T) {
	svc, _ := newAccountService()

	_, err := svc.CreateAccount(context.Background(), leave.Account{
		ValidFrom:          date(2012, 1, 1),
		ValidTo:            date(2012, 12, 31),
		AnnualVacationDays: dec("28"),
	})

	if !errors.Is(err, leave.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestCreateAccount_RejectsNegativeDays(t *testing.T) {
	svc, _ := newAccountService()

	_, err := svc.CreateAccount(context.Background(), leave.Account{
		Person:             "horst",
		ValidFrom:          date(2012, 1, 1),
		ValidTo:            date(2012, 12, 31),
		AnnualVacationDays: dec("-1"),
	})

	if !errors.Is(err, leave.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestCreateAccount_SecondAccountSameYearIsDuplicate(t *testing.T) {
	svc, _ := newAccountService()
	base := leave.Account{
		Person:             "horst",
		ValidFrom:          date(2012, 1, 1),
		ValidTo:            date(2012, 12, 31),
		AnnualVacationDays: dec("28"),
	}
	if _, err := svc.CreateAccount(context.Background(), base); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	_, err := svc.CreateAccount(context.Background(), base)

	if !errors.Is(err, leave.ErrDuplicateAccount) {
		t.Errorf("Expected ErrDuplicateAccount, got %v", err)
	}
}

func TestGetOrCreateForYear_ReturnsExistingAccount(t *testing.T) {
	svc, _ := newAccountService()
	created, err := svc.CreateAccount(context.Background(), leave.Account{
		Person:             "horst",
		ValidFrom:          date(2012, 1, 1),
		ValidTo:            date(2012, 12, 31),
		AnnualVacationDays: dec("28"),
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	got, err := svc.GetOrCreateForYear(context.Background(), 2012, "horst")
	if err != nil {
		t.Fatalf("GetOrCreateForYear failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("Expected the existing account %s, got %s", created.ID, got.ID)
	}
}

func TestGetOrCreateForYear_RollsRemainderForward(t *testing.T) {
	// GIVEN: A 2012 account with a non-expiring remainder of 5 days
	svc, _ := newAccountService()
	if _, err := svc.CreateAccount(context.Background(), leave.Account{
		Person:                "horst",
		ValidFrom:             date(2012, 1, 1),
		ValidTo:               date(2012, 12, 31),
		AnnualVacationDays:    dec("28"),
		RemainingVacationDays: dec("5"),
	}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	// WHEN: The 2013 account is requested
	next, err := svc.GetOrCreateForYear(context.Background(), 2013, "horst")
	if err != nil {
		t.Fatalf("GetOrCreateForYear failed: %v", err)
	}

	// THEN: It covers the whole year and keeps the remainder
	if !next.ValidFrom.Equal(date(2013, 1, 1)) || !next.ValidTo.Equal(date(2013, 12, 31)) {
		t.Errorf("Expected full-year validity, got %s..%s", next.ValidFrom, next.ValidTo)
	}
	if !next.AnnualVacationDays.Equal(dec("28")) {
		t.Errorf("Expected annual entitlement carried, got %s", next.AnnualVacationDays)
	}
	if !next.RemainingVacationDays.Equal(dec("5")) {
		t.Errorf("Expected remainder 5 carried over, got %s", next.RemainingVacationDays)
	}
	if !next.VacationDays.Equal(dec("28")) {
		t.Errorf("Expected full-year entitlement 28, got %s", next.VacationDays)
	}
}

func TestGetOrCreateForYear_ExpiringRemainderIsDropped(t *testing.T) {
	svc, _ := newAccountService()
	if _, err := svc.CreateAccount(context.Background(), leave.Account{
		Person:                      "horst",
		ValidFrom:                   date(2012, 1, 1),
		ValidTo:                     date(2012, 12, 31),
		AnnualVacationDays:          dec("28"),
		RemainingVacationDays:       dec("5"),
		RemainingVacationDaysExpire: true,
	}); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	next, err := svc.GetOrCreateForYear(context.Background(), 2013, "horst")
	if err != nil {
		t.Fatalf("GetOrCreateForYear failed: %v", err)
	}

	if !next.RemainingVacationDays.Equal(decimal.Zero) {
		t.Errorf("Expected expiring remainder dropped, got %s", next.RemainingVacationDays)
	}
}

func TestGetOrCreateForYear_NoPreviousAccount(t *testing.T) {
	svc, _ := newAccountService()

	_, err := svc.GetOrCreateForYear(context.Background(), 2013, "horst")

	if !leave.IsNotFound(err) {
		t.Errorf("Expected a not-found error without a previous account, got %v", err)
	}
}
