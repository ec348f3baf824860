/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATA REPRESENTATION:
  Dates are ISO strings (2006-01-02). Decimal quantities are JSON strings to
  keep exact values; clients parse them with their own decimal library.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/leave-engine/leave"
)

// =============================================================================
// ERROR RESPONSE
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// ACCOUNT TYPES
// =============================================================================

// AccountDTO represents a vacation account in API responses.
type AccountDTO struct {
	ID                          string `json:"id"`
	Person                      string `json:"person"`
	Year                        int    `json:"year"`
	ValidFrom                   string `json:"valid_from"`
	ValidTo                     string `json:"valid_to"`
	AnnualVacationDays          string `json:"annual_vacation_days"`
	VacationDays                string `json:"vacation_days"`
	RemainingVacationDays       string `json:"remaining_vacation_days"`
	RemainingVacationDaysExpire bool   `json:"remaining_vacation_days_expire"`
}

// CreateAccountRequest is the request to open an account for a validity period.
type CreateAccountRequest struct {
	Person                      string `json:"person"`
	ValidFrom                   string `json:"valid_from"`
	ValidTo                     string `json:"valid_to"`
	AnnualVacationDays          string `json:"annual_vacation_days"`
	RemainingVacationDays       string `json:"remaining_vacation_days"`
	RemainingVacationDaysExpire bool   `json:"remaining_vacation_days_expire"`
}

// BalanceDTO is the composed balance view for one accounting year.
type BalanceDTO struct {
	Person             string `json:"person"`
	Year               int    `json:"year"`
	Entitlement        string `json:"entitlement"`
	CarriedOver        string `json:"carried_over"`
	CarriedOverExpires bool   `json:"carried_over_expires"`
	Consumed           string `json:"consumed"`
	Remaining          string `json:"remaining"`
	OvertimeReduction  string `json:"overtime_reduction"`
}

// OvertimeDTO is a person's total overtime reduction.
type OvertimeDTO struct {
	Person string `json:"person"`
	Hours  string `json:"hours"`
}

// =============================================================================
// APPLICATION TYPES
// =============================================================================

// ApplicationDTO represents a leave application in API responses.
type ApplicationDTO struct {
	ID                     string  `json:"id"`
	Person                 string  `json:"person"`
	Status                 string  `json:"status"`
	ApplicationDate        string  `json:"application_date"`
	RemindDate             *string `json:"remind_date,omitempty"`
	StartDate              string  `json:"start_date"`
	EndDate                string  `json:"end_date"`
	Days                   string  `json:"days"`
	OvertimeReductionHours *string `json:"overtime_reduction_hours,omitempty"`
	Reason                 string  `json:"reason,omitempty"`
}

// SubmitApplicationRequest is the request to file a leave application.
type SubmitApplicationRequest struct {
	Person                 string  `json:"person"`
	StartDate              string  `json:"start_date"`
	EndDate                string  `json:"end_date"`
	Days                   string  `json:"days"`
	OvertimeReductionHours *string `json:"overtime_reduction_hours,omitempty"`
	Reason                 string  `json:"reason,omitempty"`
}

// ReminderRunDTO summarizes one reminder dispatch run.
type ReminderRunDTO struct {
	Today    string           `json:"today"`
	Notified int              `json:"notified"`
	Due      []ApplicationDTO `json:"due"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAccountDTO(account leave.Account) AccountDTO {
	return AccountDTO{
		ID:                          string(account.ID),
		Person:                      string(account.Person),
		Year:                        account.Year(),
		ValidFrom:                   account.ValidFrom.String(),
		ValidTo:                     account.ValidTo.String(),
		AnnualVacationDays:          account.AnnualVacationDays.String(),
		VacationDays:                account.VacationDays.String(),
		RemainingVacationDays:       account.RemainingVacationDays.String(),
		RemainingVacationDaysExpire: account.RemainingVacationDaysExpire,
	}
}

func toBalanceDTO(balance leave.Balance) BalanceDTO {
	return BalanceDTO{
		Person:             string(balance.Person),
		Year:               balance.Year,
		Entitlement:        balance.Entitlement.String(),
		CarriedOver:        balance.CarriedOver.String(),
		CarriedOverExpires: balance.CarriedOverExpires,
		Consumed:           balance.Consumed.String(),
		Remaining:          balance.Remaining.String(),
		OvertimeReduction:  balance.OvertimeReduction.String(),
	}
}

func toApplicationDTO(app leave.Application) ApplicationDTO {
	dto := ApplicationDTO{
		ID:              string(app.ID),
		Person:          string(app.Person),
		Status:          string(app.Status),
		ApplicationDate: app.ApplicationDate.String(),
		StartDate:       app.StartDate.String(),
		EndDate:         app.EndDate.String(),
		Days:            app.Days.String(),
		Reason:          app.Reason,
	}
	if app.RemindDate != nil {
		s := app.RemindDate.String()
		dto.RemindDate = &s
	}
	if app.OvertimeReductionHours != nil {
		s := app.OvertimeReductionHours.String()
		dto.OvertimeReductionHours = &s
	}
	return dto
}

func toApplicationDTOs(apps []leave.Application) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		dtos[i] = toApplicationDTO(app)
	}
	return dtos
}
