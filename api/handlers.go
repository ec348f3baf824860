/*
handlers.go - HTTP API handlers for the leave balance engine

PURPOSE:
  Exposes the leave engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the domain logic.

ENDPOINTS:
  Accounts:
    POST   /api/accounts                      Open an account
    GET    /api/persons/{id}/accounts/{year}  Get a person's account
    POST   /api/persons/{id}/accounts/{year}  Roll the account into a new year

  Persons:
    GET    /api/persons/{id}/balance?year=    Composed balance view
    GET    /api/persons/{id}/overtime         Total overtime reduction
    GET    /api/persons/{id}/applications     A person's applications

  Applications:
    POST   /api/applications                  File a leave application
    GET    /api/applications                  List, filtered by status/period/person
    GET    /api/applications/{id}             Get one application

  Reminders:
    GET    /api/reminders/due                 Waiting applications due for a reminder
    POST   /api/reminders/run                 Dispatch reminders now

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record not found
  - 409: Duplicate account for person and year
  - 500: Internal errors

SECURITY NOTE:
  No authentication middleware. Authentication and authorization are
  external concerns.

SEE ALSO:
  - dto.go: Request/response data structures
  - scheduler.go: Background reminder dispatch
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/leave-engine/leave"
	"github.com/warp/leave-engine/notify"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// OvertimeSource is an optional store capability: computing the overtime sum
// in the database instead of in memory. The SQLite store implements it.
type OvertimeSource interface {
	OvertimeTotal(ctx context.Context, person leave.PersonID) (*decimal.Decimal, error)
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Accounts     leave.AccountStore
	Applications leave.ApplicationStore
	Notifier     notify.Notifier
	Log          *logrus.Logger

	// DaysBeforeReminder is the grace period before the first overdue
	// reminder, supplied by configuration.
	DaysBeforeReminder int

	accountSvc leave.AccountService

	// today is overridable for tests; defaults to leave.Today.
	today func() leave.Date
}

// NewHandler creates a new handler with the given stores.
func NewHandler(accounts leave.AccountStore, applications leave.ApplicationStore, notifier notify.Notifier, daysBeforeReminder int) *Handler {
	return &Handler{
		Accounts:           accounts,
		Applications:       applications,
		Notifier:           notifier,
		Log:                logrus.StandardLogger(),
		DaysBeforeReminder: daysBeforeReminder,
		accountSvc:         leave.AccountService{Accounts: accounts},
		today:              leave.Today,
	}
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// CreateAccount opens a vacation account for a validity period. The actual
// entitlement is prorated from the annual entitlement.
// POST /api/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	validFrom, err := leave.ParseDate(req.ValidFrom)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid valid_from", err)
		return
	}
	validTo, err := leave.ParseDate(req.ValidTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid valid_to", err)
		return
	}
	annual, err := decimal.NewFromString(req.AnnualVacationDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid annual_vacation_days", err)
		return
	}
	remaining := decimal.Zero
	if req.RemainingVacationDays != "" {
		if remaining, err = decimal.NewFromString(req.RemainingVacationDays); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid remaining_vacation_days", err)
			return
		}
	}

	account, err := h.accountSvc.CreateAccount(r.Context(), leave.Account{
		Person:                      leave.PersonID(req.Person),
		ValidFrom:                   validFrom,
		ValidTo:                     validTo,
		AnnualVacationDays:          annual,
		RemainingVacationDays:       remaining,
		RemainingVacationDaysExpire: req.RemainingVacationDaysExpire,
	})
	if err != nil {
		writeDomainError(w, "Failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(*account))
}

// GetAccount returns a person's account for one accounting year.
// GET /api/persons/{id}/accounts/{year}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	person, year, ok := personAndYear(w, r)
	if !ok {
		return
	}

	account, err := h.Accounts.AccountByYearAndPerson(r.Context(), year, person)
	if err != nil {
		writeDomainError(w, "Failed to load account", err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountDTO(*account))
}

// RollAccount returns the person's account for the year, creating it from
// the previous year's account when missing.
// POST /api/persons/{id}/accounts/{year}
func (h *Handler) RollAccount(w http.ResponseWriter, r *http.Request) {
	person, year, ok := personAndYear(w, r)
	if !ok {
		return
	}

	account, err := h.accountSvc.GetOrCreateForYear(r.Context(), year, person)
	if err != nil {
		writeDomainError(w, "Failed to roll account forward", err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountDTO(*account))
}

// GetBalance returns the composed balance view for a person and year.
// GET /api/persons/{id}/balance?year=2012
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	person := leave.PersonID(chi.URLParam(r, "id"))

	year := h.today().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	account, err := h.Accounts.AccountByYearAndPerson(r.Context(), year, person)
	if err != nil {
		writeDomainError(w, "Failed to load account", err)
		return
	}

	apps, err := h.Applications.ApplicationsByPerson(r.Context(), person)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load applications", err)
		return
	}

	writeJSON(w, http.StatusOK, toBalanceDTO(leave.ComputeBalance(*account, apps)))
}

// GetOvertime returns a person's total overtime reduction. Missing data is
// an exact zero, never an absent value.
// GET /api/persons/{id}/overtime
func (h *Handler) GetOvertime(w http.ResponseWriter, r *http.Request) {
	person := leave.PersonID(chi.URLParam(r, "id"))
	if person == "" {
		writeError(w, http.StatusBadRequest, "Person is required", leave.ErrInvalidArgument)
		return
	}

	var total decimal.Decimal

	// Prefer the store-side aggregate when the store can compute it.
	if source, ok := h.Applications.(OvertimeSource); ok {
		raw, err := source.OvertimeTotal(r.Context(), person)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to sum overtime", err)
			return
		}
		total = leave.NormalizeOvertimeTotal(raw)
	} else {
		apps, err := h.Applications.ApplicationsByPerson(r.Context(), person)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load applications", err)
			return
		}
		if total, err = leave.TotalOvertimeReduction(apps, person); err != nil {
			writeDomainError(w, "Failed to sum overtime", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, OvertimeDTO{Person: string(person), Hours: total.String()})
}

// =============================================================================
// APPLICATION HANDLERS
// =============================================================================

// SubmitApplication files a new leave application in the waiting state.
// POST /api/applications
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req SubmitApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Person == "" {
		writeError(w, http.StatusBadRequest, "Person is required", leave.ErrInvalidArgument)
		return
	}

	startDate, err := leave.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date", err)
		return
	}
	endDate, err := leave.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}
	if endDate.Before(startDate) {
		writeError(w, http.StatusBadRequest, "end_date before start_date", nil)
		return
	}
	days, err := decimal.NewFromString(req.Days)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid days", err)
		return
	}

	app := leave.Application{
		ID:              leave.ApplicationID(uuid.NewString()),
		Person:          leave.PersonID(req.Person),
		Status:          leave.StatusWaiting,
		ApplicationDate: h.today(),
		StartDate:       startDate,
		EndDate:         endDate,
		Days:            days,
		Reason:          req.Reason,
	}
	if req.OvertimeReductionHours != nil {
		hours, err := decimal.NewFromString(*req.OvertimeReductionHours)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid overtime_reduction_hours", err)
			return
		}
		app.OvertimeReductionHours = &hours
	}

	if err := h.Applications.SaveApplication(r.Context(), app); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save application", err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationDTO(app))
}

// GetApplication returns one application by ID.
// GET /api/applications/{id}
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id := leave.ApplicationID(chi.URLParam(r, "id"))

	app, err := h.Applications.ApplicationByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to load application", err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationDTO(*app))
}

// ListApplications lists applications filtered by any combination of
// status, period and person.
// GET /api/applications?status=waiting&start=2012-05-01&end=2012-05-31&person=horst
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := leave.ApplicationStatus(q.Get("status"))
	person := leave.PersonID(q.Get("person"))

	var start, end leave.Date
	hasPeriod := q.Get("start") != "" || q.Get("end") != ""
	if hasPeriod {
		var err error
		if start, err = leave.ParseDate(q.Get("start")); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start", err)
			return
		}
		if end, err = leave.ParseDate(q.Get("end")); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end", err)
			return
		}
	}

	apps, err := h.fetchApplications(r.Context(), hasPeriod, start, end, person, status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list applications", err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationDTOs(apps))
}

// fetchApplications narrows the store query as far as possible, then applies
// the engine's filters for the remaining criteria.
func (h *Handler) fetchApplications(ctx context.Context, hasPeriod bool, start, end leave.Date, person leave.PersonID, status leave.ApplicationStatus) ([]leave.Application, error) {
	switch {
	case hasPeriod:
		apps, err := h.Applications.ApplicationsInPeriod(ctx, start, end)
		if err != nil {
			return nil, err
		}
		switch {
		case person != "" && status != "":
			return leave.ByPeriodAndPersonAndStatus(apps, start, end, person, status), nil
		case person != "":
			return leave.ByPeriodAndPerson(apps, start, end, person), nil
		case status != "":
			return leave.ByPeriodAndStatus(apps, start, end, status), nil
		default:
			return apps, nil
		}

	case person != "":
		apps, err := h.Applications.ApplicationsByPerson(ctx, person)
		if err != nil {
			return nil, err
		}
		if status != "" {
			return leave.ByStatus(apps, status), nil
		}
		return apps, nil

	case status != "":
		return h.Applications.ApplicationsByStatus(ctx, status)

	default:
		// No criteria: full period scan over all time.
		return h.Applications.ApplicationsInPeriod(ctx, leave.Date{}, leave.NewDate(9999, 12, 31))
	}
}

// ListPersonApplications returns all applications of one person.
// GET /api/persons/{id}/applications
func (h *Handler) ListPersonApplications(w http.ResponseWriter, r *http.Request) {
	person := leave.PersonID(chi.URLParam(r, "id"))

	apps, err := h.Applications.ApplicationsByPerson(r.Context(), person)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list applications", err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationDTOs(apps))
}

// =============================================================================
// REMINDER HANDLERS
// =============================================================================

// ListDueReminders returns the waiting applications currently due for an
// overdue reminder. Read-only; nothing is dispatched or stamped.
// GET /api/reminders/due
func (h *Handler) ListDueReminders(w http.ResponseWriter, r *http.Request) {
	due, err := h.dueApplications(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to scan for due reminders", err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationDTOs(due))
}

// RunReminders dispatches reminders for all currently due applications and
// stamps their remind date on successful delivery.
// POST /api/reminders/run
func (h *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := h.today()

	due, err := h.dueApplications(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to scan for due reminders", err)
		return
	}

	notified := 0
	for _, app := range due {
		if err := h.Notifier.NotifyOverdue(ctx, app); err != nil {
			h.Log.WithError(err).WithField("application", app.ID).Warn("reminder delivery failed")
			continue
		}
		if err := h.Applications.StampRemindDate(ctx, app.ID, today); err != nil {
			h.Log.WithError(err).WithField("application", app.ID).Warn("failed to stamp remind date")
			continue
		}
		notified++
	}

	writeJSON(w, http.StatusOK, ReminderRunDTO{
		Today:    today.String(),
		Notified: notified,
		Due:      toApplicationDTOs(due),
	})
}

func (h *Handler) dueApplications(ctx context.Context) ([]leave.Application, error) {
	waiting, err := h.Applications.ApplicationsByStatus(ctx, leave.StatusWaiting)
	if err != nil {
		return nil, err
	}
	return leave.DueForReminder(waiting, h.today(), h.DaysBeforeReminder), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func personAndYear(w http.ResponseWriter, r *http.Request) (leave.PersonID, int, bool) {
	person := leave.PersonID(chi.URLParam(r, "id"))
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return "", 0, false
	}
	return person, year, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case leave.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, leave.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, message, err)
	case leave.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
