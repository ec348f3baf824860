/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/accounts         Vacation accounts
  /api/persons/*        Per-person views (account, balance, overtime)
  /api/applications/*   Leave applications
  /api/reminders/*      Overdue reminder scan and dispatch

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// CORS for local frontend development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/accounts", h.CreateAccount)

		r.Route("/persons/{id}", func(r chi.Router) {
			r.Get("/accounts/{year}", h.GetAccount)
			r.Post("/accounts/{year}", h.RollAccount)
			r.Get("/balance", h.GetBalance)
			r.Get("/overtime", h.GetOvertime)
			r.Get("/applications", h.ListPersonApplications)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", h.SubmitApplication)
			r.Get("/", h.ListApplications)
			r.Get("/{id}", h.GetApplication)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/due", h.ListDueReminders)
			r.Post("/run", h.RunReminders)
		})
	})

	return r
}
