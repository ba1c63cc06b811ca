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
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/shift-types   Shift type catalog
  /api/rates         Tariff table
  /api/tariff/*      Interval valuation
  /api/scales/*      Scale rule management
  /api/shifts/*      Occurrence reads, overrides, pay confirmation
  /api/transactions/* Income/expense entries, summaries, insights
  /api/settings      Per-owner category lists
  /api/admin/*       Admin operations

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
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog and tariff
		r.Get("/shift-types", h.ListShiftTypes)
		r.Get("/rates", h.GetRates)
		r.Post("/tariff/calculate", h.CalculateTariff)

		// Scale routes
		r.Route("/scales", func(r chi.Router) {
			r.Get("/", h.ListScales)
			r.Post("/", h.CreateScale)
			r.Patch("/{id}", h.UpdateScale)
			r.Delete("/{id}", h.DeleteScale)
			r.Post("/{id}/duplicate", h.DuplicateScale)
		})

		// Shift routes
		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShifts)
			r.Put("/", h.SaveShift)
			r.Post("/cancel", h.CancelShift)
			r.Post("/confirm-pay", h.ConfirmPay)
			r.Delete("/{id}", h.DeleteShift)
		})

		// Transaction routes
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.ListTransactions)
			r.Post("/", h.CreateTransaction)
			r.Get("/summary", h.GetSummary)
			r.Get("/insights", h.GetInsights)
			r.Patch("/{id}", h.UpdateTransaction)
			r.Delete("/{id}", h.DeleteTransaction)
		})

		// Settings routes
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.SaveSettings)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/duplicate-recurring", h.DuplicateRecurring)
		})
	})

	return r
}
