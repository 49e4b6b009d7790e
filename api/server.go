/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. zap:        Structured request logging
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/calc/*          Stateless pay calculators
  /api/records/*       LES record ledger
  /api/comparisons/*   Statement diffs
  /api/trends/*        Historical trend analysis
  /api/schedules/*     Drill schedule tracking

SECURITY NOTE:
  No authentication middleware. All endpoints are public; put this
  behind a reverse proxy that handles auth.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Calculator routes (stateless)
		r.Route("/calc", func(r chi.Router) {
			r.Post("/drill", h.ComputeDrillPay)
			r.Post("/at", h.ComputeATPay)
			r.Post("/compare-orders", h.CompareOrders)
		})

		// Record routes
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.ListRecords)
			r.Post("/", h.CreateRecord)
			r.Get("/{id}", h.GetRecord)
			r.Put("/{id}", h.UpdateRecord)
			r.Delete("/{id}", h.DeleteRecord)
			r.Get("/{id}/validate", h.ValidateRecord)
			r.Post("/{id}/entitlements", h.AddEntitlement)
			r.Delete("/{id}/entitlements/{lineID}", h.RemoveEntitlement)
			r.Post("/{id}/deductions", h.AddDeduction)
			r.Delete("/{id}/deductions/{lineID}", h.RemoveDeduction)
			r.Post("/{id}/allotments", h.AddAllotment)
			r.Delete("/{id}/allotments/{lineID}", h.RemoveAllotment)
		})

		// Comparison routes
		r.Route("/comparisons", func(r chi.Router) {
			r.Get("/", h.ListComparisons)
			r.Post("/", h.CompareRecords)
			r.Get("/latest", h.LatestComparison)
			r.Delete("/{id}", h.DeleteComparison)
		})

		// Trend routes
		r.Get("/trends/{metric}", h.GetTrend)

		// Drill schedule routes
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)
			r.Get("/{id}", h.GetSchedule)
			r.Delete("/{id}", h.DeleteSchedule)
			r.Post("/{id}/weekends", h.AddWeekend)
			r.Delete("/{id}/weekends/{weekendID}", h.RemoveWeekend)
			r.Post("/{id}/weekends/{weekendID}/periods", h.SetPeriodStatus)
			r.Post("/{id}/at-days", h.SetATDays)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

// requestLogger logs one line per request with method, path, status,
// duration, and the chi request id.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
