package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ignite/customer-onboarding/internal/auth"
	"github.com/ignite/customer-onboarding/internal/config"
)

// SetupRoutes configures all API routes. Authentication runs on every request
// before the policy check; handlers only see requests the policy allowed.
func SetupRoutes(h *Handlers, tokens auth.TokenTable, policy *auth.Policy, corsCfg config.CORSConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsCfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         corsCfg.MaxAgeSeconds,
	}))

	r.Use(auth.Authenticate(tokens))
	r.Use(policy.Middleware)

	r.Get("/health", h.HealthCheck)

	// Flat routes: "/customers/" must stay unrouted.
	r.Post("/customers", h.CreateCustomer)
	r.Get("/customers/{id}", h.GetCustomer)
	r.Post("/appointments", h.ScheduleAppointment)

	return r
}
