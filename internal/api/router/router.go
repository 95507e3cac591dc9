package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pratik-mahalle/hireloop/internal/api/handlers"
	"github.com/pratik-mahalle/hireloop/internal/api/middleware"
	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Billing     *handlers.BillingHandler
	Webhook     *handlers.WebhookHandler
	Entitlement *handlers.EntitlementHandler
	Job         *handlers.JobHandler
	Candidate   *handlers.CandidateHandler
	Interview   *handlers.InterviewHandler
	Team        *handlers.TeamHandler
	Analytics   *handlers.AnalyticsHandler
}

// New builds the HTTP router. evaluator backs the feature gate on
// capability-gated paths.
func New(cfg *config.Config, log *logger.Logger, h *Handlers, evaluator entitlement.Evaluator) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.AppCORS(cfg.Server.AppURL, cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst))

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints (v1)
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)
		r.Post("/api/v1/auth/verify-email", h.Auth.VerifyEmail)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		// Provider callbacks authenticate by signature, not session
		r.Post("/api/v1/billing/webhook", h.Webhook.Handle)
	})

	// Public routes that personalise when a session is present
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthMiddleware(cfg.Auth.JWTSecret))
		r.Get("/api/v1/billing/plans", h.Billing.ListPlans)
	})

	// Capability-gated routes redirect instead of returning 401/403
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuthMiddleware(cfg.Auth.JWTSecret))
		r.Use(middleware.FeatureGate(evaluator, cfg.Server.AppURL, log))

		r.Get("/api/v1/analytics/summary", h.Analytics.Summary)
		r.Get("/api/v1/reports/usage", h.Entitlement.Summary)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		// Auth
		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Billing & Subscription
		// plans and webhook live in the public groups, so no sub-router here
		r.Get("/api/v1/billing/subscription", h.Billing.GetSubscription)
		r.Post("/api/v1/billing/trial", h.Billing.StartTrial)
		r.Post("/api/v1/billing/checkout", h.Billing.CreateCheckout)
		r.Post("/api/v1/billing/portal", h.Billing.CreatePortal)
		r.Get("/api/v1/billing/webhook-events/failed", h.Billing.ListFailedWebhooks)

		// Entitlements
		r.Route("/api/v1/entitlements", func(r chi.Router) {
			r.Get("/", h.Entitlement.Summary)
			r.Get("/{resource}", h.Entitlement.Get)
		})

		// Recruiting records
		r.Route("/api/v1/jobs", func(r chi.Router) {
			r.Get("/", h.Job.List)
			r.Post("/", h.Job.Create)
		})
		r.Route("/api/v1/candidates", func(r chi.Router) {
			r.Get("/", h.Candidate.List)
			r.Post("/", h.Candidate.Create)
		})
		r.Route("/api/v1/interviews", func(r chi.Router) {
			r.Get("/", h.Interview.List)
			r.Post("/", h.Interview.Create)
		})

		// Team
		r.Route("/api/v1/team", func(r chi.Router) {
			r.Get("/members", h.Team.List)
			r.Post("/members", h.Team.Invite)
			r.Delete("/members/{id}", h.Team.Revoke)
			r.Post("/invitations/{id}/accept", h.Team.Accept)
		})
	})

	return r
}
