package integration

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/pratik-mahalle/hireloop/internal/api/handlers"
	"github.com/pratik-mahalle/hireloop/internal/api/router"
	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
	"github.com/pratik-mahalle/hireloop/internal/providers"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/internal/services"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
	"github.com/pratik-mahalle/hireloop/pkg/client"
)

const (
	testAppURL        = "https://app.example.com"
	testWebhookSecret = "whsec_integration"
)

// harness is the full API stack over an in-memory database
type harness struct {
	server  *httptest.Server
	db      *sql.DB
	gateway *testutil.MockGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })

	cfg := &config.Config{
		Server: config.ServerConfig{
			AppURL:      testAppURL,
			FrontendURL: testAppURL,
			Environment: "test",
		},
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-key-for-testing-only",
			BCryptCost:         4,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Billing: config.BillingConfig{
			StripeWebhookSecret: testWebhookSecret,
			ProviderTimeout:     time.Second,
		},
		Team:      config.TeamConfig{InvitationTTL: 72 * time.Hour},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	log := testutil.NewTestLogger()
	gateway := testutil.NewMockGateway()

	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	userService := services.NewUserService(postgres.NewUserRepository(db), log, cfg.Auth.BCryptCost)
	entitlementService := services.NewEntitlementService(subscriptionRepo, postgres.NewUsageRepository(db), log, cfg.Server.AppURL)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, postgres.NewWebhookEventRepository(db), gateway, log, cfg.Billing, cfg.Server.AppURL)
	jobService := services.NewJobService(postgres.NewJobRepository(db), entitlementService, log)
	candidateService := services.NewCandidateService(postgres.NewCandidateRepository(db), entitlementService, log)
	interviewService := services.NewInterviewService(postgres.NewInterviewRepository(db), entitlementService, log)
	teamService := services.NewTeamService(postgres.NewTeamRepository(db), entitlementService, log, cfg.Team.InvitationTTL)

	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db, db, true, log),
		Auth:        handlers.NewAuthHandler(userService, cfg, log, val),
		Billing:     handlers.NewBillingHandler(subscriptionService, userService, log, val),
		Webhook:     handlers.NewWebhookHandler(providers.NewStripeWebhookVerifier(testWebhookSecret), subscriptionService, log),
		Entitlement: handlers.NewEntitlementHandler(entitlementService, log),
		Job:         handlers.NewJobHandler(jobService, log, val),
		Candidate:   handlers.NewCandidateHandler(candidateService, log, val),
		Interview:   handlers.NewInterviewHandler(interviewService, log, val),
		Team:        handlers.NewTeamHandler(teamService, log, val),
		Analytics:   handlers.NewAnalyticsHandler(entitlementService, jobService, candidateService, interviewService, log),
	}

	srv := httptest.NewServer(router.New(cfg, log, h, entitlementService))
	t.Cleanup(srv.Close)

	return &harness{server: srv, db: db, gateway: gateway}
}

// client returns an unauthenticated API client for the harness
func (h *harness) client() *client.Client {
	return client.NewClient(client.Config{BaseURL: h.server.URL})
}

// register creates an account and returns a client holding its session
func (h *harness) register(t *testing.T, email string) (*client.Client, *client.User) {
	t.Helper()
	c := h.client()
	resp, err := c.Register(context.Background(), client.RegisterRequest{
		Email:    email,
		Password: "SecurePassword123!",
		FullName: "Test User",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	return c, resp.User
}

// deliver posts a correctly signed provider event
func (h *harness) deliver(t *testing.T, payload string) *http.Response {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})

	req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/billing/webhook", bytes.NewReader(sp.Payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", sp.Header)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}
