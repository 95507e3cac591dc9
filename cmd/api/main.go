package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/hireloop/internal/api/handlers"
	"github.com/pratik-mahalle/hireloop/internal/api/router"
	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
	"github.com/pratik-mahalle/hireloop/internal/providers"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/internal/services"
	"github.com/pratik-mahalle/hireloop/migrations"
)

// @title hireloop API
// @version 1.0
// @description Recruiting workspace with plan-based entitlements and Stripe billing
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	if err := run(cfg, log); err != nil {
		log.ErrorWithErr(err, "Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	schema, err := migrations.GetFS(cfg.Database.Driver)
	if err != nil {
		return err
	}
	if err := postgres.RunMigrations(db, schema, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// The webhook writes subscriptions on behalf of any tenant and uses
	// the privileged connection when one is configured.
	serviceDB, err := postgres.NewService(cfg.Database, db)
	if err != nil {
		return fmt.Errorf("connect service database: %w", err)
	}
	if serviceDB != db {
		defer serviceDB.Close()
	}

	var gateway subscription.Gateway
	if cfg.Billing.StripeSecretKey != "" {
		gateway = providers.NewStripeGateway(cfg.Billing.StripeSecretKey, log)
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout and billing portal are disabled")
	}

	// Repositories
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	webhookEventRepo := postgres.NewWebhookEventRepository(db)
	usageRepo := postgres.NewUsageRepository(db)

	// Services
	userService := services.NewUserService(postgres.NewUserRepository(db), log, cfg.Auth.BCryptCost)
	entitlementService := services.NewEntitlementService(subscriptionRepo, usageRepo, log, cfg.Server.AppURL)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, webhookEventRepo, gateway, log, cfg.Billing, cfg.Server.AppURL)
	webhookSubscriptionService := services.NewSubscriptionService(
		postgres.NewSubscriptionRepository(serviceDB),
		postgres.NewWebhookEventRepository(serviceDB),
		gateway,
		log,
		cfg.Billing,
		cfg.Server.AppURL,
	)
	jobService := services.NewJobService(postgres.NewJobRepository(db), entitlementService, log)
	candidateService := services.NewCandidateService(postgres.NewCandidateRepository(db), entitlementService, log)
	interviewService := services.NewInterviewService(postgres.NewInterviewRepository(db), entitlementService, log)
	teamRepo := postgres.NewTeamRepository(db)
	teamService := services.NewTeamService(teamRepo, entitlementService, log, cfg.Team.InvitationTTL)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db, serviceDB, gateway != nil, log),
		Auth:        handlers.NewAuthHandler(userService, cfg, log, val),
		Billing:     handlers.NewBillingHandler(subscriptionService, userService, log, val),
		Webhook:     handlers.NewWebhookHandler(providers.NewStripeWebhookVerifier(cfg.Billing.StripeWebhookSecret), webhookSubscriptionService, log),
		Entitlement: handlers.NewEntitlementHandler(entitlementService, log),
		Job:         handlers.NewJobHandler(jobService, log, val),
		Candidate:   handlers.NewCandidateHandler(candidateService, log, val),
		Interview:   handlers.NewInterviewHandler(interviewService, log, val),
		Team:        handlers.NewTeamHandler(teamService, log, val),
		Analytics:   handlers.NewAnalyticsHandler(entitlementService, jobService, candidateService, interviewService, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h, entitlementService),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"db_driver":   cfg.Database.Driver,
		}).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		log.With("signal", sig.String()).Info("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
