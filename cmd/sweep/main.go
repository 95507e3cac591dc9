package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/internal/worker"
)

// sweep expires stale team invitations once and exits. Schedule it
// externally, e.g. as a Kubernetes CronJob.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	sweeper, err := worker.NewInvitationSweeper(postgres.NewTeamRepository(db), cfg.Team.InvitationTTL, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := sweeper.Sweep(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Expired %d stale invitations\n", n)
}
