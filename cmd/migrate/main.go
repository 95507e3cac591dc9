package main

import (
	"fmt"
	"os"

	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/migrations"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Format: "console"})

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	schema, err := migrations.GetFS(cfg.Database.Driver)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load migrations: %v\n", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(db, schema, log); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("All migrations completed successfully!")
}
