package testutil

import (
	"database/sql"
	"io/fs"
	"sort"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/migrations"
)

// NewTestDB creates an in-memory SQLite database with the production schema
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	schema, err := migrations.GetFS("sqlite")
	if err != nil {
		t.Fatalf("Failed to load migrations: %v", err)
	}

	files, err := fs.Glob(schema, "*.sql")
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(schema, name)
		if err != nil {
			t.Fatalf("Failed to read migration %s: %v", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			t.Fatalf("Failed to apply migration %s: %v", name, err)
		}
	}

	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// NewTestLogger returns a logger that only prints errors
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// Clock is a settable time source for services that take a now func
type Clock struct {
	Now time.Time
}

// NewClock starts a clock at t
func NewClock(t time.Time) *Clock {
	return &Clock{Now: t}
}

// Func returns the clock as a now function
func (c *Clock) Func() func() time.Time {
	return func() time.Time { return c.Now }
}

// Advance moves the clock forward
func (c *Clock) Advance(d time.Duration) {
	c.Now = c.Now.Add(d)
}
