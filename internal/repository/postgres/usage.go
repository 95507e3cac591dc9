package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

// UsageRepository counts tenant-owned rows for entitlement checks.
// It never caches.
type UsageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new usage counter
func NewUsageRepository(db *sql.DB) entitlement.UsageCounter {
	return &UsageRepository{db: db}
}

// CountInterviewsBetween counts interviews with created_at in [from, to)
func (r *UsageRepository) CountInterviewsBetween(ctx context.Context, tenantID int64, from, to time.Time) (int, error) {
	return r.count(ctx, "interviews",
		`SELECT COUNT(*) FROM interviews WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`,
		tenantID, from.UTC().Unix(), to.UTC().Unix())
}

// CountActiveTeamMembers counts accepted team members
func (r *UsageRepository) CountActiveTeamMembers(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "team_members",
		`SELECT COUNT(*) FROM team_members WHERE user_id = $1 AND status = $2`,
		tenantID, string(team.StatusActive))
}

// CountCandidates counts the tenant's candidates
func (r *UsageRepository) CountCandidates(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "candidates", `SELECT COUNT(*) FROM candidates WHERE user_id = $1`, tenantID)
}

// CountJobs counts the tenant's jobs
func (r *UsageRepository) CountJobs(ctx context.Context, tenantID int64) (int, error) {
	return r.count(ctx, "jobs", `SELECT COUNT(*) FROM jobs WHERE user_id = $1`, tenantID)
}

func (r *UsageRepository) count(ctx context.Context, table, query string, args ...interface{}) (int, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count", table, time.Since(start)) }()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count "+table, err)
	}
	return n, nil
}
