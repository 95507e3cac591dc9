package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// CandidateRepository implements candidate.Repository
type CandidateRepository struct {
	db *sql.DB
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(db *sql.DB) candidate.Repository {
	return &CandidateRepository{db: db}
}

// Create inserts a candidate
func (r *CandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Stage == "" {
		c.Stage = candidate.StageApplied
	}

	query := `
		INSERT INTO candidates (user_id, job_id, full_name, email, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UserID, nullInt64(c.JobID), c.FullName, c.Email, string(c.Stage), c.CreatedAt.Unix(), c.UpdatedAt.Unix(),
	).Scan(&c.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create candidate", err)
	}
	return nil
}

// List lists a tenant's candidates, newest first
func (r *CandidateRepository) List(ctx context.Context, userID int64, limit, offset int) ([]*candidate.Candidate, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count candidates", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, job_id, full_name, email, stage, created_at, updated_at
		FROM candidates WHERE user_id = $1
		ORDER BY id DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list candidates", err)
	}
	defer rows.Close()

	var out []*candidate.Candidate
	for rows.Next() {
		var c candidate.Candidate
		var jobID sql.NullInt64
		var stage string
		var createdAt, updatedAt int64
		if err := rows.Scan(&c.ID, &c.UserID, &jobID, &c.FullName, &c.Email, &stage, &createdAt, &updatedAt); err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan candidate", err)
		}
		c.JobID = int64Ptr(jobID)
		c.Stage = candidate.Stage(stage)
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		c.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate candidates", err)
	}
	return out, total, nil
}
