package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// InterviewRepository implements interview.Repository
type InterviewRepository struct {
	db *sql.DB
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(db *sql.DB) interview.Repository {
	return &InterviewRepository{db: db}
}

// Create inserts an interview. A preset CreatedAt is kept.
func (r *InterviewRepository) Create(ctx context.Context, iv *interview.Interview) error {
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO interviews (user_id, candidate_id, job_id, title, scheduled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		iv.UserID, nullInt64(iv.CandidateID), nullInt64(iv.JobID), iv.Title,
		iv.ScheduledAt.UTC().Unix(), iv.CreatedAt.UTC().Unix(),
	).Scan(&iv.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create interview", err)
	}
	return nil
}

// ListBetween lists interviews created in [from, to), oldest first
func (r *InterviewRepository) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]*interview.Interview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, candidate_id, job_id, title, scheduled_at, created_at
		FROM interviews
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC`, userID, from.UTC().Unix(), to.UTC().Unix())
	if err != nil {
		return nil, errors.DatabaseError("Failed to list interviews", err)
	}
	defer rows.Close()

	var out []*interview.Interview
	for rows.Next() {
		var iv interview.Interview
		var candidateID, jobID sql.NullInt64
		var scheduledAt, createdAt int64
		if err := rows.Scan(&iv.ID, &iv.UserID, &candidateID, &jobID, &iv.Title, &scheduledAt, &createdAt); err != nil {
			return nil, errors.DatabaseError("Failed to scan interview", err)
		}
		iv.CandidateID = int64Ptr(candidateID)
		iv.JobID = int64Ptr(jobID)
		iv.ScheduledAt = time.Unix(scheduledAt, 0).UTC()
		iv.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, &iv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate interviews", err)
	}
	return out, nil
}
