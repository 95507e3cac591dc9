package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// JobRepository implements job.Repository
type JobRepository struct {
	db *sql.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *sql.DB) job.Repository {
	return &JobRepository{db: db}
}

const jobColumns = `id, user_id, title, department, location, status, created_at, updated_at`

// Create inserts a job posting
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	if j.Status == "" {
		j.Status = job.StatusOpen
	}

	query := `
		INSERT INTO jobs (user_id, title, department, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		j.UserID, j.Title, j.Department, j.Location, string(j.Status), j.CreatedAt.Unix(), j.UpdatedAt.Unix(),
	).Scan(&j.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create job", err)
	}
	return nil
}

// GetByID retrieves a job owned by userID
func (r *JobRepository) GetByID(ctx context.Context, userID, id int64) (*job.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`, id, userID))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Job")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get job", err)
	}
	return j, nil
}

// List lists a tenant's jobs with optional status filter
func (r *JobRepository) List(ctx context.Context, userID int64, filter job.Filter, limit, offset int) ([]*job.Job, int64, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs `+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count jobs", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM jobs %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list jobs", err)
	}
	defer rows.Close()

	var jobs []*job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate jobs", err)
	}
	return jobs, total, nil
}

func scanJob(s rowScanner) (*job.Job, error) {
	var j job.Job
	var status string
	var createdAt, updatedAt int64
	if err := s.Scan(&j.ID, &j.UserID, &j.Title, &j.Department, &j.Location, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	j.Status = job.Status(status)
	j.CreatedAt = time.Unix(createdAt, 0).UTC()
	j.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &j, nil
}
