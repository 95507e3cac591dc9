package job

import "context"

// Service defines job posting business logic
type Service interface {
	// Create checks the jobs quota before inserting
	Create(ctx context.Context, job *Job) error
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Job, int64, error)
}
