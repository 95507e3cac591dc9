package job

import "context"

// Repository defines the job repository interface
type Repository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, userID, id int64) (*Job, error)
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Job, int64, error)
}
