package candidate

import "context"

// Repository defines candidate data access
type Repository interface {
	Create(ctx context.Context, c *Candidate) error
	List(ctx context.Context, userID int64, limit, offset int) ([]*Candidate, int64, error)
}
