package candidate

import "context"

// Service defines candidate business logic
type Service interface {
	Create(ctx context.Context, c *Candidate) error
	List(ctx context.Context, userID int64, limit, offset int) ([]*Candidate, int64, error)
}
