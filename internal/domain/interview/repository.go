package interview

import (
	"context"
	"time"
)

// Repository defines interview data access
type Repository interface {
	Create(ctx context.Context, iv *Interview) error
	// ListBetween lists interviews created in [from, to)
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Interview, error)
}
