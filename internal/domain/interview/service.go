package interview

import "context"

// Service defines interview business logic
type Service interface {
	// Create re-checks the monthly interview quota before inserting
	Create(ctx context.Context, iv *Interview) error
	// ListThisMonth lists interviews created in the current UTC month
	ListThisMonth(ctx context.Context, userID int64) ([]*Interview, error)
}
