package team

import (
	"context"
	"time"
)

// Repository defines the interface for team member data access
type Repository interface {
	// Create inserts a pending invitation
	Create(ctx context.Context, m *Member) error

	// GetByID retrieves an invitation by id
	GetByID(ctx context.Context, id string) (*Member, error)

	// FindOpenByEmail returns a pending or active member of the tenant with email
	FindOpenByEmail(ctx context.Context, tenantID int64, email string) (*Member, error)

	// ListByTenant lists all members of a tenant
	ListByTenant(ctx context.Context, tenantID int64) ([]*Member, error)

	// Activate moves a pending invitation to active. It reports false when
	// the row was no longer pending.
	Activate(ctx context.Context, id string, memberUserID int64, joinedAt time.Time) (bool, error)

	// Expire moves a pending invitation to expired
	Expire(ctx context.Context, id string) (bool, error)

	// ExpirePendingBefore expires every pending invitation sent before
	// cutoff and returns how many rows changed
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
