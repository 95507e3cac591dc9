package team

import "context"

// Service defines the interface for team collaboration logic
type Service interface {
	// Invite creates a pending invitation after checking the team quota
	Invite(ctx context.Context, tenantID, invitedBy int64, email string, role Role) (*Member, error)

	// Accept activates a pending invitation for a verified matching principal
	Accept(ctx context.Context, invitationID string, p Principal) (*Member, error)

	// List returns the tenant's members and invitations
	List(ctx context.Context, tenantID int64) ([]*Member, error)

	// Revoke expires a pending invitation of the tenant
	Revoke(ctx context.Context, tenantID int64, invitationID string) error
}
