package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

// TeamService implements team.Service
type TeamService struct {
	repo          team.Repository
	entitlements  entitlement.Evaluator
	logger        *logger.Logger
	invitationTTL time.Duration
	now           func() time.Time
}

// NewTeamService creates a new team service
func NewTeamService(repo team.Repository, entitlements entitlement.Evaluator, log *logger.Logger, invitationTTL time.Duration) *TeamService {
	return &TeamService{
		repo:          repo,
		entitlements:  entitlements,
		logger:        log,
		invitationTTL: invitationTTL,
		now:           time.Now,
	}
}

// WithClock replaces the time source used for invitation expiry
func (s *TeamService) WithClock(now func() time.Time) *TeamService {
	s.now = now
	return s
}

// Invite creates a pending invitation
func (s *TeamService) Invite(ctx context.Context, tenantID, invitedBy int64, email string, role team.Role) (*team.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.BadRequest("Email is required")
	}
	if !role.Valid() {
		return nil, errors.BadRequest("Invalid role: " + string(role))
	}

	if err := s.entitlements.Require(ctx, tenantID, plan.ResourceTeamMembers); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindOpenByEmail(ctx, tenantID, email); err == nil {
		return nil, errors.Conflict("This email already has a pending or active membership")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	m := &team.Member{
		UserID:    tenantID,
		Email:     email,
		Role:      role,
		Status:    team.StatusPending,
		InvitedBy: invitedBy,
		InvitedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create invitation")
		return nil, err
	}

	metrics.RecordInvitation("sent")
	s.logger.WithTenant(tenantID).WithFields(map[string]interface{}{
		"invitation_id": m.ID,
		"role":          m.Role,
	}).Info("Team invitation created")

	return m, nil
}

// Accept activates an invitation for a principal with a matching verified email
func (s *TeamService) Accept(ctx context.Context, invitationID string, p team.Principal) (*team.Member, error) {
	m, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if m.Status != team.StatusPending {
		return nil, errors.Conflict("Invitation is no longer pending")
	}

	now := s.now().UTC()
	if m.Expired(now, s.invitationTTL) {
		if _, err := s.repo.Expire(ctx, m.ID); err != nil {
			s.logger.ErrorWithErr(err, "Failed to expire invitation")
		}
		metrics.RecordInvitation("expired")
		return nil, errors.Gone("Invitation has expired")
	}

	if !p.EmailVerified {
		return nil, errors.Forbidden("Verify your email address before accepting invitations")
	}
	if !team.EmailMatches(m.Email, p.Email) {
		s.logger.WithTenant(m.UserID).WithFields(map[string]interface{}{
			"invitation_id": m.ID,
			"user_id":       p.UserID,
		}).Warn("Invitation accept attempted with a different email")
		return nil, errors.Forbidden("This invitation was sent to a different email address")
	}

	// Pending invitations hold no seat, so the seat is claimed here.
	if err := s.entitlements.Require(ctx, m.UserID, plan.ResourceTeamMembers); err != nil {
		return nil, err
	}

	ok, err := s.repo.Activate(ctx, m.ID, p.UserID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Conflict("Invitation is no longer pending")
	}

	m.Status = team.StatusActive
	m.JoinedAt = &now
	m.MemberUserID = &p.UserID

	metrics.RecordInvitation("accepted")
	s.logger.WithTenant(m.UserID).WithFields(map[string]interface{}{
		"invitation_id": m.ID,
		"member_id":     p.UserID,
	}).Info("Team invitation accepted")

	return m, nil
}

// List returns the tenant's members and invitations
func (s *TeamService) List(ctx context.Context, tenantID int64) ([]*team.Member, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Revoke expires a pending invitation owned by the tenant
func (s *TeamService) Revoke(ctx context.Context, tenantID int64, invitationID string) error {
	m, err := s.repo.GetByID(ctx, invitationID)
	if err != nil {
		return err
	}
	if m.UserID != tenantID {
		return errors.NotFound("Invitation")
	}
	if m.Status != team.StatusPending {
		return errors.Conflict("Only pending invitations can be revoked")
	}

	ok, err := s.repo.Expire(ctx, m.ID)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Conflict("Only pending invitations can be revoked")
	}

	metrics.RecordInvitation("revoked")
	return nil
}
