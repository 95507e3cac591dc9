package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

// InvitationSweeper expires pending team invitations that outlived their
// TTL. Accept already rejects stale invitations lazily; a sweep keeps
// listings and the invite duplicate check accurate. It runs once per call
// and is driven by an external scheduler through cmd/sweep.
type InvitationSweeper struct {
	repo   team.Repository
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

// NewInvitationSweeper creates a sweeper for invitations older than ttl
func NewInvitationSweeper(repo team.Repository, ttl time.Duration, log *logger.Logger) (*InvitationSweeper, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("invitation ttl must be positive, got %s", ttl)
	}

	return &InvitationSweeper{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: log,
	}, nil
}

// Sweep expires every pending invitation older than the TTL and returns
// how many changed
func (s *InvitationSweeper) Sweep(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.ttl)
	n, err := s.repo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to expire stale invitations")
		return 0, err
	}

	if n > 0 {
		metrics.RecordInvitations("expired", n)
	}
	s.logger.WithFields(map[string]interface{}{
		"expired": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Invitation sweep completed")

	return n, nil
}
