package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

// CandidateService implements candidate.Service
type CandidateService struct {
	repo         candidate.Repository
	entitlements entitlement.Evaluator
	logger       *logger.Logger
}

// NewCandidateService creates a new candidate service
func NewCandidateService(repo candidate.Repository, entitlements entitlement.Evaluator, log *logger.Logger) candidate.Service {
	return &CandidateService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
	}
}

// Create checks the candidates quota and inserts the candidate
func (s *CandidateService) Create(ctx context.Context, c *candidate.Candidate) error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.FullName == "" {
		return errors.BadRequest("Full name is required")
	}
	if c.Stage == "" {
		c.Stage = candidate.StageApplied
	}

	if err := s.entitlements.Require(ctx, c.UserID, plan.ResourceCandidates); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create candidate")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"candidate_id": c.ID,
		"user_id":      c.UserID,
	}).Info("Candidate created")

	return nil
}

// List lists the tenant's candidates
func (s *CandidateService) List(ctx context.Context, userID int64, limit, offset int) ([]*candidate.Candidate, int64, error) {
	return s.repo.List(ctx, userID, limit, offset)
}
