package services

import (
	"context"
	"strings"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

// InterviewService implements interview.Service
type InterviewService struct {
	repo         interview.Repository
	entitlements entitlement.Evaluator
	logger       *logger.Logger
	now          func() time.Time
}

// NewInterviewService creates a new interview service
func NewInterviewService(repo interview.Repository, entitlements entitlement.Evaluator, log *logger.Logger) *InterviewService {
	return &InterviewService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
		now:          time.Now,
	}
}

// WithClock replaces the time source stamped on new interviews
func (s *InterviewService) WithClock(now func() time.Time) *InterviewService {
	s.now = now
	return s
}

// Create re-checks the monthly interview quota and inserts the interview
func (s *InterviewService) Create(ctx context.Context, iv *interview.Interview) error {
	iv.Title = strings.TrimSpace(iv.Title)
	if iv.Title == "" {
		return errors.BadRequest("Title is required")
	}
	if iv.ScheduledAt.IsZero() {
		return errors.BadRequest("scheduled_at is required")
	}

	if err := s.entitlements.Require(ctx, iv.UserID, plan.ResourceInterviews); err != nil {
		return err
	}

	iv.ScheduledAt = iv.ScheduledAt.UTC()
	iv.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, iv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create interview")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"interview_id": iv.ID,
		"user_id":      iv.UserID,
	}).Info("Interview created")

	return nil
}

// ListThisMonth lists interviews created in the current UTC month
func (s *InterviewService) ListThisMonth(ctx context.Context, userID int64) ([]*interview.Interview, error) {
	from, to := entitlement.MonthWindow(s.now())
	return s.repo.ListBetween(ctx, userID, from, to)
}
