package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

// JobService implements job.Service
type JobService struct {
	repo         job.Repository
	entitlements entitlement.Evaluator
	logger       *logger.Logger
}

// NewJobService creates a new job service
func NewJobService(repo job.Repository, entitlements entitlement.Evaluator, log *logger.Logger) job.Service {
	return &JobService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
	}
}

// Create checks the jobs quota and inserts the posting
func (s *JobService) Create(ctx context.Context, j *job.Job) error {
	j.Title = strings.TrimSpace(j.Title)
	if j.Title == "" {
		return errors.BadRequest("Title is required")
	}
	if j.Status == "" {
		j.Status = job.StatusOpen
	}
	if !j.Status.Valid() {
		return errors.BadRequest("Invalid job status: " + string(j.Status))
	}

	if err := s.entitlements.Require(ctx, j.UserID, plan.ResourceJobs); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, j); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create job")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"job_id":  j.ID,
		"user_id": j.UserID,
	}).Info("Job created")

	return nil
}

// List lists the tenant's jobs
func (s *JobService) List(ctx context.Context, userID int64, filter job.Filter, limit, offset int) ([]*job.Job, int64, error) {
	return s.repo.List(ctx, userID, filter, limit, offset)
}
