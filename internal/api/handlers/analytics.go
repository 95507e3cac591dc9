package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/services"
)

// AnalyticsHandler serves the hiring overview. Routes are gated by
// middleware.FeatureGate.
type AnalyticsHandler struct {
	entitlements *services.EntitlementService
	jobs         job.Service
	candidates   candidate.Service
	interviews   interview.Service
	logger       *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	entitlements *services.EntitlementService,
	jobs job.Service,
	candidates candidate.Service,
	interviews interview.Service,
	log *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		entitlements: entitlements,
		jobs:         jobs,
		candidates:   candidates,
		interviews:   interviews,
		logger:       log,
	}
}

// Summary handles GET /api/v1/analytics/summary
// @Summary Hiring overview
// @Description Requires a plan with analytics. Other plans are redirected to pricing.
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.AnalyticsSummary
// @Failure 303 "Redirect to login or pricing"
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	usage, err := h.entitlements.Summary(ctx, userID)
	if err != nil {
		h.logger.WithTenant(userID).WithError(err).Warn("Analytics usage unavailable")
		utils.WriteError(w, errors.ServiceUnavailable("Analytics are temporarily unavailable, please retry"))
		return
	}

	_, openJobs, err := h.jobs.List(ctx, userID, job.Filter{Status: job.StatusOpen}, 1, 0)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	_, totalCandidates, err := h.candidates.List(ctx, userID, 1, 0)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	interviews, err := h.interviews.ListThisMonth(ctx, userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	summary := dto.AnalyticsSummary{
		OpenJobs:            openJobs,
		TotalCandidates:     totalCandidates,
		InterviewsThisMonth: len(interviews),
		Usage:               usage,
	}
	if len(usage) > 0 {
		summary.PlanID = usage[0].PlanID
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}
