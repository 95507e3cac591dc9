package handlers

import (
	"net/http"
	"strings"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// JobHandler handles job posting requests
type JobHandler struct {
	jobService job.Service
	logger     *logger.Logger
	validator  *validator.Validator
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService job.Service, log *logger.Logger, val *validator.Validator) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     log,
		validator:  val,
	}
}

// List handles GET /api/v1/jobs
// @Summary List jobs
// @Tags Jobs
// @Produce json
// @Param status query string false "draft, open or closed"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Security BearerAuth
// @Router /jobs [get]
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	filter := job.Filter{}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		filter.Status = job.Status(status)
		if !filter.Status.Valid() {
			utils.WriteError(w, errors.BadRequest("Invalid status filter"))
			return
		}
	}

	page := utils.ParsePaginationParams(r)
	jobs, total, err := h.jobService.List(r.Context(), userID, filter, page.PageSize, page.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list jobs")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(jobs, page.Page, page.PageSize, total))
}

// Create handles POST /api/v1/jobs
// @Summary Create job
// @Description Creates a job posting if the plan's job quota allows it
// @Tags Jobs
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Job"
// @Success 201 {object} job.Job
// @Failure 402 {object} utils.ErrorResponse "Quota exceeded"
// @Failure 503 {object} utils.ErrorResponse "Usage could not be read"
// @Security BearerAuth
// @Router /jobs [post]
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	j := &job.Job{
		UserID:     userID,
		Title:      req.Title,
		Department: req.Department,
		Location:   req.Location,
		Status:     job.Status(req.Status),
	}
	if err := h.jobService.Create(r.Context(), j); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, j)
}
