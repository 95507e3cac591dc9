package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// InterviewHandler handles interview requests
type InterviewHandler struct {
	service   interview.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(service interview.Service, log *logger.Logger, val *validator.Validator) *InterviewHandler {
	return &InterviewHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List handles GET /api/v1/interviews
// @Summary List this month's interviews
// @Tags Interviews
// @Produce json
// @Success 200 {array} interview.Interview
// @Security BearerAuth
// @Router /interviews [get]
func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	interviews, err := h.service.ListThisMonth(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list interviews")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, interviews)
}

// Create handles POST /api/v1/interviews
// @Summary Schedule interview
// @Description Counts against the monthly interview quota of the plan
// @Tags Interviews
// @Accept json
// @Produce json
// @Param request body dto.CreateInterviewRequest true "Interview"
// @Success 201 {object} interview.Interview
// @Failure 402 {object} utils.ErrorResponse "Monthly quota exceeded"
// @Security BearerAuth
// @Router /interviews [post]
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateInterviewRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	iv := &interview.Interview{
		UserID:      userID,
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
	}
	if err := h.service.Create(r.Context(), iv); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, iv)
}
