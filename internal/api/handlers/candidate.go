package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// CandidateHandler handles candidate requests
type CandidateHandler struct {
	service   candidate.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(service candidate.Service, log *logger.Logger, val *validator.Validator) *CandidateHandler {
	return &CandidateHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List handles GET /api/v1/candidates
// @Summary List candidates
// @Tags Candidates
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Security BearerAuth
// @Router /candidates [get]
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page := utils.ParsePaginationParams(r)
	candidates, total, err := h.service.List(r.Context(), userID, page.PageSize, page.Offset)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list candidates")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(candidates, page.Page, page.PageSize, total))
}

// Create handles POST /api/v1/candidates
// @Summary Add candidate
// @Tags Candidates
// @Accept json
// @Produce json
// @Param request body dto.CreateCandidateRequest true "Candidate"
// @Success 201 {object} candidate.Candidate
// @Failure 402 {object} utils.ErrorResponse "Quota exceeded"
// @Security BearerAuth
// @Router /candidates [post]
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateCandidateRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	c := &candidate.Candidate{
		UserID:   userID,
		JobID:    req.JobID,
		FullName: req.FullName,
		Email:    req.Email,
		Stage:    candidate.Stage(req.Stage),
	}
	if err := h.service.Create(r.Context(), c); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, c)
}
