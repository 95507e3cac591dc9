package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/api/middleware"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// TeamHandler handles team membership requests
type TeamHandler struct {
	service   team.Service
	logger    *logger.Logger
	validator *validator.Validator
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(service team.Service, log *logger.Logger, val *validator.Validator) *TeamHandler {
	return &TeamHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List handles GET /api/v1/team/members
// @Summary List team members and invitations
// @Tags Team
// @Produce json
// @Success 200 {array} team.Member
// @Security BearerAuth
// @Router /team/members [get]
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	members, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to list team members")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, members)
}

// Invite handles POST /api/v1/team/members
// @Summary Invite team member
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.InviteMemberRequest true "Invitation"
// @Success 201 {object} team.Member
// @Failure 402 {object} utils.ErrorResponse "Team quota exceeded"
// @Failure 409 {object} utils.ErrorResponse "Already invited"
// @Security BearerAuth
// @Router /team/members [post]
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.InviteMemberRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	m, err := h.service.Invite(r.Context(), userID, userID, req.Email, team.Role(req.Role))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, m)
}

// Revoke handles DELETE /api/v1/team/members/{id}
// @Summary Revoke invitation
// @Tags Team
// @Param id path string true "Invitation ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Not found"
// @Security BearerAuth
// @Router /team/members/{id} [delete]
func (h *TeamHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Revoke(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Invitation revoked", nil)
}

// Accept handles POST /api/v1/team/invitations/{id}/accept
// @Summary Accept invitation
// @Description The session email must be verified and match the invited address
// @Tags Team
// @Param id path string true "Invitation ID"
// @Success 200 {object} team.Member
// @Failure 403 {object} utils.ErrorResponse "Email unverified or mismatched"
// @Failure 410 {object} utils.ErrorResponse "Invitation expired"
// @Security BearerAuth
// @Router /team/invitations/{id}/accept [post]
func (h *TeamHandler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
		return
	}

	m, err := h.service.Accept(r.Context(), chi.URLParam(r, "id"), team.Principal{
		UserID:        identity.UserID,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
	})
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, m)
}
