package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/services"
)

// EntitlementHandler exposes entitlement decisions to the UI
type EntitlementHandler struct {
	service *services.EntitlementService
	logger  *logger.Logger
}

// NewEntitlementHandler creates a new entitlement handler
func NewEntitlementHandler(service *services.EntitlementService, log *logger.Logger) *EntitlementHandler {
	return &EntitlementHandler{
		service: service,
		logger:  log,
	}
}

// Summary handles GET /api/v1/entitlements
// @Summary Usage and limits for every resource
// @Tags Entitlements
// @Produce json
// @Success 200 {array} entitlement.Result
// @Failure 503 {object} utils.ErrorResponse "Usage could not be read"
// @Security BearerAuth
// @Router /entitlements [get]
func (h *EntitlementHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	results, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		h.logger.WithTenant(userID).WithError(err).Warn("Entitlement summary unavailable")
		utils.WriteError(w, errors.ServiceUnavailable("Usage is temporarily unavailable, please retry"))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, results)
}

// Get handles GET /api/v1/entitlements/{resource}
// @Summary Entitlement for one resource
// @Tags Entitlements
// @Produce json
// @Param resource path string true "interviews, candidates, jobs, team_members or analytics"
// @Success 200 {object} entitlement.Result
// @Failure 400 {object} utils.ErrorResponse "Unknown resource"
// @Failure 503 {object} utils.ErrorResponse "Usage could not be read"
// @Security BearerAuth
// @Router /entitlements/{resource} [get]
func (h *EntitlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	resource := plan.Resource(chi.URLParam(r, "resource"))
	if !resource.Valid() {
		utils.WriteError(w, errors.BadRequest("Unknown resource: "+string(resource)))
		return
	}

	res := h.service.Evaluate(r.Context(), userID, resource)
	if res.Unavailable() {
		utils.WriteError(w, errors.ServiceUnavailable("Usage is temporarily unavailable, please retry"))
		return
	}

	data := map[string]interface{}{"entitlement": res}
	if res.NeedsUpgrade {
		data["upgradeUrl"] = h.service.UpgradeURL(resource)
	}
	utils.WriteSuccess(w, http.StatusOK, data)
}
