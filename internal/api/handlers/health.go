package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness checks
type HealthHandler struct {
	db                *sql.DB
	serviceDB         *sql.DB
	billingConfigured bool
	logger            *logger.Logger
}

// NewHealthHandler creates a health handler. serviceDB is the webhook
// connection and may be the same handle as db.
func NewHealthHandler(db, serviceDB *sql.DB, billingConfigured bool, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:                db,
		serviceDB:         serviceDB,
		billingConfigured: billingConfigured,
		logger:            log,
	}
}

// Healthz handles the liveness check
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz reports whether tenant requests and webhook deliveries can be
// served. A missing billing provider only disables checkout, so it is
// reported but does not fail readiness.
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := map[string]string{
		"status":   "ready",
		"database": "connected",
		"billing":  "configured",
	}
	ready := true

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		checks["database"] = "unreachable"
		ready = false
	}

	switch {
	case h.serviceDB == nil || h.serviceDB == h.db:
		checks["webhook_database"] = "shared"
	default:
		checks["webhook_database"] = "connected"
		if err := h.serviceDB.PingContext(ctx); err != nil {
			h.logger.ErrorWithErr(err, "Webhook database ping failed")
			checks["webhook_database"] = "unreachable"
			ready = false
		}
	}

	if !h.billingConfigured {
		checks["billing"] = "disabled"
	}

	if !ready {
		checks["status"] = "unavailable"
		utils.WriteError(w, errors.ServiceUnavailable("Service is not ready").WithDetails(checks))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, checks)
}
