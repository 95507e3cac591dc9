package handlers

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/pratik-mahalle/hireloop/internal/api/dto"
	"github.com/pratik-mahalle/hireloop/internal/api/middleware"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/domain/user"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
	"github.com/pratik-mahalle/hireloop/internal/providers"
)

// BillingHandler handles billing and subscription related API endpoints
type BillingHandler struct {
	subscriptions subscription.Service
	users         user.Service
	logger        *logger.Logger
	validator     *validator.Validator
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(subs subscription.Service, users user.Service, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		subscriptions: subs,
		users:         users,
		logger:        log,
		validator:     val,
	}
}

// ListPlans returns the plan catalog
// @Summary List subscription plans
// @Description Get the plan catalog. When a session is present the tenant's plan is marked current.
// @Tags Billing
// @Produce json
// @Success 200 {array} dto.PlanDTO "List of plans"
// @Router /billing/plans [get]
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	current := ""
	if userID, ok := middleware.GetUserID(r); ok {
		if sub, err := h.subscriptions.GetForTenant(r.Context(), userID); err == nil && sub != nil && sub.Status.IsEntitling() {
			current = sub.PlanID
		} else if err == nil {
			current = plan.IDFreeTrial
		}
	}

	catalog := plan.List()
	plans := make([]dto.PlanDTO, 0, len(catalog))
	for _, p := range catalog {
		plans = append(plans, dto.ToPlanDTO(p, current))
	}

	utils.WriteSuccess(w, http.StatusOK, plans)
}

// GetSubscription returns the tenant's subscription row
// @Summary Get subscription
// @Description Returns the tenant's subscription, or null when the tenant never subscribed
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.SubscriptionDTO "Subscription or null"
// @Failure 401 {object} utils.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /billing/subscription [get]
func (h *BillingHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sub, err := h.subscriptions.GetForTenant(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	// nil encodes as an explicit null
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    dto.ToSubscriptionDTO(sub),
	})
}

// StartTrial creates a free-trial subscription
// @Summary Start free trial
// @Tags Billing
// @Produce json
// @Success 201 {object} dto.SubscriptionDTO "Trial subscription"
// @Failure 409 {object} utils.ErrorResponse "Tenant already has a subscription"
// @Security BearerAuth
// @Router /billing/trial [post]
func (h *BillingHandler) StartTrial(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sub, err := h.subscriptions.StartTrial(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.ToSubscriptionDTO(sub))
}

// CreateCheckout starts a hosted checkout for a paid plan
// @Summary Create checkout session
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body dto.CheckoutRequest true "Plan to subscribe to"
// @Success 200 {object} dto.CheckoutResponse "Hosted checkout URL"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Unknown plan"
// @Failure 502 {object} utils.ErrorResponse "Billing provider error"
// @Security BearerAuth
// @Router /billing/checkout [post]
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	email, _ := middleware.GetUserEmail(r)
	sess, err := h.subscriptions.CreateCheckout(r.Context(), userID, email, req.PlanID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.CheckoutResponse{URL: sess.URL})
}

// CreatePortal returns a self-service billing portal link
// @Summary Create billing portal session
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.PortalResponse "Portal URL"
// @Failure 400 {object} utils.ErrorResponse "Tenant has no billing account"
// @Security BearerAuth
// @Router /billing/portal [post]
func (h *BillingHandler) CreatePortal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	url, err := h.subscriptions.CreatePortal(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.PortalResponse{URL: url})
}

// ListFailedWebhooks lists deliveries acknowledged without effect
// @Summary List failed webhook deliveries
// @Description Admin only. Deliveries that need manual reconciliation.
// @Tags Billing
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {array} subscription.WebhookEvent
// @Failure 403 {object} utils.ErrorResponse "Not an admin"
// @Security BearerAuth
// @Router /billing/webhook-events/failed [get]
func (h *BillingHandler) ListFailedWebhooks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if u.Role != user.RoleAdmin {
		utils.WriteError(w, errors.Forbidden("Admin access required"))
		return
	}

	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= utils.MaxPageSize {
		limit = v
	}

	events, err := h.subscriptions.ListFailedEvents(r.Context(), limit)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, events)
}

// WebhookHandler receives billing provider events
type WebhookHandler struct {
	verifier      subscription.Verifier
	subscriptions subscription.Service
	logger        *logger.Logger
}

// NewWebhookHandler creates a webhook handler. subs should be backed by
// the privileged service connection.
func NewWebhookHandler(verifier subscription.Verifier, subs subscription.Service, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:      verifier,
		subscriptions: subs,
		logger:        log,
	}
}

// Handle verifies and applies a provider event
// @Summary Billing provider webhook
// @Description Signature-verified provider events. Valid deliveries are always acknowledged.
// @Tags Billing
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Provider signature"
// @Success 200 {object} map[string]bool "received"
// @Failure 400 {object} map[string]string "Signature verification failed"
// @Failure 413 {object} map[string]string "Payload too large"
// @Router /billing/webhook [post]
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, providers.MaxWebhookBodyBytes+1))
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "unable to read request body"})
		return
	}
	if len(body) > providers.MaxWebhookBodyBytes {
		h.logger.WithFields(map[string]interface{}{
			"limit_bytes":    providers.MaxWebhookBodyBytes,
			"content_length": r.ContentLength,
		}).Error("Webhook payload too large; delivery not processed")
		utils.WriteJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "payload too large"})
		return
	}

	event, err := h.verifier.Parse(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if stderrors.Is(err, providers.ErrInvalidSignature) {
			h.logger.WithError(err).Warn("Webhook signature verification failed")
			utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
			return
		}
		// authentic but undecodable; retrying will not help
		h.logger.WithError(err).Error("Failed to decode webhook event")
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if event != nil {
		if err := h.subscriptions.HandleEvent(r.Context(), event); err != nil {
			h.logger.WithFields(map[string]interface{}{
				"event_id":   event.ProviderEventID(),
				"event_type": event.Kind(),
			}).WithError(err).Warn("Webhook event acknowledged without effect")
		}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
