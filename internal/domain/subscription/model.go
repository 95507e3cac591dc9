package subscription

import (
	"strings"
	"time"
)

// Status is the local subscription status
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusCanceled Status = "canceled"
	StatusPastDue  Status = "past_due"
)

// IsEntitling reports whether the status grants the subscribed plan.
// Anything else falls back to the free trial.
func (s Status) IsEntitling() bool {
	return s == StatusActive || s == StatusTrialing
}

// NormalizeStatus maps a billing provider status onto the local set.
func NormalizeStatus(providerStatus string) Status {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "active":
		return StatusActive
	case "trialing":
		return StatusTrialing
	case "canceled", "cancelled", "incomplete_expired":
		return StatusCanceled
	default:
		// past_due, unpaid, incomplete, paused and anything new
		return StatusPastDue
	}
}

// Subscription is the per-tenant billing state. One row per user_id.
type Subscription struct {
	ID                   int64      `json:"id"`
	UserID               int64      `json:"user_id"`
	PlanID               string     `json:"plan_id"`
	Status               Status     `json:"status"`
	StripeCustomerID     *string    `json:"stripe_customer_id"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
	CurrentPeriodStart   *time.Time `json:"current_period_start"`
	CurrentPeriodEnd     *time.Time `json:"current_period_end"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ProviderSubscription is the subset of a provider subscription object
// needed to persist local state.
type ProviderSubscription struct {
	ID          string
	CustomerID  string
	Status      string
	PlanID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Metadata    map[string]string
}

// CheckoutRequest describes a hosted checkout to create with the provider
type CheckoutRequest struct {
	TenantID   int64
	Email      string
	PlanID     string
	PlanName   string
	PlanDesc   string
	UnitAmount int64
	Currency   string
	Interval   string
	CustomerID string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider's hosted checkout
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// WebhookEvent is an audit record of a billing provider delivery
type WebhookEvent struct {
	ID              int64      `json:"id"`
	Provider        string     `json:"provider"`
	ProviderEventID string     `json:"provider_event_id"`
	EventType       string     `json:"event_type"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `json:"processing_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
