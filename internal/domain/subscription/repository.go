package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription data access
type Repository interface {
	// GetByUserID returns the tenant's subscription or a NOT_FOUND error
	GetByUserID(ctx context.Context, userID int64) (*Subscription, error)

	// GetByStripeSubscriptionID returns the row linked to a provider subscription
	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*Subscription, error)

	// Create inserts a new row; CONFLICT when the tenant already has one
	Create(ctx context.Context, sub *Subscription) error

	// Upsert inserts or overwrites the row keyed on user_id
	Upsert(ctx context.Context, sub *Subscription) error

	// UpdateFromProvider updates status, period and plan of the row linked to
	// the provider subscription. An empty planID leaves the plan unchanged.
	// Canceled rows are terminal and report NotFound.
	UpdateFromProvider(ctx context.Context, stripeSubscriptionID string, status Status, planID string, periodStart, periodEnd *time.Time) error

	// UpdateStatus sets the status of the row linked to the provider subscription
	UpdateStatus(ctx context.Context, stripeSubscriptionID string, status Status) error
}

// WebhookEventRepository records provider deliveries for reconciliation
type WebhookEventRepository interface {
	// Record stores a delivery. Repeated deliveries of the same provider
	// event id keep the first row.
	Record(ctx context.Context, provider, providerEventID, eventType string) error

	// MarkProcessed stamps the delivery, with processingErr when it was
	// acknowledged without a state change.
	MarkProcessed(ctx context.Context, provider, providerEventID, processingErr string) error

	// ListFailed returns deliveries acknowledged with a processing error, newest first
	ListFailed(ctx context.Context, limit int) ([]*WebhookEvent, error)
}
