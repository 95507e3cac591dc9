package subscription

import "context"

// Gateway is the billing provider as seen by the lifecycle handler
type Gateway interface {
	// CreateCheckoutSession starts a hosted subscription checkout
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)

	// GetSubscription fetches the full subscription object by id
	GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)

	// CreatePortalSession returns a self-service billing portal URL
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// Service defines the interface for subscription business logic
type Service interface {
	// GetForTenant returns the tenant's subscription, or nil when none exists
	GetForTenant(ctx context.Context, tenantID int64) (*Subscription, error)

	// StartTrial creates a trialing free-trial subscription
	StartTrial(ctx context.Context, tenantID int64) (*Subscription, error)

	// CreateCheckout starts a provider checkout for a catalog plan
	CreateCheckout(ctx context.Context, tenantID int64, email, planID string) (*CheckoutSession, error)

	// CreatePortal returns the billing portal URL for a paying tenant
	CreatePortal(ctx context.Context, tenantID int64) (string, error)

	// HandleEvent applies a verified provider event. It returns an error
	// only to report why an event was acknowledged without effect.
	HandleEvent(ctx context.Context, ev Event) error

	// ListFailedEvents returns deliveries acknowledged without effect
	ListFailedEvents(ctx context.Context, limit int) ([]*WebhookEvent, error)
}

// Verifier authenticates a raw webhook delivery and decodes it. A nil
// event with a nil error means the delivery is valid but not handled.
type Verifier interface {
	Parse(body []byte, signature string) (Event, error)
}
