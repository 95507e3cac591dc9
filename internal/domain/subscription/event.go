package subscription

import "time"

// Event is a verified billing provider event. The concrete types are
// CheckoutCompleted, SubscriptionUpdated and SubscriptionDeleted.
type Event interface {
	ProviderEventID() string
	Kind() string
	isEvent()
}

// Event kinds as reported by the provider
const (
	KindCheckoutCompleted   = "checkout.session.completed"
	KindSubscriptionUpdated = "customer.subscription.updated"
	KindSubscriptionDeleted = "customer.subscription.deleted"
)

// CheckoutCompleted carries the tenant reference from checkout metadata
// and the provider subscription created by the checkout.
type CheckoutCompleted struct {
	EventID        string
	TenantID       int64
	PlanID         string
	CustomerID     string
	SubscriptionID string
}

// SubscriptionUpdated carries the provider's view of a subscription
type SubscriptionUpdated struct {
	EventID        string
	SubscriptionID string
	CustomerID     string
	Status         string
	PlanID         string
	PeriodStart    time.Time
	PeriodEnd      time.Time
}

// SubscriptionDeleted signals that the provider ended a subscription
type SubscriptionDeleted struct {
	EventID        string
	SubscriptionID string
}

func (e CheckoutCompleted) ProviderEventID() string   { return e.EventID }
func (e SubscriptionUpdated) ProviderEventID() string { return e.EventID }
func (e SubscriptionDeleted) ProviderEventID() string { return e.EventID }

func (CheckoutCompleted) Kind() string   { return KindCheckoutCompleted }
func (SubscriptionUpdated) Kind() string { return KindSubscriptionUpdated }
func (SubscriptionDeleted) Kind() string { return KindSubscriptionDeleted }

func (CheckoutCompleted) isEvent()   {}
func (SubscriptionUpdated) isEvent() {}
func (SubscriptionDeleted) isEvent() {}
