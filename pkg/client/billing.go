package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// BillingService handles plan and subscription operations
type BillingService struct {
	client *Client
}

// Plans returns the plan catalog. With a token set, the tenant's plan is marked current.
func (s *BillingService) Plans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Subscription returns the tenant's subscription, or nil when none exists
func (s *BillingService) Subscription(ctx context.Context) (*Subscription, error) {
	var sub *Subscription
	if err := s.client.doRequest(ctx, "GET", "/api/v1/billing/subscription", nil, &sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// StartTrial starts the free trial for the tenant
func (s *BillingService) StartTrial(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := s.client.doRequest(ctx, "POST", "/api/v1/billing/trial", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Checkout creates a hosted checkout session and returns its URL
func (s *BillingService) Checkout(ctx context.Context, planID string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := s.client.doRequest(ctx, "POST", "/api/v1/billing/checkout", map[string]string{"planId": planID}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// Portal returns a billing portal URL for managing payment details
func (s *BillingService) Portal(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := s.client.doRequest(ctx, "POST", "/api/v1/billing/portal", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// WebhookEvent is a recorded provider delivery
type WebhookEvent struct {
	ID              int64      `json:"id"`
	Provider        string     `json:"provider"`
	ProviderEventID string     `json:"provider_event_id"`
	EventType       string     `json:"event_type"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `json:"processing_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FailedWebhooks lists deliveries that were acknowledged without effect. Admin only.
func (s *BillingService) FailedWebhooks(ctx context.Context, limit int) ([]WebhookEvent, error) {
	path := "/api/v1/billing/webhook-events/failed"
	if limit > 0 {
		path += "?" + url.Values{"limit": {fmt.Sprint(limit)}}.Encode()
	}

	var events []WebhookEvent
	if err := s.client.doRequest(ctx, "GET", path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}
