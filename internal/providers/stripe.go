package providers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
)

// MaxWebhookBodyBytes bounds the webhook payload read before verification.
// Larger deliveries are rejected outright instead of failing the signature check.
const MaxWebhookBodyBytes = 512 * 1024

// Metadata keys written on checkout sessions and subscriptions
const (
	MetadataUserID    = "user_id"
	MetadataPlanID    = "plan_id"
	MetadataPlanName  = "plan_name"
	MetadataPlanPrice = "plan_price_cents"
)

// ErrInvalidSignature is returned when a webhook payload fails verification
var ErrInvalidSignature = stderrors.New("invalid webhook signature")

// StripeGateway implements subscription.Gateway with the Stripe API
type StripeGateway struct {
	api    *client.API
	logger *logger.Logger
}

// NewStripeGateway creates a gateway using the given secret key
func NewStripeGateway(secretKey string, log *logger.Logger) *StripeGateway {
	return &StripeGateway{
		api:    client.New(secretKey, nil),
		logger: log,
	}
}

// CreateCheckoutSession starts a hosted checkout in subscription mode
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req subscription.CheckoutRequest) (*subscription.CheckoutSession, error) {
	metadata := map[string]string{
		MetadataUserID:    strconv.FormatInt(req.TenantID, 10),
		MetadataPlanID:    req.PlanID,
		MetadataPlanName:  req.PlanName,
		MetadataPlanPrice: strconv.FormatInt(req.UnitAmount, 10),
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(metadata[MetadataUserID]),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.PlanName),
						Description: stripe.String(req.PlanDesc),
					},
					UnitAmount: stripe.Int64(req.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(req.Interval),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	g.logger.WithFields(map[string]interface{}{
		"session_id": sess.ID,
		"plan_id":    req.PlanID,
	}).Debug("Stripe checkout session created")

	return &subscription.CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

// GetSubscription fetches a subscription by id
func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*subscription.ProviderSubscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("get subscription %s: %w", subscriptionID, err)
	}
	return toProviderSubscription(sub), nil
}

// CreatePortalSession returns a billing portal URL for the customer
func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}
	return sess.URL, nil
}

func toProviderSubscription(sub *stripe.Subscription) *subscription.ProviderSubscription {
	out := &subscription.ProviderSubscription{
		ID:       sub.ID,
		Status:   string(sub.Status),
		Metadata: sub.Metadata,
		PlanID:   subscriptionPlanID(sub),
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodStart > 0 {
		out.PeriodStart = time.Unix(sub.CurrentPeriodStart, 0).UTC()
	}
	if sub.CurrentPeriodEnd > 0 {
		out.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	return out
}

// subscriptionPlanID reads the plan id from subscription metadata, then
// from the first price's metadata.
func subscriptionPlanID(sub *stripe.Subscription) string {
	if id := sub.Metadata[MetadataPlanID]; id != "" {
		return id
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		if price := sub.Items.Data[0].Price; price != nil {
			return price.Metadata[MetadataPlanID]
		}
	}
	return ""
}

// StripeWebhookVerifier verifies and decodes Stripe webhook deliveries
type StripeWebhookVerifier struct {
	secret string
}

// NewStripeWebhookVerifier creates a verifier for the endpoint signing secret
func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret}
}

// Parse verifies the Stripe-Signature header against body and decodes the
// event. It returns a nil event for types the lifecycle handler ignores.
func (v *StripeWebhookVerifier) Parse(body []byte, signature string) (subscription.Event, error) {
	if v.secret == "" {
		return nil, fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if event.Data == nil {
		return nil, fmt.Errorf("event %s has no data", event.ID)
	}

	switch string(event.Type) {
	case subscription.KindCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		return checkoutCompleted(event.ID, &sess), nil

	case subscription.KindSubscriptionUpdated:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		ps := toProviderSubscription(&sub)
		return subscription.SubscriptionUpdated{
			EventID:        event.ID,
			SubscriptionID: ps.ID,
			CustomerID:     ps.CustomerID,
			Status:         ps.Status,
			PlanID:         ps.PlanID,
			PeriodStart:    ps.PeriodStart,
			PeriodEnd:      ps.PeriodEnd,
		}, nil

	case subscription.KindSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		return subscription.SubscriptionDeleted{EventID: event.ID, SubscriptionID: sub.ID}, nil
	}

	return nil, nil
}

func checkoutCompleted(eventID string, sess *stripe.CheckoutSession) subscription.CheckoutCompleted {
	ev := subscription.CheckoutCompleted{
		EventID: eventID,
		PlanID:  sess.Metadata[MetadataPlanID],
	}

	ref := sess.Metadata[MetadataUserID]
	if ref == "" {
		ref = sess.ClientReferenceID
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		ev.TenantID = id
	}
	if sess.Customer != nil {
		ev.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		ev.SubscriptionID = sess.Subscription.ID
	}
	return ev
}
