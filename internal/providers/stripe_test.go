package providers

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
)

const testWebhookSecret = "whsec_test_secret"

func signed(t *testing.T, payload string) (body []byte, header string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return sp.Payload, sp.Header
}

func TestStripeWebhookVerifier_CheckoutCompleted(t *testing.T) {
	body, header := signed(t, `{
		"id": "evt_checkout",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_1",
			"object": "checkout.session",
			"customer": "cus_9",
			"subscription": "sub_9",
			"metadata": {"user_id": "42", "plan_id": "professional-monthly"}
		}}
	}`)

	ev, err := NewStripeWebhookVerifier(testWebhookSecret).Parse(body, header)
	require.NoError(t, err)

	got, ok := ev.(subscription.CheckoutCompleted)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, "evt_checkout", got.ProviderEventID())
	assert.Equal(t, int64(42), got.TenantID)
	assert.Equal(t, "professional-monthly", got.PlanID)
	assert.Equal(t, "cus_9", got.CustomerID)
	assert.Equal(t, "sub_9", got.SubscriptionID)
}

func TestStripeWebhookVerifier_CheckoutMissingMetadata(t *testing.T) {
	body, header := signed(t, `{
		"id": "evt_bare",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_2", "object": "checkout.session"}}
	}`)

	ev, err := NewStripeWebhookVerifier(testWebhookSecret).Parse(body, header)
	require.NoError(t, err)

	got := ev.(subscription.CheckoutCompleted)
	assert.Zero(t, got.TenantID)
	assert.Empty(t, got.SubscriptionID)
}

func TestStripeWebhookVerifier_SubscriptionEvents(t *testing.T) {
	body, header := signed(t, `{
		"id": "evt_upd",
		"object": "event",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_9",
			"object": "subscription",
			"customer": "cus_9",
			"status": "past_due",
			"current_period_start": 1706745600,
			"current_period_end": 1709251200,
			"metadata": {"plan_id": "starter-monthly"}
		}}
	}`)

	ev, err := NewStripeWebhookVerifier(testWebhookSecret).Parse(body, header)
	require.NoError(t, err)

	upd, ok := ev.(subscription.SubscriptionUpdated)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, "sub_9", upd.SubscriptionID)
	assert.Equal(t, "past_due", upd.Status)
	assert.Equal(t, "starter-monthly", upd.PlanID)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), upd.PeriodStart)

	body, header = signed(t, `{
		"id": "evt_del",
		"object": "event",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_9", "object": "subscription", "status": "canceled"}}
	}`)
	ev, err = NewStripeWebhookVerifier(testWebhookSecret).Parse(body, header)
	require.NoError(t, err)
	assert.Equal(t, subscription.SubscriptionDeleted{EventID: "evt_del", SubscriptionID: "sub_9"}, ev)
}

func TestStripeWebhookVerifier_IgnoredType(t *testing.T) {
	body, header := signed(t, `{"id": "evt_inv", "object": "event", "type": "invoice.paid", "data": {"object": {"id": "in_1"}}}`)

	ev, err := NewStripeWebhookVerifier(testWebhookSecret).Parse(body, header)
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestStripeWebhookVerifier_BadSignature(t *testing.T) {
	body, header := signed(t, `{"id": "evt_x", "object": "event", "type": "checkout.session.completed", "data": {"object": {}}}`)

	tests := []struct {
		name   string
		secret string
		body   []byte
		header string
	}{
		{"wrong secret", "whsec_other", body, header},
		{"tampered body", testWebhookSecret, append(append([]byte(nil), body...), ' '), header},
		{"missing header", testWebhookSecret, body, ""},
		{"unconfigured secret", "", body, header},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStripeWebhookVerifier(tt.secret).Parse(tt.body, tt.header)
			assert.True(t, stderrors.Is(err, ErrInvalidSignature), "err = %v", err)
		})
	}
}

func TestToProviderSubscription(t *testing.T) {
	sub := &stripe.Subscription{
		ID:                 "sub_1",
		Status:             stripe.SubscriptionStatusActive,
		Customer:           &stripe.Customer{ID: "cus_1"},
		CurrentPeriodStart: 1704067200,
		Items: &stripe.SubscriptionItemList{Data: []*stripe.SubscriptionItem{
			{Price: &stripe.Price{Metadata: map[string]string{MetadataPlanID: "enterprise-monthly"}}},
		}},
	}

	ps := toProviderSubscription(sub)
	assert.Equal(t, "cus_1", ps.CustomerID)
	assert.Equal(t, "active", ps.Status)
	assert.Equal(t, "enterprise-monthly", ps.PlanID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ps.PeriodStart)
	assert.True(t, ps.PeriodEnd.IsZero())
}
