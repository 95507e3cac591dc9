package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"active", StatusActive},
		{"ACTIVE", StatusActive},
		{"trialing", StatusTrialing},
		{"canceled", StatusCanceled},
		{"incomplete_expired", StatusCanceled},
		{"past_due", StatusPastDue},
		{"unpaid", StatusPastDue},
		{"incomplete", StatusPastDue},
		{"paused", StatusPastDue},
		{"something_new", StatusPastDue},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.in))
		})
	}
}

func TestStatus_IsEntitling(t *testing.T) {
	assert.True(t, StatusActive.IsEntitling())
	assert.True(t, StatusTrialing.IsEntitling())
	assert.False(t, StatusPastDue.IsEntitling())
	assert.False(t, StatusCanceled.IsEntitling())
	assert.False(t, Status("").IsEntitling())
}

func TestEvent_Kinds(t *testing.T) {
	events := []Event{
		CheckoutCompleted{EventID: "evt_1"},
		SubscriptionUpdated{EventID: "evt_2"},
		SubscriptionDeleted{EventID: "evt_3"},
	}
	want := []string{KindCheckoutCompleted, KindSubscriptionUpdated, KindSubscriptionDeleted}

	for i, ev := range events {
		assert.Equal(t, want[i], ev.Kind())
		assert.NotEmpty(t, ev.ProviderEventID())
	}
}
