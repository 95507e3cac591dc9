package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

func intPtr(n int) *int { return &n }

func TestFormatUsage(t *testing.T) {
	tests := []struct {
		name string
		in   client.Entitlement
		want string
	}{
		{"counted", client.Entitlement{Resource: "candidates", Used: 3, Limit: intPtr(10)}, "3/10"},
		{"unlimited", client.Entitlement{Resource: "jobs", Used: 42, Unlimited: true}, "42/unlimited"},
		{"capability granted", client.Entitlement{Resource: "analytics", Allowed: true}, "included"},
		{"capability missing", client.Entitlement{Resource: "analytics"}, "not in plan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatUsage(&tt.in))
		})
	}
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "unlimited", formatLimit(-1))
	assert.Equal(t, "0", formatLimit(0))
	assert.Equal(t, "25", formatLimit(25))
}

func TestPlanLabel(t *testing.T) {
	assert.Equal(t, "free-trial (no subscription)", planLabel(nil))
	assert.Equal(t, "starter-monthly", planLabel(&client.Subscription{PlanID: "starter-monthly", Status: "active"}))
	assert.Equal(t, "free-trial (professional-monthly is past_due)",
		planLabel(&client.Subscription{PlanID: "professional-monthly", Status: "past_due"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
