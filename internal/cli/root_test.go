package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/hireloop/pkg/client"
)

func TestExitCode(t *testing.T) {
	quota := &client.APIError{StatusCode: http.StatusPaymentRequired, Code: "QUOTA_EXCEEDED", Message: "limit",
		Details: map[string]interface{}{"upgradeUrl": "https://app.example.com/pricing?feature=jobs"}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"plain", errors.New("boom"), ExitError},
		{"no stored token", errNotAuthenticated, ExitUnauthorized},
		{"session expired", fmt.Errorf("failed: %w", &client.APIError{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED"}), ExitUnauthorized},
		{"quota through create hint", quotaError("failed to create job", quota), ExitPlanLimit},
		{"upgrade redirect", &client.APIError{Code: "REDIRECT", Location: "https://app.example.com/pricing?feature=analytics"}, ExitPlanLimit},
		{"login redirect", &client.APIError{Code: "REDIRECT", Location: "https://app.example.com/login?next=%2F"}, ExitError},
		{"server down", &client.APIError{StatusCode: http.StatusServiceUnavailable, Code: "SERVICE_UNAVAILABLE"}, ExitUnavailable},
		{"validation", &client.APIError{StatusCode: http.StatusBadRequest, Code: "VALIDATION_ERROR"}, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestQuotaError_MessageHidesEnvelope(t *testing.T) {
	quota := &client.APIError{StatusCode: http.StatusPaymentRequired, Code: "QUOTA_EXCEEDED",
		Details: map[string]interface{}{"upgradeUrl": "https://app.example.com/pricing?feature=jobs"}}

	err := quotaError("failed to create job", quota)
	assert.Equal(t, "failed to create job: plan limit reached. Upgrade at https://app.example.com/pricing?feature=jobs", err.Error())
}

func TestReadinessLabel(t *testing.T) {
	assert.Equal(t, "unreachable", readinessLabel(nil))
	assert.Equal(t, "ready", readinessLabel(&client.Readiness{Status: "ready", Database: "connected", Billing: "configured"}))
	assert.Equal(t, "unavailable, database unreachable, billing disabled",
		readinessLabel(&client.Readiness{Status: "unavailable", Database: "unreachable", Billing: "disabled"}))
}
