package client

import (
	"context"
	stderrors "errors"
	"net/http"
)

// Health checks that the API process is alive
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/healthz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready fetches the readiness report. When the server is not ready the
// report from the error details is returned together with the error.
func (c *Client) Ready(ctx context.Context) (*Readiness, error) {
	var ready Readiness
	err := c.doRequest(ctx, http.MethodGet, "/readyz", nil, &ready)
	if err == nil {
		return &ready, nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		if d, ok := apiErr.Details.(map[string]interface{}); ok {
			str := func(k string) string { s, _ := d[k].(string); return s }
			return &Readiness{
				Status:          str("status"),
				Database:        str("database"),
				WebhookDatabase: str("webhook_database"),
				Billing:         str("billing"),
			}, err
		}
	}
	return nil, err
}
