package client

import (
	"context"
	"net/url"
)

// EntitlementService reads plan usage
type EntitlementService struct {
	client *Client
}

// Summary returns usage for every metered resource plus the analytics capability
func (s *EntitlementService) Summary(ctx context.Context) ([]*Entitlement, error) {
	var results []*Entitlement
	if err := s.client.doRequest(ctx, "GET", "/api/v1/entitlements", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Get checks a single resource such as "candidates" or "analytics"
func (s *EntitlementService) Get(ctx context.Context, resource string) (*EntitlementCheck, error) {
	var check EntitlementCheck
	if err := s.client.doRequest(ctx, "GET", "/api/v1/entitlements/"+url.PathEscape(resource), nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// Analytics returns the hiring overview. Plans without analytics get an
// APIError for which IsRedirect reports true.
func (s *EntitlementService) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	var summary AnalyticsSummary
	if err := s.client.doRequest(ctx, "GET", "/api/v1/analytics/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
