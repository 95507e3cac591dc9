package dto

import (
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
)

// PlanDTO represents a subscription plan
type PlanDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Interval    string      `json:"interval"`
	Features    []string    `json:"features"`
	IsPopular   bool        `json:"isPopular"`
	IsCurrent   bool        `json:"isCurrent"`
	Limits      plan.Limits `json:"limits"`
}

// ToPlanDTO converts a catalog plan. currentPlanID marks the tenant's plan.
func ToPlanDTO(p plan.Plan, currentPlanID string) PlanDTO {
	return PlanDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       float64(p.PriceInCents) / 100,
		Currency:    p.Currency,
		Interval:    p.BillingPeriod,
		Features:    p.Features,
		IsPopular:   p.Popular,
		IsCurrent:   p.ID == currentPlanID,
		Limits:      p.Limits,
	}
}

// SubscriptionDTO is the tenant's subscription row
type SubscriptionDTO struct {
	PlanID             string     `json:"planId"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd,omitempty"`
	HasBillingAccount  bool       `json:"hasBillingAccount"`
}

// ToSubscriptionDTO converts a subscription; nil stays nil
func ToSubscriptionDTO(s *subscription.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	return &SubscriptionDTO{
		PlanID:             s.PlanID,
		Status:             string(s.Status),
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		HasBillingAccount:  s.StripeCustomerID != nil && *s.StripeCustomerID != "",
	}
}

// CheckoutRequest represents a request to start a hosted checkout
type CheckoutRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PortalResponse carries the billing portal URL
type PortalResponse struct {
	URL string `json:"url"`
}
