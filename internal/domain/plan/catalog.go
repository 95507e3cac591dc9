package plan

import (
	"fmt"
	"net/http"

	apperrors "github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// ErrNotFound is returned by Find for ids missing from the catalog.
var ErrNotFound = apperrors.New(apperrors.ErrCodePlanNotFound, "plan not found", http.StatusNotFound)

// catalog is ordered by price and never mutated after init.
var catalog = []Plan{
	{
		ID:            IDFreeTrial,
		Name:          "Free Trial",
		Description:   "Try hireloop with a single recruiter",
		PriceInCents:  0,
		Currency:      "usd",
		BillingPeriod: "month",
		Features:      []string{"3 interviews per month", "2 open jobs", "25 candidates"},
		Limits: Limits{
			MaxCandidates:         25,
			MaxJobs:               2,
			MaxTeamMembers:        1,
			MaxInterviewsPerMonth: 3,
		},
	},
	{
		ID:            IDStarter,
		Name:          "Starter",
		Description:   "For small teams hiring regularly",
		PriceInCents:  2900,
		Currency:      "usd",
		BillingPeriod: "month",
		Features:      []string{"50 interviews per month", "10 open jobs", "250 candidates", "3 team members"},
		Limits: Limits{
			MaxCandidates:         250,
			MaxJobs:               10,
			MaxTeamMembers:        3,
			MaxInterviewsPerMonth: 50,
			HasCustomBranding:     true,
		},
	},
	{
		ID:            IDProfessional,
		Name:          "Professional",
		Description:   "Unlimited interviews and hiring analytics",
		PriceInCents:  7900,
		Currency:      "usd",
		BillingPeriod: "month",
		Features:      []string{"Unlimited interviews", "50 open jobs", "Unlimited candidates", "10 team members", "Analytics and reports"},
		Popular:       true,
		Limits: Limits{
			MaxCandidates:          Unlimited,
			MaxJobs:                50,
			MaxTeamMembers:         10,
			MaxInterviewsPerMonth:  Unlimited,
			HasUnlimitedInterviews: true,
			HasAnalytics:           true,
			HasCustomBranding:      true,
			HasAPIAccess:           true,
		},
	},
	{
		ID:            IDEnterprise,
		Name:          "Enterprise",
		Description:   "Everything unlimited with priority support",
		PriceInCents:  19900,
		Currency:      "usd",
		BillingPeriod: "month",
		Features:      []string{"Unlimited everything", "Analytics and reports", "API access", "Priority support"},
		Limits: Limits{
			MaxCandidates:          Unlimited,
			MaxJobs:                Unlimited,
			MaxTeamMembers:         Unlimited,
			MaxInterviewsPerMonth:  Unlimited,
			HasUnlimitedInterviews: true,
			HasAnalytics:           true,
			HasCustomBranding:      true,
			HasAPIAccess:           true,
			HasPrioritySupport:     true,
		},
	},
}

var byID = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	free := 0
	for i, p := range catalog {
		if _, dup := idx[p.ID]; dup {
			panic(fmt.Sprintf("plan: duplicate id %q", p.ID))
		}
		if p.ID == IDFreeTrial {
			free++
		}
		idx[p.ID] = i
	}
	if free != 1 {
		panic("plan: catalog must contain exactly one free-trial plan")
	}
	return idx
}()

// List returns all plans ordered by price. The slice is a copy.
func List() []Plan {
	out := make([]Plan, len(catalog))
	for i, p := range catalog {
		out[i] = clonePlan(p)
	}
	return out
}

// Find returns the plan with the given id or ErrNotFound.
func Find(id string) (Plan, error) {
	i, ok := byID[id]
	if !ok {
		return Plan{}, ErrNotFound
	}
	return clonePlan(catalog[i]), nil
}

// FindOrDefault returns the plan with the given id, or the free trial when
// the id is unknown.
func FindOrDefault(id string) Plan {
	p, err := Find(id)
	if err != nil {
		return FreeTrial()
	}
	return p
}

// FreeTrial returns the most restrictive plan
func FreeTrial() Plan {
	return clonePlan(catalog[byID[IDFreeTrial]])
}

func clonePlan(p Plan) Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}
