// Package entitlement computes what a tenant may still create under its plan.
package entitlement

import (
	"context"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
)

// Reason explains an entitlement decision
type Reason string

const (
	ReasonUnlimited    Reason = "unlimited"
	ReasonWithinLimit  Reason = "within_limit"
	ReasonLimitReached Reason = "limit_reached"
	ReasonNotInPlan    Reason = "not_in_plan"
	// ReasonUnavailable means usage could not be read. It never implies an
	// upgrade prompt.
	ReasonUnavailable Reason = "unavailable"
)

// Result is the entitlement decision for one tenant and resource.
// Limit and Remaining are nil when the resource is unlimited or the
// decision could not be computed.
type Result struct {
	Resource     plan.Resource `json:"resource"`
	PlanID       string        `json:"planId"`
	Allowed      bool          `json:"allowed"`
	Limit        *int          `json:"limit"`
	Used         int           `json:"used"`
	Remaining    *int          `json:"remaining"`
	Unlimited    bool          `json:"unlimited"`
	NeedsUpgrade bool          `json:"needsUpgrade"`
	Reason       Reason        `json:"reason"`
	Err          error         `json:"-"`
}

// Unavailable reports whether the decision failed on a data error
func (r *Result) Unavailable() bool {
	return r.Reason == ReasonUnavailable
}

// Counted builds a result for a finite cap.
func Counted(resource plan.Resource, planID string, limit, used int) *Result {
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	allowed := used < limit
	reason := ReasonWithinLimit
	if !allowed {
		reason = ReasonLimitReached
	}
	return &Result{
		Resource:     resource,
		PlanID:       planID,
		Allowed:      allowed,
		Limit:        intPtr(limit),
		Used:         used,
		Remaining:    intPtr(remaining),
		NeedsUpgrade: !allowed,
		Reason:       reason,
	}
}

// UnlimitedResult builds a result for a resource the plan does not cap
func UnlimitedResult(resource plan.Resource, planID string) *Result {
	return &Result{
		Resource:  resource,
		PlanID:    planID,
		Allowed:   true,
		Unlimited: true,
		Reason:    ReasonUnlimited,
	}
}

// NotInPlan builds a result for a capability the plan lacks
func NotInPlan(resource plan.Resource, planID string) *Result {
	return &Result{
		Resource:     resource,
		PlanID:       planID,
		Allowed:      false,
		Limit:        intPtr(0),
		Remaining:    intPtr(0),
		NeedsUpgrade: true,
		Reason:       ReasonNotInPlan,
	}
}

// Failed builds the conservative result used on data errors.
func Failed(resource plan.Resource, err error) *Result {
	return &Result{
		Resource: resource,
		Allowed:  false,
		Reason:   ReasonUnavailable,
		Err:      err,
	}
}

func intPtr(v int) *int { return &v }

// UsageCounter counts tenant-owned rows. Implementations must read the
// store on every call.
type UsageCounter interface {
	// CountInterviewsBetween counts interviews created in [from, to)
	CountInterviewsBetween(ctx context.Context, tenantID int64, from, to time.Time) (int, error)

	// CountActiveTeamMembers counts team members with status active
	CountActiveTeamMembers(ctx context.Context, tenantID int64) (int, error)

	// CountCandidates counts all candidates owned by the tenant
	CountCandidates(ctx context.Context, tenantID int64) (int, error)

	// CountJobs counts all jobs owned by the tenant
	CountJobs(ctx context.Context, tenantID int64) (int, error)
}

// Evaluator decides entitlements
type Evaluator interface {
	// Evaluate never returns nil. Data errors yield a Failed result.
	Evaluate(ctx context.Context, tenantID int64, resource plan.Resource) *Result

	// Require returns nil when a write of resource may proceed, a
	// QUOTA_EXCEEDED error when the plan is exhausted, or a retryable
	// SERVICE_UNAVAILABLE error when usage could not be read.
	Require(ctx context.Context, tenantID int64, resource plan.Resource) error
}
