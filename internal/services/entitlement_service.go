package services

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

// EntitlementService implements entitlement.Evaluator. It reads the
// subscription and usage on every call.
type EntitlementService struct {
	subs   subscription.Repository
	usage  entitlement.UsageCounter
	logger *logger.Logger
	appURL string
	now    func() time.Time
}

// NewEntitlementService creates a new entitlement evaluator
func NewEntitlementService(subs subscription.Repository, usage entitlement.UsageCounter, log *logger.Logger, appURL string) *EntitlementService {
	return &EntitlementService{
		subs:   subs,
		usage:  usage,
		logger: log,
		appURL: appURL,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for the monthly window
func (s *EntitlementService) WithClock(now func() time.Time) *EntitlementService {
	s.now = now
	return s
}

// Evaluate computes the entitlement of tenantID for resource
func (s *EntitlementService) Evaluate(ctx context.Context, tenantID int64, resource plan.Resource) *entitlement.Result {
	res := s.evaluate(ctx, tenantID, resource)
	metrics.RecordEntitlementCheck(string(resource), string(res.Reason))
	if res.Unavailable() {
		s.logger.WithTenant(tenantID).WithError(res.Err).WithFields(map[string]interface{}{
			"resource": resource,
		}).Error("Entitlement check failed")
	}
	return res
}

func (s *EntitlementService) evaluate(ctx context.Context, tenantID int64, resource plan.Resource) *entitlement.Result {
	p, err := s.effectivePlan(ctx, tenantID)
	if err != nil {
		return entitlement.Failed(resource, err)
	}

	limit, unlimited, ok := p.Limit(resource)
	if !ok {
		return entitlement.Failed(resource, errors.BadRequest("unknown resource "+string(resource)))
	}

	if resource.IsCapability() {
		if unlimited {
			return entitlement.UnlimitedResult(resource, p.ID)
		}
		return entitlement.NotInPlan(resource, p.ID)
	}
	if unlimited {
		return entitlement.UnlimitedResult(resource, p.ID)
	}

	used, err := s.count(ctx, tenantID, resource)
	if err != nil {
		return entitlement.Failed(resource, err)
	}
	return entitlement.Counted(resource, p.ID, limit, used)
}

// effectivePlan resolves the plan granted by the tenant's subscription.
// Missing rows and non-entitling statuses resolve to the free trial.
func (s *EntitlementService) effectivePlan(ctx context.Context, tenantID int64) (plan.Plan, error) {
	sub, err := s.subs.GetByUserID(ctx, tenantID)
	if err != nil {
		if errors.IsNotFound(err) {
			return plan.FreeTrial(), nil
		}
		return plan.Plan{}, err
	}
	if !sub.Status.IsEntitling() {
		return plan.FreeTrial(), nil
	}

	p, err := plan.Find(sub.PlanID)
	if err != nil {
		s.logger.WithTenant(tenantID).WithFields(map[string]interface{}{
			"plan_id": sub.PlanID,
		}).Warn("Subscription references unknown plan, using free trial")
		return plan.FreeTrial(), nil
	}
	return p, nil
}

func (s *EntitlementService) count(ctx context.Context, tenantID int64, resource plan.Resource) (int, error) {
	switch resource {
	case plan.ResourceInterviews:
		from, to := entitlement.MonthWindow(s.now())
		return s.usage.CountInterviewsBetween(ctx, tenantID, from, to)
	case plan.ResourceTeamMembers:
		return s.usage.CountActiveTeamMembers(ctx, tenantID)
	case plan.ResourceCandidates:
		return s.usage.CountCandidates(ctx, tenantID)
	case plan.ResourceJobs:
		return s.usage.CountJobs(ctx, tenantID)
	}
	return 0, errors.BadRequest("resource is not metered: " + string(resource))
}

// Require gates a quota-consuming write
func (s *EntitlementService) Require(ctx context.Context, tenantID int64, resource plan.Resource) error {
	res := s.Evaluate(ctx, tenantID, resource)
	switch {
	case res.Allowed:
		return nil
	case res.Unavailable():
		return errors.Wrap(res.Err, errors.ErrCodeServiceUnavailable,
			"Usage could not be verified, please retry", http.StatusServiceUnavailable)
	default:
		return errors.QuotaExceeded(string(resource)).WithDetails(map[string]interface{}{
			"resource":   resource,
			"planId":     res.PlanID,
			"limit":      res.Limit,
			"used":       res.Used,
			"upgradeUrl": s.UpgradeURL(resource),
		})
	}
}

// Summary evaluates every metered resource and the analytics capability.
// The returned error is the first data error, if any.
func (s *EntitlementService) Summary(ctx context.Context, tenantID int64) ([]*entitlement.Result, error) {
	resources := append(append([]plan.Resource(nil), plan.MeteredResources...), plan.ResourceAnalytics)

	results := make([]*entitlement.Result, 0, len(resources))
	var firstErr error
	for _, r := range resources {
		res := s.Evaluate(ctx, tenantID, r)
		if res.Unavailable() && firstErr == nil {
			firstErr = res.Err
		}
		results = append(results, res)
	}
	return results, firstErr
}

// UpgradeURL is the pricing page highlighting the blocked feature
func (s *EntitlementService) UpgradeURL(resource plan.Resource) string {
	return s.appURL + "/pricing?feature=" + string(resource)
}
