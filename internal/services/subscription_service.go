package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/hireloop/internal/config"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/logger"
	"github.com/pratik-mahalle/hireloop/internal/pkg/metrics"
)

const providerStripe = "stripe"

// SubscriptionService implements subscription.Service
type SubscriptionService struct {
	repo    subscription.Repository
	events  subscription.WebhookEventRepository
	gateway subscription.Gateway
	logger  *logger.Logger
	billing config.BillingConfig
	appURL  string
	now     func() time.Time
}

// NewSubscriptionService creates a new subscription service. gateway may be
// nil when no billing provider is configured; checkout and portal calls then
// fail with SERVICE_UNAVAILABLE.
func NewSubscriptionService(
	repo subscription.Repository,
	events subscription.WebhookEventRepository,
	gateway subscription.Gateway,
	log *logger.Logger,
	billing config.BillingConfig,
	appURL string,
) *SubscriptionService {
	if billing.ProviderTimeout <= 0 {
		billing.ProviderTimeout = 10 * time.Second
	}
	if billing.TrialDays <= 0 {
		billing.TrialDays = 14
	}
	if billing.Currency == "" {
		billing.Currency = "usd"
	}
	return &SubscriptionService{
		repo:    repo,
		events:  events,
		gateway: gateway,
		logger:  log,
		billing: billing,
		appURL:  appURL,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for trial periods
func (s *SubscriptionService) WithClock(now func() time.Time) *SubscriptionService {
	s.now = now
	return s
}

// GetForTenant returns the tenant's subscription, or nil when none exists
func (s *SubscriptionService) GetForTenant(ctx context.Context, tenantID int64) (*subscription.Subscription, error) {
	sub, err := s.repo.GetByUserID(ctx, tenantID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return sub, nil
}

// StartTrial creates the tenant's free-trial subscription
func (s *SubscriptionService) StartTrial(ctx context.Context, tenantID int64) (*subscription.Subscription, error) {
	start := s.now().UTC()
	end := start.AddDate(0, 0, s.billing.TrialDays)

	sub := &subscription.Subscription{
		UserID:             tenantID,
		PlanID:             plan.IDFreeTrial,
		Status:             subscription.StatusTrialing,
		CurrentPeriodStart: &start,
		CurrentPeriodEnd:   &end,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionTransition(string(sub.Status))
	s.logger.WithTenant(tenantID).WithFields(map[string]interface{}{
		"period_end": end,
	}).Info("Free trial started")

	return sub, nil
}

// CreateCheckout starts a hosted checkout for a paid catalog plan
func (s *SubscriptionService) CreateCheckout(ctx context.Context, tenantID int64, email, planID string) (*subscription.CheckoutSession, error) {
	p, err := plan.Find(planID)
	if err != nil {
		return nil, errors.PlanNotFound(planID)
	}
	if p.IsFree() {
		return nil, errors.BadRequest("The free trial does not require checkout")
	}
	if s.gateway == nil {
		return nil, errors.ServiceUnavailable("Billing is not configured")
	}

	req := subscription.CheckoutRequest{
		TenantID:   tenantID,
		Email:      email,
		PlanID:     p.ID,
		PlanName:   p.Name,
		PlanDesc:   p.Description,
		UnitAmount: p.PriceInCents,
		Currency:   p.Currency,
		Interval:   p.BillingPeriod,
		SuccessURL: s.appURL + "/billing/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.appURL + "/pricing?canceled=true",
	}
	if req.Currency == "" {
		req.Currency = s.billing.Currency
	}
	if existing, err := s.repo.GetByUserID(ctx, tenantID); err == nil && existing.StripeCustomerID != nil {
		req.CustomerID = *existing.StripeCustomerID
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.billing.ProviderTimeout)
	defer cancel()

	start := time.Now()
	session, err := s.gateway.CreateCheckoutSession(callCtx, req)
	metrics.RecordProviderCall("create_checkout_session", time.Since(start))
	if err != nil {
		metrics.RecordCheckoutSession(p.ID, "failed")
		s.logger.WithTenant(tenantID).WithError(err).Error("Failed to create checkout session")
		return nil, errors.ProviderAPIError(providerStripe, err)
	}

	metrics.RecordCheckoutSession(p.ID, "created")
	s.logger.WithTenant(tenantID).WithFields(map[string]interface{}{
		"plan_id":    p.ID,
		"session_id": session.ID,
	}).Info("Checkout session created")

	return session, nil
}

// CreatePortal returns the billing portal URL for a tenant with a provider customer
func (s *SubscriptionService) CreatePortal(ctx context.Context, tenantID int64) (string, error) {
	if s.gateway == nil {
		return "", errors.ServiceUnavailable("Billing is not configured")
	}

	sub, err := s.repo.GetByUserID(ctx, tenantID)
	if err != nil && !errors.IsNotFound(err) {
		return "", err
	}
	if sub == nil || sub.StripeCustomerID == nil || *sub.StripeCustomerID == "" {
		return "", errors.BadRequest("No billing account exists for this tenant")
	}

	callCtx, cancel := context.WithTimeout(ctx, s.billing.ProviderTimeout)
	defer cancel()

	url, err := s.gateway.CreatePortalSession(callCtx, *sub.StripeCustomerID, s.appURL+"/billing")
	if err != nil {
		return "", errors.ProviderAPIError(providerStripe, err)
	}
	return url, nil
}

// HandleEvent records the delivery and applies it. A non-nil error
// explains why the event was acknowledged without a state change.
func (s *SubscriptionService) HandleEvent(ctx context.Context, ev subscription.Event) error {
	log := s.logger.WithFields(map[string]interface{}{
		"event_id":   ev.ProviderEventID(),
		"event_type": ev.Kind(),
	})

	if s.events != nil {
		if err := s.events.Record(ctx, providerStripe, ev.ProviderEventID(), ev.Kind()); err != nil {
			log.WithError(err).Warn("Failed to record webhook event")
		}
	}

	var err error
	switch e := ev.(type) {
	case subscription.CheckoutCompleted:
		err = s.handleCheckoutCompleted(ctx, e)
	case subscription.SubscriptionUpdated:
		err = s.handleSubscriptionUpdated(ctx, e)
	case subscription.SubscriptionDeleted:
		err = s.handleSubscriptionDeleted(ctx, e)
	default:
		err = errors.BadRequest("unsupported billing event")
	}

	result := "applied"
	processingErr := ""
	if err != nil {
		result = "ignored"
		processingErr = err.Error()
		log.WithError(err).Warn("Billing event acknowledged without changes; reconcile manually")
	} else {
		log.Info("Billing event applied")
	}
	metrics.RecordWebhookEvent(ev.Kind(), result)

	if s.events != nil {
		if merr := s.events.MarkProcessed(ctx, providerStripe, ev.ProviderEventID(), processingErr); merr != nil {
			log.WithError(merr).Warn("Failed to mark webhook event processed")
		}
	}

	return err
}

func (s *SubscriptionService) handleCheckoutCompleted(ctx context.Context, e subscription.CheckoutCompleted) error {
	if e.TenantID <= 0 || e.SubscriptionID == "" {
		return errors.ProviderDataIncomplete("checkout session is missing the user_id metadata or the subscription reference")
	}
	if s.gateway == nil {
		return errors.ServiceUnavailable("Billing is not configured")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.billing.ProviderTimeout)
	defer cancel()

	start := time.Now()
	ps, err := s.gateway.GetSubscription(fetchCtx, e.SubscriptionID)
	metrics.RecordProviderCall("get_subscription", time.Since(start))
	if err != nil {
		return errors.ProviderAPIError(providerStripe, err)
	}

	customerID := ps.CustomerID
	if customerID == "" {
		customerID = e.CustomerID
	}
	subscriptionID := ps.ID
	if subscriptionID == "" {
		subscriptionID = e.SubscriptionID
	}

	sub := &subscription.Subscription{
		UserID:               e.TenantID,
		PlanID:               s.resolvePlanID(e.PlanID, ps.PlanID, ps.Metadata["plan_id"]),
		Status:               subscription.NormalizeStatus(ps.Status),
		StripeCustomerID:     optionalString(customerID),
		StripeSubscriptionID: optionalString(subscriptionID),
		CurrentPeriodStart:   optionalTime(ps.PeriodStart),
		CurrentPeriodEnd:     optionalTime(ps.PeriodEnd),
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return err
	}

	metrics.RecordSubscriptionTransition(string(sub.Status))
	s.logger.WithTenant(e.TenantID).WithFields(map[string]interface{}{
		"plan_id":         sub.PlanID,
		"status":          sub.Status,
		"subscription_id": subscriptionID,
	}).Info("Subscription upserted from checkout")

	return nil
}

func (s *SubscriptionService) handleSubscriptionUpdated(ctx context.Context, e subscription.SubscriptionUpdated) error {
	if e.SubscriptionID == "" {
		return errors.ProviderDataIncomplete("subscription event is missing the subscription id")
	}
	current, err := s.repo.GetByStripeSubscriptionID(ctx, e.SubscriptionID)
	if err != nil {
		return err
	}
	// Only a new checkout revives a canceled row.
	if current.Status == subscription.StatusCanceled {
		s.logger.WithTenant(current.UserID).WithFields(map[string]interface{}{
			"event_id":        e.EventID,
			"subscription_id": e.SubscriptionID,
			"provider_status": e.Status,
		}).Info("Ignoring update for a canceled subscription")
		return nil
	}

	planID := ""
	if _, err := plan.Find(e.PlanID); err == nil {
		planID = e.PlanID
	}
	status := subscription.NormalizeStatus(e.Status)

	err = s.repo.UpdateFromProvider(ctx, e.SubscriptionID, status, planID,
		optionalTime(e.PeriodStart), optionalTime(e.PeriodEnd))
	if err != nil {
		return err
	}

	metrics.RecordSubscriptionTransition(string(status))
	return nil
}

func (s *SubscriptionService) handleSubscriptionDeleted(ctx context.Context, e subscription.SubscriptionDeleted) error {
	if e.SubscriptionID == "" {
		return errors.ProviderDataIncomplete("subscription event is missing the subscription id")
	}
	if _, err := s.repo.GetByStripeSubscriptionID(ctx, e.SubscriptionID); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, e.SubscriptionID, subscription.StatusCanceled); err != nil {
		return err
	}

	metrics.RecordSubscriptionTransition(string(subscription.StatusCanceled))
	return nil
}

// resolvePlanID returns the first candidate present in the catalog, or the
// free trial when none is.
func (s *SubscriptionService) resolvePlanID(candidates ...string) string {
	for _, id := range candidates {
		if id == "" {
			continue
		}
		if _, err := plan.Find(id); err == nil {
			return id
		}
		s.logger.WithFields(map[string]interface{}{"plan_id": id}).Warn("Checkout references unknown plan")
	}
	return plan.IDFreeTrial
}

// ListFailedEvents returns deliveries that were acknowledged with a processing error
func (s *SubscriptionService) ListFailedEvents(ctx context.Context, limit int) ([]*subscription.WebhookEvent, error) {
	if s.events == nil {
		return nil, nil
	}
	return s.events.ListFailed(ctx, limit)
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}
