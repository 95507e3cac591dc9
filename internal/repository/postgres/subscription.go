package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// SubscriptionRepository implements subscription.Repository
type SubscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *sql.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, user_id, plan_id, status, stripe_customer_id, stripe_subscription_id,
	current_period_start, current_period_end, created_at, updated_at`

// GetByUserID returns the tenant's subscription
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*subscription.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1`, userID)
}

// GetByStripeSubscriptionID returns the row linked to a provider subscription
func (r *SubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*subscription.Subscription, error) {
	return r.getOne(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE stripe_subscription_id = $1`, stripeSubscriptionID)
}

func (r *SubscriptionRepository) getOne(ctx context.Context, query string, arg interface{}) (*subscription.Subscription, error) {
	sub, err := scanSubscription(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Subscription")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get subscription", err)
	}
	return sub, nil
}

// Create inserts a new subscription row
func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	query := `
		INSERT INTO subscriptions (user_id, plan_id, status, stripe_customer_id, stripe_subscription_id,
			current_period_start, current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		sub.UserID, sub.PlanID, string(sub.Status),
		nullString(sub.StripeCustomerID), nullString(sub.StripeSubscriptionID),
		nullUnix(sub.CurrentPeriodStart), nullUnix(sub.CurrentPeriodEnd),
		now.Unix(), now.Unix(),
	).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.Conflict("Subscription already exists for this account")
		}
		return errors.DatabaseError("Failed to create subscription", err)
	}
	return nil
}

// Upsert writes the row keyed on user_id. Redelivered checkout events
// overwrite the previous values instead of adding rows.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *subscription.Subscription) error {
	now := time.Now().UTC()
	sub.UpdatedAt = now
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}

	query := `
		INSERT INTO subscriptions (user_id, plan_id, status, stripe_customer_id, stripe_subscription_id,
			current_period_start, current_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			plan_id = excluded.plan_id,
			status = excluded.status,
			stripe_customer_id = excluded.stripe_customer_id,
			stripe_subscription_id = excluded.stripe_subscription_id,
			current_period_start = excluded.current_period_start,
			current_period_end = excluded.current_period_end,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var createdAt int64
	err := r.db.QueryRowContext(ctx, query,
		sub.UserID, sub.PlanID, string(sub.Status),
		nullString(sub.StripeCustomerID), nullString(sub.StripeSubscriptionID),
		nullUnix(sub.CurrentPeriodStart), nullUnix(sub.CurrentPeriodEnd),
		sub.CreatedAt.Unix(), now.Unix(),
	).Scan(&sub.ID, &createdAt)
	if err != nil {
		return errors.DatabaseError("Failed to upsert subscription", err)
	}
	sub.CreatedAt = time.Unix(createdAt, 0).UTC()
	return nil
}

// UpdateFromProvider applies a provider update to the linked row.
// A canceled row is not matched and reports NotFound.
func (r *SubscriptionRepository) UpdateFromProvider(ctx context.Context, stripeSubscriptionID string, status subscription.Status, planID string, periodStart, periodEnd *time.Time) error {
	query := `
		UPDATE subscriptions
		SET status = $1,
		    plan_id = COALESCE(NULLIF($2, ''), plan_id),
		    current_period_start = COALESCE($3, current_period_start),
		    current_period_end = COALESCE($4, current_period_end),
		    updated_at = $5
		WHERE stripe_subscription_id = $6 AND status <> $7
	`

	result, err := r.db.ExecContext(ctx, query,
		string(status), planID, nullUnix(periodStart), nullUnix(periodEnd),
		time.Now().UTC().Unix(), stripeSubscriptionID, string(subscription.StatusCanceled),
	)
	if err != nil {
		return errors.DatabaseError("Failed to update subscription", err)
	}
	return requireAffected(result, "Subscription")
}

// UpdateStatus sets the status of the linked row
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, stripeSubscriptionID string, status subscription.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = $2 WHERE stripe_subscription_id = $3`,
		string(status), time.Now().UTC().Unix(), stripeSubscriptionID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update subscription status", err)
	}
	return requireAffected(result, "Subscription")
}

func scanSubscription(s rowScanner) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	var status string
	var customerID, subscriptionID sql.NullString
	var periodStart, periodEnd sql.NullInt64
	var createdAt, updatedAt int64

	err := s.Scan(&sub.ID, &sub.UserID, &sub.PlanID, &status, &customerID, &subscriptionID,
		&periodStart, &periodEnd, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	sub.Status = subscription.Status(status)
	sub.StripeCustomerID = stringPtr(customerID)
	sub.StripeSubscriptionID = stringPtr(subscriptionID)
	sub.CurrentPeriodStart = timePtr(periodStart)
	sub.CurrentPeriodEnd = timePtr(periodEnd)
	sub.CreatedAt = time.Unix(createdAt, 0).UTC()
	sub.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &sub, nil
}

func requireAffected(result sql.Result, resource string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}

// isUniqueViolation matches both the postgres and sqlite drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
