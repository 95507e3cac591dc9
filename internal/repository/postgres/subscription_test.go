package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

func strPtr(s string) *string { return &s }

func timeAt(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func countSubscriptions(t *testing.T, repo *SubscriptionRepository, userID int64) int {
	t.Helper()
	var n int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&n))
	return n
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	sub := &subscription.Subscription{
		UserID:             7,
		PlanID:             plan.IDFreeTrial,
		Status:             subscription.StatusTrialing,
		CurrentPeriodStart: timeAt("2024-01-01T00:00:00Z"),
		CurrentPeriodEnd:   timeAt("2024-01-15T00:00:00Z"),
	}
	require.NoError(t, repo.Create(ctx, sub))
	assert.NotZero(t, sub.ID)

	got, err := repo.GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, plan.IDFreeTrial, got.PlanID)
	assert.Equal(t, subscription.StatusTrialing, got.Status)
	assert.Nil(t, got.StripeCustomerID)
	assert.Nil(t, got.StripeSubscriptionID)
	require.NotNil(t, got.CurrentPeriodEnd)
	assert.True(t, sub.CurrentPeriodEnd.Equal(*got.CurrentPeriodEnd))

	err = repo.Create(ctx, &subscription.Subscription{UserID: 7, PlanID: plan.IDFreeTrial, Status: subscription.StatusTrialing})
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict), "second create must conflict, got %v", err)

	_, err = repo.GetByUserID(ctx, 8)
	assert.True(t, errors.IsNotFound(err))
}

func TestSubscriptionRepository_UpsertIsKeyedOnUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSubscriptionRepository(db).(*SubscriptionRepository)
	ctx := context.Background()

	first := &subscription.Subscription{
		UserID:               42,
		PlanID:               plan.IDStarter,
		Status:               subscription.StatusActive,
		StripeCustomerID:     strPtr("cus_1"),
		StripeSubscriptionID: strPtr("sub_1"),
		CurrentPeriodStart:   timeAt("2024-01-01T00:00:00Z"),
		CurrentPeriodEnd:     timeAt("2024-02-01T00:00:00Z"),
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &subscription.Subscription{
		UserID:               42,
		PlanID:               plan.IDProfessional,
		Status:               subscription.StatusActive,
		StripeCustomerID:     strPtr("cus_1"),
		StripeSubscriptionID: strPtr("sub_2"),
		CurrentPeriodStart:   timeAt("2024-02-01T00:00:00Z"),
		CurrentPeriodEnd:     timeAt("2024-03-01T00:00:00Z"),
	}
	require.NoError(t, repo.Upsert(ctx, second))

	assert.Equal(t, 1, countSubscriptions(t, repo, 42))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, plan.IDProfessional, got.PlanID)
	assert.Equal(t, "sub_2", *got.StripeSubscriptionID)
	assert.True(t, second.CurrentPeriodEnd.Equal(*got.CurrentPeriodEnd))
}

func TestSubscriptionRepository_UpdateFromProvider(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &subscription.Subscription{
		UserID:               1,
		PlanID:               plan.IDStarter,
		Status:               subscription.StatusActive,
		StripeSubscriptionID: strPtr("sub_a"),
		CurrentPeriodStart:   timeAt("2024-01-01T00:00:00Z"),
		CurrentPeriodEnd:     timeAt("2024-02-01T00:00:00Z"),
	}))

	t.Run("status and period", func(t *testing.T) {
		err := repo.UpdateFromProvider(ctx, "sub_a", subscription.StatusPastDue, "",
			timeAt("2024-02-01T00:00:00Z"), timeAt("2024-03-01T00:00:00Z"))
		require.NoError(t, err)

		got, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusPastDue, got.Status)
		assert.Equal(t, plan.IDStarter, got.PlanID, "empty plan id keeps the plan")
		assert.True(t, timeAt("2024-03-01T00:00:00Z").Equal(*got.CurrentPeriodEnd))
	})

	t.Run("plan change keeps period when omitted", func(t *testing.T) {
		err := repo.UpdateFromProvider(ctx, "sub_a", subscription.StatusActive, plan.IDEnterprise, nil, nil)
		require.NoError(t, err)

		got, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, plan.IDEnterprise, got.PlanID)
		assert.True(t, timeAt("2024-03-01T00:00:00Z").Equal(*got.CurrentPeriodEnd))
	})

	t.Run("unknown provider subscription", func(t *testing.T) {
		err := repo.UpdateFromProvider(ctx, "sub_missing", subscription.StatusActive, "", nil, nil)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("cancel", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, "sub_a", subscription.StatusCanceled))
		got, err := repo.GetByStripeSubscriptionID(ctx, "sub_a")
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusCanceled, got.Status)

		assert.True(t, errors.IsNotFound(repo.UpdateStatus(ctx, "sub_missing", subscription.StatusCanceled)))
	})

	t.Run("canceled row is terminal", func(t *testing.T) {
		err := repo.UpdateFromProvider(ctx, "sub_a", subscription.StatusActive, plan.IDProfessional, nil, nil)
		assert.True(t, errors.IsNotFound(err))

		got, err := repo.GetByStripeSubscriptionID(ctx, "sub_a")
		require.NoError(t, err)
		assert.Equal(t, subscription.StatusCanceled, got.Status)
		assert.Equal(t, plan.IDEnterprise, got.PlanID)
	})
}

func TestWebhookEventRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewWebhookEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "stripe", "evt_1", subscription.KindCheckoutCompleted))
	require.NoError(t, repo.Record(ctx, "stripe", "evt_1", subscription.KindCheckoutCompleted))
	require.NoError(t, repo.Record(ctx, "stripe", "evt_2", subscription.KindSubscriptionDeleted))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM billing_webhook_events`).Scan(&n))
	assert.Equal(t, 2, n)

	require.NoError(t, repo.MarkProcessed(ctx, "stripe", "evt_1", ""))
	require.NoError(t, repo.MarkProcessed(ctx, "stripe", "evt_2", "local subscription not found"))

	failed, err := repo.ListFailed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "evt_2", failed[0].ProviderEventID)
	assert.NotNil(t, failed[0].ProcessedAt)
}
