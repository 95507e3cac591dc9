package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/subscription"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

type recruitingFixture struct {
	db         *sql.DB
	subs       subscription.Repository
	clock      *testutil.Clock
	jobs       job.Service
	candidates candidate.Service
	interviews *InterviewService
}

// newRecruitingFixture wires the services against sqlite so quota checks
// count real rows.
func newRecruitingFixture(t *testing.T) *recruitingFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })

	log := testutil.NewTestLogger()
	clock := testutil.NewClock(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC))
	subs := postgres.NewSubscriptionRepository(db)
	evaluator := NewEntitlementService(subs, postgres.NewUsageRepository(db), log, "https://app.example.com").
		WithClock(clock.Func())

	return &recruitingFixture{
		db:         db,
		subs:       subs,
		clock:      clock,
		jobs:       NewJobService(postgres.NewJobRepository(db), evaluator, log),
		candidates: NewCandidateService(postgres.NewCandidateRepository(db), evaluator, log),
		interviews: NewInterviewService(postgres.NewInterviewRepository(db), evaluator, log).WithClock(clock.Func()),
	}
}

func (f *recruitingFixture) newInterview() *interview.Interview {
	return &interview.Interview{UserID: testTenant, Title: "Screening call", ScheduledAt: f.clock.Now.Add(48 * time.Hour)}
}

func TestInterviewService_MonthlyQuota(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.interviews.Create(ctx, f.newInterview()), "interview %d", i+1)
	}

	err := f.interviews.Create(ctx, f.newInterview())
	assert.True(t, errors.IsCode(err, errors.ErrCodeQuotaExceeded))

	listed, err := f.interviews.ListThisMonth(ctx, testTenant)
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	// the quota resets with the UTC calendar month
	f.clock.Advance(time.Hour)
	require.NoError(t, f.interviews.Create(ctx, f.newInterview()))

	listed, err = f.interviews.ListThisMonth(ctx, testTenant)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestInterviewService_UpgradeLiftsQuota(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.interviews.Create(ctx, f.newInterview()))
	}
	require.Error(t, f.interviews.Create(ctx, f.newInterview()))

	subID := "sub_pro"
	require.NoError(t, f.subs.Upsert(ctx, &subscription.Subscription{
		UserID: testTenant, PlanID: plan.IDProfessional, Status: subscription.StatusActive, StripeSubscriptionID: &subID,
	}))

	assert.NoError(t, f.interviews.Create(ctx, f.newInterview()))
}

func TestInterviewService_Validation(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()

	err := f.interviews.Create(ctx, &interview.Interview{UserID: testTenant, ScheduledAt: f.clock.Now})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	err = f.interviews.Create(ctx, &interview.Interview{UserID: testTenant, Title: "Onsite"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestJobService_Quota(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()

	limit := plan.FreeTrial().Limits.MaxJobs
	for i := 0; i < limit; i++ {
		require.NoError(t, f.jobs.Create(ctx, &job.Job{UserID: testTenant, Title: "Backend Engineer"}))
	}

	err := f.jobs.Create(ctx, &job.Job{UserID: testTenant, Title: "Designer"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeQuotaExceeded))

	jobs, total, err := f.jobs.List(ctx, testTenant, job.Filter{Status: job.StatusOpen}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(limit), total)
	assert.Len(t, jobs, limit)

	err = f.jobs.Create(ctx, &job.Job{UserID: testTenant + 1, Title: "Designer", Status: job.Status("archived")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}

func TestCandidateService_Create(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()

	c := &candidate.Candidate{UserID: testTenant, FullName: " Ada Lovelace ", Email: "ADA@example.com"}
	require.NoError(t, f.candidates.Create(ctx, c))
	assert.Equal(t, "Ada Lovelace", c.FullName)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, candidate.StageApplied, c.Stage)

	err := f.candidates.Create(ctx, &candidate.Candidate{UserID: testTenant})
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	list, total, err := f.candidates.List(ctx, testTenant, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestRecruiting_DataErrorFailsClosed(t *testing.T) {
	f := newRecruitingFixture(t)
	ctx := context.Background()
	f.db.Close()

	err := f.candidates.Create(ctx, &candidate.Candidate{UserID: testTenant, FullName: "Grace Hopper"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeServiceUnavailable))
}
