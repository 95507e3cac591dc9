package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/repository/postgres"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

const invitationTTL = 7 * 24 * time.Hour

type teamFixture struct {
	svc   *TeamService
	repo  team.Repository
	usage *testutil.MockUsageCounter
	clock *testutil.Clock
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(db) })

	usage := testutil.NewMockUsageCounter()
	evaluator := NewEntitlementService(testutil.NewMockSubscriptionRepository(), usage, testutil.NewTestLogger(), "https://app.example.com")
	repo := postgres.NewTeamRepository(db)
	clock := testutil.NewClock(time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC))

	return &teamFixture{
		svc:   NewTeamService(repo, evaluator, testutil.NewTestLogger(), invitationTTL).WithClock(clock.Func()),
		repo:  repo,
		usage: usage,
		clock: clock,
	}
}

func TestTeamService_Invite(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()

	m, err := f.svc.Invite(ctx, testTenant, testTenant, " A@X.com ", team.RoleRecruiter)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", m.Email)
	assert.Equal(t, team.StatusPending, m.Status)
	assert.NotEmpty(t, m.ID)

	_, err = f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleViewer)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict), "duplicate pending invite")

	_, err = f.svc.Invite(ctx, testTenant, testTenant, "c@x.com", team.Role("owner"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))

	f.usage.TeamMembers[testTenant] = 1
	_, err = f.svc.Invite(ctx, testTenant, testTenant, "d@x.com", team.RoleViewer)
	assert.True(t, errors.IsCode(err, errors.ErrCodeQuotaExceeded))
}

func TestTeamService_AcceptGuard(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()

	m, err := f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleInterviewer)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, m.ID, team.Principal{UserID: 7, Email: "b@x.com", EmailVerified: true})
	assert.True(t, errors.IsCode(err, errors.ErrCodeForbidden))

	stored, err := f.repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, team.StatusPending, stored.Status)
	assert.Nil(t, stored.JoinedAt)
}

func TestTeamService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("unverified email", func(t *testing.T) {
		f := newTeamFixture(t)
		m, _ := f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleViewer)

		_, err := f.svc.Accept(ctx, m.ID, team.Principal{UserID: 7, Email: "a@x.com"})
		assert.True(t, errors.IsCode(err, errors.ErrCodeForbidden))

		stored, _ := f.repo.GetByID(ctx, m.ID)
		assert.Equal(t, team.StatusPending, stored.Status)
	})

	t.Run("matching verified email in another case", func(t *testing.T) {
		f := newTeamFixture(t)
		m, _ := f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleViewer)

		got, err := f.svc.Accept(ctx, m.ID, team.Principal{UserID: 7, Email: "A@X.COM", EmailVerified: true})
		require.NoError(t, err)
		assert.Equal(t, team.StatusActive, got.Status)

		stored, _ := f.repo.GetByID(ctx, m.ID)
		assert.Equal(t, team.StatusActive, stored.Status)
		require.NotNil(t, stored.MemberUserID)
		assert.Equal(t, int64(7), *stored.MemberUserID)

		_, err = f.svc.Accept(ctx, m.ID, team.Principal{UserID: 7, Email: "a@x.com", EmailVerified: true})
		assert.True(t, errors.IsCode(err, errors.ErrCodeConflict), "second accept")
	})

	t.Run("expired invitation", func(t *testing.T) {
		f := newTeamFixture(t)
		m, _ := f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleViewer)
		f.clock.Advance(invitationTTL + time.Hour)

		_, err := f.svc.Accept(ctx, m.ID, team.Principal{UserID: 7, Email: "a@x.com", EmailVerified: true})
		assert.True(t, errors.IsCode(err, errors.ErrCodeGone))

		stored, _ := f.repo.GetByID(ctx, m.ID)
		assert.Equal(t, team.StatusExpired, stored.Status)
	})

	t.Run("unknown invitation", func(t *testing.T) {
		f := newTeamFixture(t)
		_, err := f.svc.Accept(ctx, "missing", team.Principal{UserID: 7, Email: "a@x.com", EmailVerified: true})
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestTeamService_Revoke(t *testing.T) {
	f := newTeamFixture(t)
	ctx := context.Background()

	m, _ := f.svc.Invite(ctx, testTenant, testTenant, "a@x.com", team.RoleViewer)

	assert.True(t, errors.IsNotFound(f.svc.Revoke(ctx, testTenant+1, m.ID)), "other tenant")
	require.NoError(t, f.svc.Revoke(ctx, testTenant, m.ID))

	members, err := f.svc.List(ctx, testTenant)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, team.StatusExpired, members[0].Status)

	assert.True(t, errors.IsCode(f.svc.Revoke(ctx, testTenant, m.ID), errors.ErrCodeConflict))
}

func TestTeamService_AcceptClaimsSeat(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := postgres.NewTeamRepository(db)
	evaluator := NewEntitlementService(testutil.NewMockSubscriptionRepository(), postgres.NewUsageRepository(db), testutil.NewTestLogger(), "https://app.example.com")
	svc := NewTeamService(repo, evaluator, testutil.NewTestLogger(), invitationTTL)
	ctx := context.Background()

	emails := []string{"a@x.com", "b@x.com", "c@x.com"}
	ids := make([]string, 0, len(emails))
	for _, email := range emails {
		m, err := svc.Invite(ctx, testTenant, testTenant, email, team.RoleViewer)
		require.NoError(t, err, email)
		ids = append(ids, m.ID)
	}

	_, err := svc.Accept(ctx, ids[0], team.Principal{UserID: 10, Email: emails[0], EmailVerified: true})
	require.NoError(t, err)

	for i := 1; i < len(ids); i++ {
		_, err := svc.Accept(ctx, ids[i], team.Principal{UserID: int64(10 + i), Email: emails[i], EmailVerified: true})
		assert.True(t, errors.IsCode(err, errors.ErrCodeQuotaExceeded), emails[i])

		stored, err := repo.GetByID(ctx, ids[i])
		require.NoError(t, err)
		assert.Equal(t, team.StatusPending, stored.Status)
	}

	res := evaluator.Evaluate(ctx, testTenant, plan.ResourceTeamMembers)
	require.NotNil(t, res.Limit)
	assert.Equal(t, 1, *res.Limit)
	assert.Equal(t, 1, res.Used)
}
