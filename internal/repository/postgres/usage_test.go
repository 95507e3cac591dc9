package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/candidate"
	"github.com/pratik-mahalle/hireloop/internal/domain/entitlement"
	"github.com/pratik-mahalle/hireloop/internal/domain/interview"
	"github.com/pratik-mahalle/hireloop/internal/domain/job"
	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

func TestUsageRepository_MonthlyInterviewWindow(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	interviews := NewInterviewRepository(db)
	usage := NewUsageRepository(db)
	ctx := context.Background()

	lastJan := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	firstFeb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	for _, at := range []time.Time{lastJan, firstFeb} {
		require.NoError(t, interviews.Create(ctx, &interview.Interview{
			UserID: 1, Title: "Onsite", ScheduledAt: at.Add(48 * time.Hour), CreatedAt: at,
		}))
	}
	// another tenant in the same window
	require.NoError(t, interviews.Create(ctx, &interview.Interview{
		UserID: 2, Title: "Screen", ScheduledAt: lastJan, CreatedAt: lastJan,
	}))

	janStart, janEnd := entitlement.MonthWindow(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	jan, err := usage.CountInterviewsBetween(ctx, 1, janStart, janEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, jan)

	febStart, febEnd := entitlement.MonthWindow(firstFeb)
	feb, err := usage.CountInterviewsBetween(ctx, 1, febStart, febEnd)
	require.NoError(t, err)
	assert.Equal(t, 1, feb)

	listed, err := interviews.ListBetween(ctx, 1, janStart, janEnd)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.True(t, lastJan.Equal(listed[0].CreatedAt))
}

func TestUsageRepository_Counts(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	ctx := context.Background()
	usage := NewUsageRepository(db)
	jobs := NewJobRepository(db)
	candidates := NewCandidateRepository(db)
	members := NewTeamRepository(db)

	for i := 0; i < 3; i++ {
		require.NoError(t, jobs.Create(ctx, &job.Job{UserID: 5, Title: "Engineer"}))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, candidates.Create(ctx, &candidate.Candidate{UserID: 5, FullName: "Ada", Email: "ada@example.com"}))
	}

	pending := &team.Member{UserID: 5, Email: "p@example.com", Role: team.RoleViewer, InvitedBy: 5}
	active := &team.Member{UserID: 5, Email: "a@example.com", Role: team.RoleRecruiter, InvitedBy: 5}
	require.NoError(t, members.Create(ctx, pending))
	require.NoError(t, members.Create(ctx, active))
	ok, err := members.Activate(ctx, active.ID, 99, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	n, err := usage.CountJobs(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = usage.CountCandidates(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = usage.CountActiveTeamMembers(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "pending invitations are not counted")

	n, err = usage.CountJobs(ctx, 6)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUsageRepository_ClosedDB(t *testing.T) {
	db := testutil.NewTestDB(t)
	usage := NewUsageRepository(db)
	db.Close()

	_, err := usage.CountJobs(context.Background(), 1)
	assert.Error(t, err)
}
