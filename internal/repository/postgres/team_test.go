package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

func TestTeamRepository_Lifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewTeamRepository(db)
	ctx := context.Background()

	m := &team.Member{UserID: 1, Email: "A@x.com", Role: team.RoleInterviewer, InvitedBy: 1}
	require.NoError(t, repo.Create(ctx, m))
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, team.StatusPending, m.Status)

	found, err := repo.FindOpenByEmail(ctx, 1, "a@X.COM")
	require.NoError(t, err)
	assert.Equal(t, m.ID, found.ID)

	_, err = repo.FindOpenByEmail(ctx, 2, "a@x.com")
	assert.True(t, errors.IsNotFound(err))

	joined := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ok, err := repo.Activate(ctx, m.ID, 77, joined)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second accept finds nothing pending
	ok, err = repo.Activate(ctx, m.ID, 78, joined)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, team.StatusActive, got.Status)
	require.NotNil(t, got.MemberUserID)
	assert.Equal(t, int64(77), *got.MemberUserID)
	assert.True(t, joined.Equal(*got.JoinedAt))

	ok, err = repo.Expire(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, ok, "active members cannot expire")

	list, err := repo.ListByTenant(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.IsNotFound(err))
}

func TestTeamRepository_ExpirePendingBefore(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewTeamRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	stale := &team.Member{UserID: 1, Email: "old@x.com", Role: team.RoleViewer, InvitedBy: 1, InvitedAt: now.Add(-10 * 24 * time.Hour)}
	fresh := &team.Member{UserID: 1, Email: "new@x.com", Role: team.RoleViewer, InvitedBy: 1, InvitedAt: now.Add(-time.Hour)}
	joined := &team.Member{UserID: 2, Email: "in@x.com", Role: team.RoleRecruiter, InvitedBy: 2, InvitedAt: now.Add(-30 * 24 * time.Hour)}
	for _, m := range []*team.Member{stale, fresh, joined} {
		require.NoError(t, repo.Create(ctx, m))
	}
	_, err := repo.Activate(ctx, joined.ID, 9, now.Add(-29*24*time.Hour))
	require.NoError(t, err)

	n, err := repo.ExpirePendingBefore(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, team.StatusExpired, got.Status)

	got, err = repo.GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, team.StatusPending, got.Status)

	got, err = repo.GetByID(ctx, joined.ID)
	require.NoError(t, err)
	assert.Equal(t, team.StatusActive, got.Status)
}
