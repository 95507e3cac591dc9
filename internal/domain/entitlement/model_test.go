package entitlement

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/domain/plan"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name      string
		at        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid month",
			at:        time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "last second of january",
			at:        time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first instant of february",
			at:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "december rolls the year",
			at:        time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "local time is converted to utc",
			at:        time.Date(2024, 2, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthWindow(tt.at)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}
}

func TestCounted_Monotonic(t *testing.T) {
	const limit = 5
	prevRemaining := limit + 1
	for used := 0; used <= limit+3; used++ {
		r := Counted(plan.ResourceInterviews, plan.IDFreeTrial, limit, used)
		require.NotNil(t, r.Remaining)

		if used < limit {
			assert.True(t, r.Allowed)
			assert.Equal(t, prevRemaining-1, *r.Remaining)
			assert.Equal(t, ReasonWithinLimit, r.Reason)
		} else {
			assert.False(t, r.Allowed)
			assert.True(t, r.NeedsUpgrade)
			assert.Equal(t, 0, *r.Remaining)
			assert.Equal(t, ReasonLimitReached, r.Reason)
		}
		prevRemaining = *r.Remaining
	}
}

func TestFailed_IsDistinctFromLimitReached(t *testing.T) {
	failed := Failed(plan.ResourceInterviews, errors.New("connection refused"))
	exhausted := Counted(plan.ResourceInterviews, plan.IDFreeTrial, 3, 3)

	assert.False(t, failed.Allowed)
	assert.False(t, failed.NeedsUpgrade)
	assert.True(t, failed.Unavailable())
	assert.Error(t, failed.Err)

	assert.False(t, exhausted.Allowed)
	assert.True(t, exhausted.NeedsUpgrade)
	assert.False(t, exhausted.Unavailable())
}

func TestUnlimitedAndNotInPlan(t *testing.T) {
	u := UnlimitedResult(plan.ResourceInterviews, plan.IDProfessional)
	assert.True(t, u.Allowed)
	assert.True(t, u.Unlimited)
	assert.Nil(t, u.Limit)
	assert.Nil(t, u.Remaining)

	n := NotInPlan(plan.ResourceAnalytics, plan.IDFreeTrial)
	assert.False(t, n.Allowed)
	assert.True(t, n.NeedsUpgrade)
	assert.Equal(t, 0, *n.Limit)
}
