package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ExactlyOneFreeTrial(t *testing.T) {
	count := 0
	seen := map[string]bool{}
	for _, p := range List() {
		assert.False(t, seen[p.ID], "duplicate plan id %s", p.ID)
		seen[p.ID] = true
		if p.ID == IDFreeTrial {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestList_OrderedByPrice(t *testing.T) {
	plans := List()
	require.NotEmpty(t, plans)
	for i := 1; i < len(plans); i++ {
		assert.LessOrEqual(t, plans[i-1].PriceInCents, plans[i].PriceInCents)
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	plans := List()
	plans[0].Name = "mutated"
	plans[0].Features[0] = "mutated"

	again := List()
	assert.NotEqual(t, "mutated", again[0].Name)
	assert.NotEqual(t, "mutated", again[0].Features[0])
}

func TestFind_Totality(t *testing.T) {
	inputs := []string{
		IDFreeTrial, IDStarter, IDProfessional, IDEnterprise,
		"", "FREE-TRIAL", "free-trial ", "professional", "enterprise-yearly", "starter-monthly\x00",
	}

	for _, id := range inputs {
		t.Run(id, func(t *testing.T) {
			p, err := Find(id)
			if err != nil {
				assert.True(t, errors.Is(err, ErrNotFound))
				assert.Empty(t, p.ID)
				return
			}
			assert.Equal(t, id, p.ID)
		})
	}
}

func TestFindOrDefault(t *testing.T) {
	assert.Equal(t, IDProfessional, FindOrDefault(IDProfessional).ID)
	assert.Equal(t, IDFreeTrial, FindOrDefault("legacy-gold").ID)
	assert.Equal(t, IDFreeTrial, FindOrDefault("").ID)
}

func TestPlan_Limit(t *testing.T) {
	free := FreeTrial()
	pro := FindOrDefault(IDProfessional)
	ent := FindOrDefault(IDEnterprise)

	tests := []struct {
		name          string
		plan          Plan
		resource      Resource
		wantLimit     int
		wantUnlimited bool
		wantOK        bool
	}{
		{"free interviews", free, ResourceInterviews, 3, false, true},
		{"free team", free, ResourceTeamMembers, 1, false, true},
		{"free analytics", free, ResourceAnalytics, 0, false, true},
		{"pro interviews flag", pro, ResourceInterviews, 0, true, true},
		{"pro candidates sentinel", pro, ResourceCandidates, 0, true, true},
		{"pro jobs", pro, ResourceJobs, 50, false, true},
		{"pro analytics", pro, ResourceAnalytics, 0, true, true},
		{"enterprise team", ent, ResourceTeamMembers, 0, true, true},
		{"unknown resource", free, Resource("storage"), 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, unlimited, ok := tt.plan.Limit(tt.resource)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantUnlimited, unlimited)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestResource_Valid(t *testing.T) {
	for _, r := range MeteredResources {
		assert.True(t, r.Valid())
		assert.False(t, r.IsCapability())
	}
	assert.True(t, ResourceAnalytics.IsCapability())
	assert.False(t, Resource("storage").Valid())
}
