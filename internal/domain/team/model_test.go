package team

import (
	"testing"
	"time"
)

func TestEmailMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"a@x.com", "a@x.com", true},
		{"A@X.com", "a@x.COM", true},
		{" a@x.com", "a@x.com ", true},
		{"a@x.com", "b@x.com", false},
		{"a@x.com", "", false},
	}
	for _, tt := range tests {
		if got := EmailMatches(tt.a, tt.b); got != tt.want {
			t.Errorf("EmailMatches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMember_Expired(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	ttl := 7 * 24 * time.Hour

	tests := []struct {
		name string
		m    Member
		ttl  time.Duration
		want bool
	}{
		{"fresh", Member{Status: StatusPending, InvitedAt: now.Add(-time.Hour)}, ttl, false},
		{"old pending", Member{Status: StatusPending, InvitedAt: now.Add(-8 * 24 * time.Hour)}, ttl, true},
		{"old active", Member{Status: StatusActive, InvitedAt: now.Add(-30 * 24 * time.Hour)}, ttl, false},
		{"no ttl", Member{Status: StatusPending, InvitedAt: now.Add(-365 * 24 * time.Hour)}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Expired(now, tt.ttl); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleRecruiter, RoleInterviewer, RoleViewer} {
		if !r.Valid() {
			t.Errorf("role %s should be valid", r)
		}
	}
	if Role("owner").Valid() {
		t.Error("unknown role should be invalid")
	}
}
