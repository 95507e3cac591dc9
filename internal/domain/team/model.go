package team

import (
	"strings"
	"time"
)

// Status is the invitation state of a team member
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Role of a team member within a tenant
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleRecruiter   Role = "recruiter"
	RoleInterviewer Role = "interviewer"
	RoleViewer      Role = "viewer"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleInterviewer, RoleViewer:
		return true
	}
	return false
}

// Member is a team invitation and, once accepted, a team membership
type Member struct {
	ID           string     `json:"id"`
	UserID       int64      `json:"user_id"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	InvitedBy    int64      `json:"invited_by"`
	InvitedAt    time.Time  `json:"invited_at"`
	JoinedAt     *time.Time `json:"joined_at,omitempty"`
	MemberUserID *int64     `json:"member_user_id,omitempty"`
}

// Principal is the session accepting an invitation
type Principal struct {
	UserID        int64
	Email         string
	EmailVerified bool
}

// Expired reports whether a pending invitation outlived ttl at now
func (m *Member) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && m.Status == StatusPending && now.Sub(m.InvitedAt) > ttl
}

// EmailMatches compares emails case-insensitively after trimming
func EmailMatches(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
