package client

import "time"

// User represents an authenticated account
type User struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	FullName      *string `json:"full_name,omitempty"`
	Role          string  `json:"role"`
	EmailVerified bool    `json:"email_verified"`
}

// PlanLimits holds the caps of a plan. -1 means unlimited.
type PlanLimits struct {
	MaxCandidates          int  `json:"maxCandidates"`
	MaxJobs                int  `json:"maxJobs"`
	MaxTeamMembers         int  `json:"maxTeamMembers"`
	MaxInterviewsPerMonth  int  `json:"maxInterviewsPerMonth"`
	HasUnlimitedInterviews bool `json:"hasUnlimitedInterviews"`
	HasAnalytics           bool `json:"hasAnalytics"`
	HasCustomBranding      bool `json:"hasCustomBranding"`
	HasAPIAccess           bool `json:"hasApiAccess"`
	HasPrioritySupport     bool `json:"hasPrioritySupport"`
}

// Plan is a catalog entry
type Plan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`
	Interval    string     `json:"interval"`
	Features    []string   `json:"features"`
	IsPopular   bool       `json:"isPopular"`
	IsCurrent   bool       `json:"isCurrent"`
	Limits      PlanLimits `json:"limits"`
}

// Subscription is the tenant's billing state
type Subscription struct {
	PlanID             string     `json:"planId"`
	Status             string     `json:"status"`
	CurrentPeriodStart *time.Time `json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd,omitempty"`
	HasBillingAccount  bool       `json:"hasBillingAccount"`
}

// Entitlement is the outcome of a quota or capability check
type Entitlement struct {
	Resource     string `json:"resource"`
	PlanID       string `json:"planId"`
	Allowed      bool   `json:"allowed"`
	Limit        *int   `json:"limit"`
	Used         int    `json:"used"`
	Remaining    *int   `json:"remaining"`
	Unlimited    bool   `json:"unlimited"`
	NeedsUpgrade bool   `json:"needsUpgrade"`
	Reason       string `json:"reason"`
}

// EntitlementCheck wraps a single entitlement with its upgrade link
type EntitlementCheck struct {
	Entitlement *Entitlement `json:"entitlement"`
	UpgradeURL  string       `json:"upgradeUrl,omitempty"`
}

// AnalyticsSummary is the hiring overview on analytics-enabled plans
type AnalyticsSummary struct {
	PlanID              string         `json:"planId"`
	OpenJobs            int64          `json:"openJobs"`
	TotalCandidates     int64          `json:"totalCandidates"`
	InterviewsThisMonth int            `json:"interviewsThisMonth"`
	Usage               []*Entitlement `json:"usage"`
}

// Job is a job posting
type Job struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Department string    `json:"department,omitempty"`
	Location   string    `json:"location,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Candidate is a tracked applicant
type Candidate struct {
	ID        int64     `json:"id"`
	JobID     *int64    `json:"job_id,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Stage     string    `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Interview is a scheduled interview
type Interview struct {
	ID          int64     `json:"id"`
	CandidateID *int64    `json:"candidate_id,omitempty"`
	JobID       *int64    `json:"job_id,omitempty"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamMember is an invitation or active seat
type TeamMember struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	InvitedBy    int64      `json:"invited_by"`
	InvitedAt    time.Time  `json:"invited_at"`
	JoinedAt     *time.Time `json:"joined_at,omitempty"`
	MemberUserID *int64     `json:"member_user_id,omitempty"`
}

// Page is a paginated list
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ListOptions controls pagination
type ListOptions struct {
	Page     int
	PageSize int
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// Readiness is the dependency report served by /readyz
type Readiness struct {
	Status          string `json:"status"`
	Database        string `json:"database"`
	WebhookDatabase string `json:"webhook_database"`
	Billing         string `json:"billing"`
}
