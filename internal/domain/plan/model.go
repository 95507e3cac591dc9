package plan

// Unlimited is the sentinel cap for a resource without a numeric limit.
const Unlimited = -1

// Plan identifiers
const (
	IDFreeTrial    = "free-trial"
	IDStarter      = "starter-monthly"
	IDProfessional = "professional-monthly"
	IDEnterprise   = "enterprise-monthly"
)

// Resource names a metered resource or a capability flag.
type Resource string

const (
	ResourceInterviews  Resource = "interviews"
	ResourceCandidates  Resource = "candidates"
	ResourceJobs        Resource = "jobs"
	ResourceTeamMembers Resource = "team_members"
	ResourceAnalytics   Resource = "analytics"
)

// MeteredResources lists the counted resources in display order.
var MeteredResources = []Resource{
	ResourceInterviews,
	ResourceCandidates,
	ResourceJobs,
	ResourceTeamMembers,
}

// IsCapability reports whether r is a boolean feature rather than a counted resource.
func (r Resource) IsCapability() bool {
	return r == ResourceAnalytics
}

// Valid reports whether r is known to the catalog.
func (r Resource) Valid() bool {
	switch r {
	case ResourceInterviews, ResourceCandidates, ResourceJobs, ResourceTeamMembers, ResourceAnalytics:
		return true
	}
	return false
}

// Limits holds the entitlement caps of a plan
type Limits struct {
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

// Plan is a subscription tier
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PriceInCents  int64    `json:"priceInCents"`
	Currency      string   `json:"currency"`
	BillingPeriod string   `json:"billingPeriod"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
	Limits        Limits   `json:"limits"`
}

// IsFree reports whether the plan is the free trial
func (p Plan) IsFree() bool {
	return p.ID == IDFreeTrial
}

// Limit returns the cap for r. unlimited is true when the plan sets the
// explicit flag or the numeric cap is the Unlimited sentinel. ok is false
// for unknown resources. Capabilities report limit 0 when not granted.
func (p Plan) Limit(r Resource) (limit int, unlimited bool, ok bool) {
	switch r {
	case ResourceInterviews:
		if p.Limits.HasUnlimitedInterviews {
			return 0, true, true
		}
		limit = p.Limits.MaxInterviewsPerMonth
	case ResourceCandidates:
		limit = p.Limits.MaxCandidates
	case ResourceJobs:
		limit = p.Limits.MaxJobs
	case ResourceTeamMembers:
		limit = p.Limits.MaxTeamMembers
	case ResourceAnalytics:
		return 0, p.Limits.HasAnalytics, true
	default:
		return 0, false, false
	}
	if limit == Unlimited {
		return 0, true, true
	}
	return limit, false, true
}
