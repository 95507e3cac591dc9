package candidate

import "time"

// Candidate is a person in a tenant's hiring pipeline
type Candidate struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	JobID     *int64    `json:"job_id,omitempty"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Stage     Stage     `json:"stage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stage of a candidate in the pipeline
type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// Valid reports whether s is a known pipeline stage
func (s Stage) Valid() bool {
	switch s {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}
