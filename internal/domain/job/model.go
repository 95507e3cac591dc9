package job

import "time"

// Job is an open position owned by a tenant
type Job struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Title      string    `json:"title"`
	Department string    `json:"department,omitempty"`
	Location   string    `json:"location,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Status of a job posting
type Status string

const (
	StatusDraft  Status = "draft"
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusOpen || s == StatusClosed
}

// Filter narrows job listings
type Filter struct {
	Status Status
}
