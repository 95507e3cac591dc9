package interview

import "time"

// Interview is a scheduled conversation with a candidate. Only the date is
// stored; nothing in the service acts on it.
type Interview struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CandidateID *int64    `json:"candidate_id,omitempty"`
	JobID       *int64    `json:"job_id,omitempty"`
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}
