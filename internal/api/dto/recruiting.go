package dto

import "time"

// CreateJobRequest represents a request to open a job posting
type CreateJobRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100"`
	Location   string `json:"location,omitempty" validate:"omitempty,max=100"`
	Status     string `json:"status,omitempty" validate:"omitempty,job_status"`
}

// CreateCandidateRequest represents a request to add a candidate
type CreateCandidateRequest struct {
	FullName string `json:"fullName" validate:"required,max=200"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	JobID    *int64 `json:"jobId,omitempty"`
	Stage    string `json:"stage,omitempty" validate:"omitempty,candidate_stage"`
}

// CreateInterviewRequest represents a request to schedule an interview
type CreateInterviewRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	ScheduledAt time.Time `json:"scheduledAt"`
	CandidateID *int64    `json:"candidateId,omitempty"`
	JobID       *int64    `json:"jobId,omitempty"`
}
