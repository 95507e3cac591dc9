package client

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

func listQuery(opts *ListOptions, extra url.Values) string {
	q := url.Values{}
	for k, v := range extra {
		q[k] = v
	}
	if opts != nil {
		if opts.Page > 0 {
			q.Set("page", fmt.Sprint(opts.Page))
		}
		if opts.PageSize > 0 {
			q.Set("page_size", fmt.Sprint(opts.PageSize))
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// JobService manages job postings
type JobService struct {
	client *Client
}

// CreateJobRequest holds the fields of a new posting
type CreateJobRequest struct {
	Title      string `json:"title"`
	Department string `json:"department,omitempty"`
	Location   string `json:"location,omitempty"`
	Status     string `json:"status,omitempty"`
}

// List returns job postings, optionally filtered by status
func (s *JobService) List(ctx context.Context, status string, opts *ListOptions) (*Page[Job], error) {
	extra := url.Values{}
	if status != "" {
		extra.Set("status", status)
	}

	var page Page[Job]
	if err := s.client.doRequest(ctx, "GET", "/api/v1/jobs"+listQuery(opts, extra), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create adds a posting. Open postings count against the plan's job limit.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*Job, error) {
	var j Job
	if err := s.client.doRequest(ctx, "POST", "/api/v1/jobs", req, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// CandidateService manages candidates
type CandidateService struct {
	client *Client
}

// CreateCandidateRequest holds the fields of a new candidate
type CreateCandidateRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email,omitempty"`
	JobID    *int64 `json:"jobId,omitempty"`
	Stage    string `json:"stage,omitempty"`
}

// List returns candidates
func (s *CandidateService) List(ctx context.Context, opts *ListOptions) (*Page[Candidate], error) {
	var page Page[Candidate]
	if err := s.client.doRequest(ctx, "GET", "/api/v1/candidates"+listQuery(opts, nil), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create adds a candidate
func (s *CandidateService) Create(ctx context.Context, req CreateCandidateRequest) (*Candidate, error) {
	var c Candidate
	if err := s.client.doRequest(ctx, "POST", "/api/v1/candidates", req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// InterviewService manages interviews
type InterviewService struct {
	client *Client
}

// CreateInterviewRequest holds the fields of a new interview
type CreateInterviewRequest struct {
	Title       string    `json:"title"`
	ScheduledAt time.Time `json:"scheduledAt"`
	CandidateID *int64    `json:"candidateId,omitempty"`
	JobID       *int64    `json:"jobId,omitempty"`
}

// ListThisMonth returns interviews created in the current calendar month
func (s *InterviewService) ListThisMonth(ctx context.Context) ([]Interview, error) {
	var interviews []Interview
	if err := s.client.doRequest(ctx, "GET", "/api/v1/interviews", nil, &interviews); err != nil {
		return nil, err
	}
	return interviews, nil
}

// Create schedules an interview
func (s *InterviewService) Create(ctx context.Context, req CreateInterviewRequest) (*Interview, error) {
	var iv Interview
	if err := s.client.doRequest(ctx, "POST", "/api/v1/interviews", req, &iv); err != nil {
		return nil, err
	}
	return &iv, nil
}
