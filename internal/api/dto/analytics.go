package dto

import "github.com/pratik-mahalle/hireloop/internal/domain/entitlement"

// AnalyticsSummary is the gated hiring overview
type AnalyticsSummary struct {
	PlanID              string                `json:"planId"`
	OpenJobs            int64                 `json:"openJobs"`
	TotalCandidates     int64                 `json:"totalCandidates"`
	InterviewsThisMonth int                   `json:"interviewsThisMonth"`
	Usage               []*entitlement.Result `json:"usage"`
}
