// internal/models/assignment.go
package models

import "time"

const (
	AssignmentStatusApplied      = "applied"
	AssignmentStatusInterviewing = "interviewing"
	AssignmentStatusOffered      = "offered"
	AssignmentStatusPlaced       = "placed"
	AssignmentStatusRejected     = "rejected"
)

type Assignment struct {
	ID           int64      `json:"id"`
	CandidateID  int64      `json:"candidate_id"`
	JobOrderID   int64      `json:"job_order_id"`
	Status       string     `json:"status"`
	Notes        *string    `json:"notes"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	AssignedDate time.Time  `json:"assigned_date"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AssignmentView is an assignment joined with candidate, job and client summaries.
type AssignmentView struct {
	Assignment
	CandidateFirstName  string   `json:"candidate_first_name"`
	CandidateLastName   string   `json:"candidate_last_name"`
	CandidateEmail      string   `json:"candidate_email"`
	CandidateSkills     *string  `json:"candidate_skills"`
	CandidateExperience *float64 `json:"candidate_experience"`
	JobTitle            string   `json:"job_title"`
	JobRequiredSkills   *string  `json:"job_required_skills"`
	ClientCompany       string   `json:"client_company"`
}

type AssignmentInput struct {
	CandidateID  int64      `mapstructure:"candidate_id"`
	JobOrderID   int64      `mapstructure:"job_order_id"`
	Status       string     `mapstructure:"status"`
	Notes        *string    `mapstructure:"notes"`
	AssignedDate *time.Time `mapstructure:"assigned_date"`
}

type AssignmentFilter struct {
	Status string `mapstructure:"status"`
}
