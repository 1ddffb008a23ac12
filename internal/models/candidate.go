// internal/models/candidate.go
package models

import (
	"time"

	"staffing-api/internal/common/querybuilder"
)

const (
	CandidateStatusActive   = "active"
	CandidateStatusInactive = "inactive"
	CandidateStatusPlaced   = "placed"
)

type Candidate struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone"`
	Skills          *string   `json:"skills"`
	ExperienceYears *float64  `json:"experience_years"`
	ResumeURL       *string   `json:"resume_url"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CandidateDetail is a candidate with its assignment aggregate.
type CandidateDetail struct {
	Candidate
	AssignmentCount int64    `json:"assignment_count"`
	ProjectNames    []string `json:"project_names"`
}

type CandidateInput struct {
	FirstName       string   `mapstructure:"first_name"`
	LastName        string   `mapstructure:"last_name"`
	Email           string   `mapstructure:"email"`
	Phone           *string  `mapstructure:"phone"`
	Skills          *string  `mapstructure:"skills"`
	ExperienceYears *float64 `mapstructure:"experience_years"`
	ResumeURL       *string  `mapstructure:"resume_url"`
	Status          string   `mapstructure:"status"`
}

type CandidateFilter struct {
	Search        string   `mapstructure:"search"`
	Skills        string   `mapstructure:"skills"`
	Status        string   `mapstructure:"status"`
	ExperienceMin *float64 `mapstructure:"experience_min"`
	ExperienceMax *float64 `mapstructure:"experience_max"`

	querybuilder.Page `mapstructure:",squash"`
}

type SkillSearch struct {
	Skills        string  `mapstructure:"skills"`
	MinExperience float64 `mapstructure:"min_experience"`
	MaxExperience float64 `mapstructure:"max_experience"`
}

// SkillMatch is a skill search hit with its computed score.
type SkillMatch struct {
	ID              int64    `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Skills          *string  `json:"skills"`
	ExperienceYears *float64 `json:"experience_years"`
	Status          string   `json:"status"`
	SkillMatchScore float64  `json:"skill_match_score"`
}

type BulkStatusInput struct {
	CandidateIDs []int64 `mapstructure:"candidate_ids"`
	Status       string  `mapstructure:"status"`
}

type BulkStatusResult struct {
	AffectedRows int64   `json:"affected_rows"`
	UpdatedIDs   []int64 `json:"updated_ids"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatusCounts struct {
	Counts []StatusCount `json:"counts"`
	Total  int64         `json:"total"`
}

type StatusStat struct {
	Status        string   `json:"status"`
	Count         int64    `json:"count"`
	AvgExperience *float64 `json:"avg_experience"`
}

type SkillBucket struct {
	Skills *string `json:"skills"`
	Count  int64   `json:"count"`
}

type ExperienceBucket struct {
	ExperienceRange string `json:"experience_range"`
	Count           int64  `json:"count"`
}

type CandidateStats struct {
	StatusDistribution     []StatusStat       `json:"status_distribution"`
	PopularSkills          []SkillBucket      `json:"popular_skills"`
	ExperienceDistribution []ExperienceBucket `json:"experience_distribution"`
	TotalCandidates        int64              `json:"total_candidates"`
	ActiveCandidates       int64              `json:"active_candidates"`
}
