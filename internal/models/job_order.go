// internal/models/job_order.go
package models

import "time"

const (
	JobOrderStatusOpen   = "open"
	JobOrderStatusClosed = "closed"
	JobOrderStatusFilled = "filled"
)

type JobOrder struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        *string   `json:"description"`
	RequiredSkills     *string   `json:"required_skills"`
	ExperienceRequired *float64  `json:"experience_required"`
	ClientID           int64     `json:"client_id"`
	SalaryRange        *string   `json:"salary_range"`
	Location           *string   `json:"location"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// JobOrderView is a job order joined with its client's contact data.
type JobOrderView struct {
	JobOrder
	CompanyName   string  `json:"company_name"`
	ContactPerson *string `json:"contact_person"`
}

type JobOrderDetail struct {
	JobOrderView
	ClientEmail *string          `json:"client_email"`
	ClientPhone *string          `json:"client_phone"`
	Assignments []AssignmentView `json:"assignments"`
}

type JobOrderFilter struct {
	Status   string `mapstructure:"status"`
	ClientID *int64 `mapstructure:"client_id"`
}

type JobOrderInput struct {
	Title              string   `mapstructure:"title"`
	Description        *string  `mapstructure:"description"`
	RequiredSkills     *string  `mapstructure:"required_skills"`
	ExperienceRequired *float64 `mapstructure:"experience_required"`
	ClientID           int64    `mapstructure:"client_id"`
	SalaryRange        *string  `mapstructure:"salary_range"`
	Location           *string  `mapstructure:"location"`
	Status             string   `mapstructure:"status"`
}
