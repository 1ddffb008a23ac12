// internal/models/client.go
package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

type Client struct {
	ID            int64     `json:"id"`
	CompanyName   string    `json:"company_name"`
	ContactPerson *string   `json:"contact_person"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ClientSummary struct {
	Client
	OpenJobs int64 `json:"open_jobs"`
}

type ClientStats struct {
	Client
	TotalJobs  int64 `json:"total_jobs"`
	OpenJobs   int64 `json:"open_jobs"`
	FilledJobs int64 `json:"filled_jobs"`
}

type ClientDetail struct {
	Client
	JobOrders []JobOrder `json:"job_orders"`
}

type ClientInput struct {
	CompanyName   string  `mapstructure:"company_name"`
	ContactPerson *string `mapstructure:"contact_person"`
	Email         *string `mapstructure:"email"`
	Phone         *string `mapstructure:"phone"`
	Address       *string `mapstructure:"address"`
	Status        string  `mapstructure:"status"`
}
