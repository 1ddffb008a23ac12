// Package api exposes the controllers over HTTP with gin. Handlers validate
// path, query and body input against the named schemas, call one controller
// operation and write the JSON envelope.
package api

import (
	"context"

	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

// The service interfaces are satisfied by the controllers package.

type CandidateService interface {
	List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, querybuilder.Pagination, error)
	Get(ctx context.Context, id int64) (*models.CandidateDetail, error)
	Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error)
	Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error)
	Delete(ctx context.Context, id int64) error
	SearchBySkill(ctx context.Context, s models.SkillSearch) ([]models.SkillMatch, error)
	Statistics(ctx context.Context) (*models.CandidateStats, error)
	CountByStatus(ctx context.Context) (*models.StatusCounts, error)
	BulkUpdateStatus(ctx context.Context, in models.BulkStatusInput) (*models.BulkStatusResult, error)
}

type ClientService interface {
	List(ctx context.Context) ([]models.ClientSummary, error)
	ListWithStats(ctx context.Context) ([]models.ClientStats, error)
	Get(ctx context.Context, id int64) (*models.ClientDetail, error)
	Create(ctx context.Context, in models.ClientInput) (*models.Client, error)
	Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Client, error)
}

type JobOrderService interface {
	List(ctx context.Context, f models.JobOrderFilter) ([]models.JobOrderView, error)
	ListOpen(ctx context.Context) ([]models.JobOrderView, error)
	Get(ctx context.Context, id int64) (*models.JobOrderDetail, error)
	Create(ctx context.Context, in models.JobOrderInput) (*models.JobOrderView, error)
	Update(ctx context.Context, id int64, in models.JobOrderInput) (*models.JobOrderView, error)
}

type AssignmentService interface {
	List(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.AssignmentView, error)
	ListByJobOrder(ctx context.Context, jobOrderID int64) ([]models.AssignmentView, error)
	Create(ctx context.Context, in models.AssignmentInput) (*models.AssignmentView, error)
	UpdateStatus(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.AssignmentView, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	RecentActivity(ctx context.Context) (*models.RecentActivity, error)
}

// Pinger reports backing store connectivity for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}
