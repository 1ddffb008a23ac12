// Package controllers holds the per-entity business rules. Controllers take
// validated, decoded input, talk to persistence only through the repository
// interfaces below and return StandardErrors for every rejected request.
package controllers

import (
	"context"
	"time"

	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

type CandidateRepository interface {
	List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Candidate, error)
	GetDetail(ctx context.Context, id int64) (*models.CandidateDetail, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error)
	Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error)
	Delete(ctx context.Context, id int64) error
	CountAssignments(ctx context.Context, id int64) (int64, error)
	SearchBySkill(ctx context.Context, s models.SkillSearch) ([]models.SkillMatch, error)
	Stats(ctx context.Context) (*models.CandidateStats, error)
	CountByStatus(ctx context.Context) (*models.StatusCounts, error)
	BulkUpdateStatus(ctx context.Context, ids []int64, status string) (*models.BulkStatusResult, error)
}

type ClientRepository interface {
	ListActive(ctx context.Context) ([]models.ClientSummary, error)
	ListWithStats(ctx context.Context) ([]models.ClientStats, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetDetail(ctx context.Context, id int64) (*models.ClientDetail, error)
	NameExists(ctx context.Context, companyName string, excludeID int64) (bool, error)
	Create(ctx context.Context, in models.ClientInput) (*models.Client, error)
	Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Client, error)
}

type JobOrderRepository interface {
	List(ctx context.Context, f models.JobOrderFilter) ([]models.JobOrderView, error)
	ListOpen(ctx context.Context) ([]models.JobOrderView, error)
	GetByID(ctx context.Context, id int64) (*models.JobOrder, error)
	GetView(ctx context.Context, id int64) (*models.JobOrderView, error)
	GetDetail(ctx context.Context, id int64) (*models.JobOrderDetail, error)
	Create(ctx context.Context, in models.JobOrderInput) (int64, error)
	Replace(ctx context.Context, id int64, in models.JobOrderInput) error
}

type AssignmentRepository interface {
	List(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]models.AssignmentView, error)
	ListByJobOrder(ctx context.Context, jobOrderID int64) ([]models.AssignmentView, error)
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetView(ctx context.Context, id int64) (*models.AssignmentView, error)
	Exists(ctx context.Context, candidateID, jobOrderID int64) (bool, error)
	Create(ctx context.Context, in models.AssignmentInput) (int64, error)
	// UpdateStatus applies patch; placed also fills the job order and places
	// the candidate atomically.
	UpdateStatus(ctx context.Context, id int64, patch *querybuilder.Patch, placed bool) error
}

type DashboardRepository interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	OpenJobSkills(ctx context.Context) ([]string, error)
	RecentActivity(ctx context.Context) (*models.RecentActivity, error)
}

// Cache stores JSON values with an expiration. database.RedisClient satisfies it.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Recorder receives domain events. observability.Observability satisfies it.
type Recorder interface {
	RecordEntityCreated(ctx context.Context, entity string)
	RecordAssignmentTransition(ctx context.Context, from, to string)
}

type nopRecorder struct{}

func (nopRecorder) RecordEntityCreated(context.Context, string) {}
func (nopRecorder) RecordAssignmentTransition(context.Context, string, string) {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
