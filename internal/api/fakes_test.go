package api

import (
	"context"
	"errors"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

// ==========================
// Service doubles
// ==========================

type fakeCandidates struct {
	listFilter models.CandidateFilter
	createIn   models.CandidateInput
	patch      *querybuilder.Patch
	bulkIn     models.BulkStatusInput
	err        error
}

func (f *fakeCandidates) List(_ context.Context, flt models.CandidateFilter) ([]models.Candidate, querybuilder.Pagination, error) {
	f.listFilter = flt
	if f.err != nil {
		return nil, querybuilder.Pagination{}, f.err
	}
	return []models.Candidate{{ID: 1, Email: "a@x.com"}}, flt.Page.Pagination(21), nil
}

func (f *fakeCandidates) Get(_ context.Context, id int64) (*models.CandidateDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CandidateDetail{Candidate: models.Candidate{ID: id}, ProjectNames: []string{}}, nil
}

func (f *fakeCandidates) Create(_ context.Context, in models.CandidateInput) (*models.Candidate, error) {
	f.createIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Candidate{ID: 7, FirstName: in.FirstName, Email: in.Email, Status: in.Status}, nil
}

func (f *fakeCandidates) Update(_ context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error) {
	f.patch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &models.Candidate{ID: id}, nil
}

func (f *fakeCandidates) Delete(context.Context, int64) error { return f.err }

func (f *fakeCandidates) SearchBySkill(context.Context, models.SkillSearch) ([]models.SkillMatch, error) {
	return []models.SkillMatch{{ID: 1, SkillMatchScore: 2}, {ID: 2, SkillMatchScore: 1}}, f.err
}

func (f *fakeCandidates) Statistics(context.Context) (*models.CandidateStats, error) {
	return &models.CandidateStats{}, f.err
}

func (f *fakeCandidates) CountByStatus(context.Context) (*models.StatusCounts, error) {
	return &models.StatusCounts{Counts: []models.StatusCount{}}, f.err
}

func (f *fakeCandidates) BulkUpdateStatus(_ context.Context, in models.BulkStatusInput) (*models.BulkStatusResult, error) {
	f.bulkIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.BulkStatusResult{AffectedRows: int64(len(in.CandidateIDs)), UpdatedIDs: in.CandidateIDs}, nil
}

type fakeClients struct{ err error }

func (f *fakeClients) List(context.Context) ([]models.ClientSummary, error) {
	return []models.ClientSummary{}, f.err
}

func (f *fakeClients) ListWithStats(context.Context) ([]models.ClientStats, error) {
	return []models.ClientStats{}, f.err
}

func (f *fakeClients) Get(_ context.Context, id int64) (*models.ClientDetail, error) {
	return &models.ClientDetail{Client: models.Client{ID: id}}, f.err
}

func (f *fakeClients) Create(_ context.Context, in models.ClientInput) (*models.Client, error) {
	return &models.Client{ID: 3, CompanyName: in.CompanyName, Status: in.Status}, f.err
}

func (f *fakeClients) Update(_ context.Context, id int64, _ *querybuilder.Patch) (*models.Client, error) {
	return &models.Client{ID: id}, f.err
}

type fakeJobOrders struct {
	replaced models.JobOrderInput
	err      error
}

func (f *fakeJobOrders) List(context.Context, models.JobOrderFilter) ([]models.JobOrderView, error) {
	return []models.JobOrderView{}, f.err
}

func (f *fakeJobOrders) ListOpen(context.Context) ([]models.JobOrderView, error) {
	return []models.JobOrderView{}, f.err
}

func (f *fakeJobOrders) Get(context.Context, int64) (*models.JobOrderDetail, error) {
	return nil, apperrors.NewNotFoundError("Job order not found")
}

func (f *fakeJobOrders) Create(_ context.Context, in models.JobOrderInput) (*models.JobOrderView, error) {
	return &models.JobOrderView{JobOrder: models.JobOrder{ID: 4, Title: in.Title, Status: in.Status}}, f.err
}

func (f *fakeJobOrders) Update(_ context.Context, id int64, in models.JobOrderInput) (*models.JobOrderView, error) {
	f.replaced = in
	return &models.JobOrderView{JobOrder: models.JobOrder{ID: id, Title: in.Title, Status: in.Status}}, f.err
}

type fakeAssignments struct {
	createIn models.AssignmentInput
	patch    *querybuilder.Patch
}

func (f *fakeAssignments) List(context.Context, models.AssignmentFilter) ([]models.AssignmentView, error) {
	return []models.AssignmentView{}, nil
}

func (f *fakeAssignments) ListByCandidate(_ context.Context, id int64) ([]models.AssignmentView, error) {
	return []models.AssignmentView{{Assignment: models.Assignment{ID: 1, CandidateID: id}}}, nil
}

func (f *fakeAssignments) ListByJobOrder(context.Context, int64) ([]models.AssignmentView, error) {
	return []models.AssignmentView{}, nil
}

func (f *fakeAssignments) Create(_ context.Context, in models.AssignmentInput) (*models.AssignmentView, error) {
	f.createIn = in
	return &models.AssignmentView{Assignment: models.Assignment{ID: 9, Status: in.Status}}, nil
}

func (f *fakeAssignments) UpdateStatus(_ context.Context, id int64, patch *querybuilder.Patch) (*models.AssignmentView, error) {
	f.patch = patch
	v, _ := patch.Get("status")
	status, _ := v.(string)
	return &models.AssignmentView{Assignment: models.Assignment{ID: id, Status: status}}, nil
}

type fakeDashboard struct{}

func (fakeDashboard) Stats(context.Context) (*models.DashboardStats, error) {
	return &models.DashboardStats{TopSkills: []models.SkillCount{{Skill: "Go", Count: 2}}}, nil
}

func (fakeDashboard) RecentActivity(context.Context) (*models.RecentActivity, error) {
	panic("recent activity exploded")
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

var errStore = errors.New("pq: connection refused")
