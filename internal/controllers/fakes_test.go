package controllers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

// ==========================
// In-memory repositories
// ==========================

// store is a tiny in-memory database shared by the fake repositories so the
// cross-entity rules can be exercised together.
type store struct {
	candidates  map[int64]*models.Candidate
	clients     map[int64]*models.Client
	jobOrders   map[int64]*models.JobOrder
	assignments map[int64]*models.Assignment
	nextID      int64
	failWith    error
}

func newStore() *store {
	return &store{
		candidates:  map[int64]*models.Candidate{},
		clients:     map[int64]*models.Client{},
		jobOrders:   map[int64]*models.JobOrder{},
		assignments: map[int64]*models.Assignment{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func applyString(dst **string, v interface{}) {
	if v == nil {
		*dst = nil
		return
	}
	str := v.(string)
	*dst = &str
}

type fakeCandidates struct{ s *store }

func (f fakeCandidates) List(_ context.Context, flt models.CandidateFilter) ([]models.Candidate, int64, error) {
	if f.s.failWith != nil {
		return nil, 0, f.s.failWith
	}
	all := make([]models.Candidate, 0)
	for _, c := range f.s.candidates {
		if flt.Status != "" && c.Status != flt.Status {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := flt.Page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + flt.Page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f fakeCandidates) GetByID(_ context.Context, id int64) (*models.Candidate, error) {
	c, ok := f.s.candidates[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCandidates) GetDetail(ctx context.Context, id int64) (*models.CandidateDetail, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &models.CandidateDetail{Candidate: *c, ProjectNames: []string{}}
	for _, a := range f.s.assignments {
		if a.CandidateID == id {
			d.AssignmentCount++
			d.ProjectNames = append(d.ProjectNames, f.s.jobOrders[a.JobOrderID].Title)
		}
	}
	return d, nil
}

func (f fakeCandidates) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, c := range f.s.candidates {
		if c.ID != excludeID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeCandidates) Create(_ context.Context, in models.CandidateInput) (*models.Candidate, error) {
	now := time.Now()
	c := &models.Candidate{
		ID: f.s.id(), FirstName: in.FirstName, LastName: in.LastName, Email: in.Email,
		Phone: in.Phone, Skills: in.Skills, ExperienceYears: in.ExperienceYears, ResumeURL: in.ResumeURL,
		Status: in.Status, CreatedAt: now, UpdatedAt: now,
	}
	f.s.candidates[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f fakeCandidates) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error) {
	c, ok := f.s.candidates[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for _, col := range patch.Columns() {
		v, _ := patch.Get(col)
		switch col {
		case "first_name":
			c.FirstName = v.(string)
		case "last_name":
			c.LastName = v.(string)
		case "email":
			c.Email = v.(string)
		case "status":
			c.Status = v.(string)
		case "phone":
			applyString(&c.Phone, v)
		case "skills":
			applyString(&c.Skills, v)
		case "resume_url":
			applyString(&c.ResumeURL, v)
		case "experience_years":
			if v == nil {
				c.ExperienceYears = nil
			} else {
				c.ExperienceYears = floatPtr(v.(float64))
			}
		}
	}
	c.UpdatedAt = time.Now()
	return f.GetByID(ctx, id)
}

func (f fakeCandidates) Delete(_ context.Context, id int64) error {
	if _, ok := f.s.candidates[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.s.candidates, id)
	return nil
}

func (f fakeCandidates) CountAssignments(_ context.Context, id int64) (int64, error) {
	var n int64
	for _, a := range f.s.assignments {
		if a.CandidateID == id {
			n++
		}
	}
	return n, nil
}

func (f fakeCandidates) SearchBySkill(_ context.Context, s models.SkillSearch) ([]models.SkillMatch, error) {
	out := make([]models.SkillMatch, 0)
	for _, c := range f.s.candidates {
		if c.Status != models.CandidateStatusActive || c.Skills == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(*c.Skills), strings.ToLower(s.Skills)) {
			continue
		}
		out = append(out, models.SkillMatch{
			ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email,
			Skills: c.Skills, ExperienceYears: c.ExperienceYears, Status: c.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeCandidates) Stats(context.Context) (*models.CandidateStats, error) {
	return &models.CandidateStats{TotalCandidates: int64(len(f.s.candidates))}, nil
}

func (f fakeCandidates) CountByStatus(context.Context) (*models.StatusCounts, error) {
	return &models.StatusCounts{Counts: []models.StatusCount{}, Total: int64(len(f.s.candidates))}, nil
}

func (f fakeCandidates) BulkUpdateStatus(_ context.Context, ids []int64, status string) (*models.BulkStatusResult, error) {
	res := &models.BulkStatusResult{UpdatedIDs: []int64{}}
	for _, id := range ids {
		if c, ok := f.s.candidates[id]; ok {
			c.Status = status
			res.AffectedRows++
			res.UpdatedIDs = append(res.UpdatedIDs, id)
		}
	}
	return res, nil
}

type fakeClients struct{ s *store }

func (f fakeClients) ListActive(context.Context) ([]models.ClientSummary, error) {
	out := make([]models.ClientSummary, 0)
	for _, c := range f.s.clients {
		if c.Status == models.ClientStatusActive {
			out = append(out, models.ClientSummary{Client: *c})
		}
	}
	return out, nil
}

func (f fakeClients) ListWithStats(context.Context) ([]models.ClientStats, error) {
	return []models.ClientStats{}, nil
}

func (f fakeClients) GetByID(_ context.Context, id int64) (*models.Client, error) {
	c, ok := f.s.clients[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeClients) GetDetail(ctx context.Context, id int64) (*models.ClientDetail, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.ClientDetail{Client: *c, JobOrders: []models.JobOrder{}}, nil
}

func (f fakeClients) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, c := range f.s.clients {
		if c.ID != excludeID && c.CompanyName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeClients) Create(_ context.Context, in models.ClientInput) (*models.Client, error) {
	c := &models.Client{ID: f.s.id(), CompanyName: in.CompanyName, Email: in.Email, Status: in.Status}
	f.s.clients[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f fakeClients) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Client, error) {
	c, ok := f.s.clients[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if v, ok := patch.Get("company_name"); ok {
		c.CompanyName = v.(string)
	}
	if v, ok := patch.Get("status"); ok {
		c.Status = v.(string)
	}
	if v, ok := patch.Get("email"); ok {
		applyString(&c.Email, v)
	}
	return f.GetByID(ctx, id)
}

type fakeJobOrders struct{ s *store }

func (f fakeJobOrders) view(jo *models.JobOrder) models.JobOrderView {
	v := models.JobOrderView{JobOrder: *jo}
	if c, ok := f.s.clients[jo.ClientID]; ok {
		v.CompanyName = c.CompanyName
	}
	return v
}

func (f fakeJobOrders) List(_ context.Context, flt models.JobOrderFilter) ([]models.JobOrderView, error) {
	out := make([]models.JobOrderView, 0)
	for _, jo := range f.s.jobOrders {
		if flt.Status != "" && jo.Status != flt.Status {
			continue
		}
		out = append(out, f.view(jo))
	}
	return out, nil
}

func (f fakeJobOrders) ListOpen(ctx context.Context) ([]models.JobOrderView, error) {
	return f.List(ctx, models.JobOrderFilter{Status: models.JobOrderStatusOpen})
}

func (f fakeJobOrders) GetByID(_ context.Context, id int64) (*models.JobOrder, error) {
	jo, ok := f.s.jobOrders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *jo
	return &cp, nil
}

func (f fakeJobOrders) GetView(_ context.Context, id int64) (*models.JobOrderView, error) {
	jo, ok := f.s.jobOrders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	v := f.view(jo)
	return &v, nil
}

func (f fakeJobOrders) GetDetail(ctx context.Context, id int64) (*models.JobOrderDetail, error) {
	v, err := f.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.JobOrderDetail{JobOrderView: *v, Assignments: []models.AssignmentView{}}, nil
}

func (f fakeJobOrders) Create(_ context.Context, in models.JobOrderInput) (int64, error) {
	jo := &models.JobOrder{
		ID: f.s.id(), Title: in.Title, RequiredSkills: in.RequiredSkills,
		ClientID: in.ClientID, Location: in.Location, Status: in.Status,
	}
	f.s.jobOrders[jo.ID] = jo
	return jo.ID, nil
}

func (f fakeJobOrders) Replace(_ context.Context, id int64, in models.JobOrderInput) error {
	jo, ok := f.s.jobOrders[id]
	if !ok {
		return models.ErrNotFound
	}
	jo.Title = in.Title
	jo.Description = in.Description
	jo.RequiredSkills = in.RequiredSkills
	jo.ExperienceRequired = in.ExperienceRequired
	jo.SalaryRange = in.SalaryRange
	jo.Location = in.Location
	jo.Status = in.Status
	return nil
}

type fakeAssignments struct{ s *store }

func (f fakeAssignments) view(a *models.Assignment) models.AssignmentView {
	v := models.AssignmentView{Assignment: *a}
	if c, ok := f.s.candidates[a.CandidateID]; ok {
		v.CandidateFirstName, v.CandidateLastName, v.CandidateEmail = c.FirstName, c.LastName, c.Email
	}
	if jo, ok := f.s.jobOrders[a.JobOrderID]; ok {
		v.JobTitle = jo.Title
	}
	return v
}

func (f fakeAssignments) filter(keep func(*models.Assignment) bool) []models.AssignmentView {
	out := make([]models.AssignmentView, 0)
	for _, a := range f.s.assignments {
		if keep(a) {
			out = append(out, f.view(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f fakeAssignments) List(_ context.Context, flt models.AssignmentFilter) ([]models.AssignmentView, error) {
	return f.filter(func(a *models.Assignment) bool { return flt.Status == "" || a.Status == flt.Status }), nil
}

func (f fakeAssignments) ListByCandidate(_ context.Context, id int64) ([]models.AssignmentView, error) {
	return f.filter(func(a *models.Assignment) bool { return a.CandidateID == id }), nil
}

func (f fakeAssignments) ListByJobOrder(_ context.Context, id int64) ([]models.AssignmentView, error) {
	return f.filter(func(a *models.Assignment) bool { return a.JobOrderID == id }), nil
}

func (f fakeAssignments) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	a, ok := f.s.assignments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f fakeAssignments) GetView(_ context.Context, id int64) (*models.AssignmentView, error) {
	a, ok := f.s.assignments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	v := f.view(a)
	return &v, nil
}

func (f fakeAssignments) Exists(_ context.Context, candidateID, jobOrderID int64) (bool, error) {
	for _, a := range f.s.assignments {
		if a.CandidateID == candidateID && a.JobOrderID == jobOrderID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeAssignments) Create(_ context.Context, in models.AssignmentInput) (int64, error) {
	a := &models.Assignment{
		ID: f.s.id(), CandidateID: in.CandidateID, JobOrderID: in.JobOrderID,
		Status: in.Status, Notes: in.Notes, AssignedDate: time.Now(),
	}
	f.s.assignments[a.ID] = a
	return a.ID, nil
}

func (f fakeAssignments) UpdateStatus(_ context.Context, id int64, patch *querybuilder.Patch, placed bool) error {
	if f.s.failWith != nil {
		return f.s.failWith
	}
	a, ok := f.s.assignments[id]
	if !ok {
		return models.ErrNotFound
	}
	if v, ok := patch.Get("status"); ok {
		a.Status = v.(string)
	}
	if v, ok := patch.Get("notes"); ok {
		applyString(&a.Notes, v)
	}
	if placed {
		f.s.jobOrders[a.JobOrderID].Status = models.JobOrderStatusFilled
		f.s.candidates[a.CandidateID].Status = models.CandidateStatusPlaced
	}
	return nil
}

// ==========================
// Recorder and cache doubles
// ==========================

type recordingRecorder struct {
	created     []string
	transitions [][2]string
}

func (r *recordingRecorder) RecordEntityCreated(_ context.Context, entity string) {
	r.created = append(r.created, entity)
}

func (r *recordingRecorder) RecordAssignmentTransition(_ context.Context, from, to string) {
	r.transitions = append(r.transitions, [2]string{from, to})
}

var errBoom = errors.New("connection refused")
