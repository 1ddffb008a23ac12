package controllers

import (
	"context"
	"errors"
	"strings"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

const (
	msgCandidateNotFound = "Candidate not found"
	msgDuplicateEmail    = "A candidate with this email already exists"
	msgNoUpdateFields    = "No fields provided for update"
	msgCandidateAssigned = "Cannot delete candidate with existing assignments. Remove assignments first."
	msgSkillsRequired    = "Skills parameter is required for search"
	msgNoBulkCandidates  = "No candidates found with the provided IDs"
)

type CandidateController struct {
	repo     CandidateRepository
	recorder Recorder
	logger   logger.Logger
}

func NewCandidateController(repo CandidateRepository, recorder Recorder, log logger.Logger) *CandidateController {
	return &CandidateController{
		repo:     repo,
		recorder: recorderOrNop(recorder),
		logger:   log.WithFields(map[string]interface{}{"controller": "candidate"}),
	}
}

// List returns one page of candidates and its pagination metadata.
func (c *CandidateController) List(ctx context.Context, f models.CandidateFilter) ([]models.Candidate, querybuilder.Pagination, error) {
	out, total, err := c.repo.List(ctx, f)
	if err != nil {
		return nil, querybuilder.Pagination{}, storeError("list candidates", err)
	}
	return out, f.Page.Pagination(total), nil
}

func (c *CandidateController) Get(ctx context.Context, id int64) (*models.CandidateDetail, error) {
	d, err := c.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, lookupError("get candidate", err, msgCandidateNotFound)
	}
	return d, nil
}

// Create stores a new candidate. Emails are unique case-insensitively and are
// stored lowercase.
func (c *CandidateController) Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error) {
	in.Email = strings.ToLower(in.Email)
	if in.Status == "" {
		in.Status = models.CandidateStatusActive
	}

	exists, err := c.repo.EmailExists(ctx, in.Email, 0)
	if err != nil {
		return nil, storeError("check candidate email", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(msgDuplicateEmail)
	}

	created, err := c.repo.Create(ctx, in)
	if errors.Is(err, models.ErrAlreadyExists) {
		return nil, apperrors.NewConflictError(msgDuplicateEmail)
	}
	if err != nil {
		return nil, storeError("create candidate", err)
	}

	c.recorder.RecordEntityCreated(ctx, "candidate")
	c.logger.Info("candidate created", map[string]interface{}{"candidateId": created.ID})
	return created, nil
}

// Update applies a partial update. Columns absent from patch are left as is.
func (c *CandidateController) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Candidate, error) {
	if _, err := c.repo.GetByID(ctx, id); err != nil {
		return nil, lookupError("get candidate", err, msgCandidateNotFound)
	}

	if v, ok := patch.Get("email"); ok {
		if email, isString := v.(string); isString {
			email = strings.ToLower(email)
			patch.Set("email", email)

			exists, err := c.repo.EmailExists(ctx, email, id)
			if err != nil {
				return nil, storeError("check candidate email", err)
			}
			if exists {
				return nil, apperrors.NewConflictError(msgDuplicateEmail)
			}
		}
	}

	if patch.Len() == 0 {
		return nil, apperrors.NewBadRequestError(msgNoUpdateFields)
	}

	updated, err := c.repo.Update(ctx, id, patch)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, apperrors.NewNotFoundError(msgCandidateNotFound)
	case errors.Is(err, models.ErrAlreadyExists):
		return nil, apperrors.NewConflictError(msgDuplicateEmail)
	case err != nil:
		return nil, storeError("update candidate", err)
	}

	c.logger.Info("candidate updated", map[string]interface{}{"candidateId": id, "fields": patch.Columns()})
	return updated, nil
}

// Delete removes a candidate that has no assignments.
func (c *CandidateController) Delete(ctx context.Context, id int64) error {
	if _, err := c.repo.GetByID(ctx, id); err != nil {
		return lookupError("get candidate", err, msgCandidateNotFound)
	}

	n, err := c.repo.CountAssignments(ctx, id)
	if err != nil {
		return storeError("count candidate assignments", err)
	}
	if n > 0 {
		return apperrors.NewStateError(msgCandidateAssigned)
	}

	err = c.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, models.ErrInUse):
		return apperrors.NewStateError(msgCandidateAssigned)
	case errors.Is(err, models.ErrNotFound):
		return apperrors.NewNotFoundError(msgCandidateNotFound)
	case err != nil:
		return storeError("delete candidate", err)
	}

	c.logger.Info("candidate deleted", map[string]interface{}{"candidateId": id})
	return nil
}

// SearchBySkill ranks active candidates whose skills contain the keyword.
func (c *CandidateController) SearchBySkill(ctx context.Context, s models.SkillSearch) ([]models.SkillMatch, error) {
	if s.Skills == "" {
		return nil, apperrors.NewBadRequestError(msgSkillsRequired)
	}

	matches, err := c.repo.SearchBySkill(ctx, s)
	if err != nil {
		return nil, storeError("search candidates by skill", err)
	}
	return RankSkillMatches(matches, s.Skills), nil
}

func (c *CandidateController) Statistics(ctx context.Context) (*models.CandidateStats, error) {
	stats, err := c.repo.Stats(ctx)
	if err != nil {
		return nil, storeError("candidate statistics", err)
	}
	return stats, nil
}

func (c *CandidateController) CountByStatus(ctx context.Context) (*models.StatusCounts, error) {
	counts, err := c.repo.CountByStatus(ctx)
	if err != nil {
		return nil, storeError("count candidates by status", err)
	}
	return counts, nil
}

// BulkUpdateStatus fails with 404 when none of the ids exist.
func (c *CandidateController) BulkUpdateStatus(ctx context.Context, in models.BulkStatusInput) (*models.BulkStatusResult, error) {
	res, err := c.repo.BulkUpdateStatus(ctx, in.CandidateIDs, in.Status)
	if err != nil {
		return nil, storeError("bulk update candidate status", err)
	}
	if res.AffectedRows == 0 {
		return nil, apperrors.NewNotFoundError(msgNoBulkCandidates)
	}

	c.logger.Info("candidate status updated in bulk", map[string]interface{}{
		"status":       in.Status,
		"affectedRows": res.AffectedRows,
	})
	return res, nil
}
