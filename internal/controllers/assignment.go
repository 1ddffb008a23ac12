package controllers

import (
	"context"
	"errors"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/common/querybuilder"
	"staffing-api/internal/models"
)

const (
	msgAssignmentNotFound = "Assignment not found"
	msgCandidateInactive  = "Cannot assign inactive candidate"
	msgJobOrderNotOpen    = "Cannot assign to closed or filled job order"
	msgAlreadyAssigned    = "Candidate already assigned to this job order"
	msgInvalidStatus      = "Invalid status"
)

var assignmentStatuses = map[string]bool{
	models.AssignmentStatusApplied:      true,
	models.AssignmentStatusInterviewing: true,
	models.AssignmentStatusOffered:      true,
	models.AssignmentStatusPlaced:       true,
	models.AssignmentStatusRejected:     true,
}

type AssignmentController struct {
	repo       AssignmentRepository
	candidates CandidateRepository
	jobOrders  JobOrderRepository
	recorder   Recorder
	logger     logger.Logger
}

func NewAssignmentController(
	repo AssignmentRepository,
	candidates CandidateRepository,
	jobOrders JobOrderRepository,
	recorder Recorder,
	log logger.Logger,
) *AssignmentController {
	return &AssignmentController{
		repo:       repo,
		candidates: candidates,
		jobOrders:  jobOrders,
		recorder:   recorderOrNop(recorder),
		logger:     log.WithFields(map[string]interface{}{"controller": "assignment"}),
	}
}

func (c *AssignmentController) List(ctx context.Context, f models.AssignmentFilter) ([]models.AssignmentView, error) {
	out, err := c.repo.List(ctx, f)
	if err != nil {
		return nil, storeError("list assignments", err)
	}
	return out, nil
}

func (c *AssignmentController) ListByCandidate(ctx context.Context, candidateID int64) ([]models.AssignmentView, error) {
	out, err := c.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, storeError("list candidate assignments", err)
	}
	return out, nil
}

func (c *AssignmentController) ListByJobOrder(ctx context.Context, jobOrderID int64) ([]models.AssignmentView, error) {
	out, err := c.repo.ListByJobOrder(ctx, jobOrderID)
	if err != nil {
		return nil, storeError("list job order assignments", err)
	}
	return out, nil
}

// Create links an active candidate to an open job order. A pair can be linked once.
func (c *AssignmentController) Create(ctx context.Context, in models.AssignmentInput) (*models.AssignmentView, error) {
	candidate, err := c.candidates.GetByID(ctx, in.CandidateID)
	if err != nil {
		return nil, lookupError("get candidate", err, msgCandidateNotFound)
	}
	if candidate.Status != models.CandidateStatusActive {
		return nil, apperrors.NewBadRequestError(msgCandidateInactive)
	}

	job, err := c.jobOrders.GetByID(ctx, in.JobOrderID)
	if err != nil {
		return nil, lookupError("get job order", err, msgJobOrderNotFound)
	}
	if job.Status != models.JobOrderStatusOpen {
		return nil, apperrors.NewBadRequestError(msgJobOrderNotOpen)
	}

	exists, err := c.repo.Exists(ctx, in.CandidateID, in.JobOrderID)
	if err != nil {
		return nil, storeError("check assignment", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(msgAlreadyAssigned)
	}

	if in.Status == "" {
		in.Status = models.AssignmentStatusApplied
	}

	id, err := c.repo.Create(ctx, in)
	switch {
	case errors.Is(err, models.ErrAlreadyExists):
		return nil, apperrors.NewConflictError(msgAlreadyAssigned)
	case errors.Is(err, models.ErrNotFound):
		return nil, apperrors.NewNotFoundError(msgJobOrderNotFound)
	case err != nil:
		return nil, storeError("create assignment", err)
	}

	c.recorder.RecordEntityCreated(ctx, "assignment")
	c.logger.Info("assignment created", map[string]interface{}{
		"assignmentId": id,
		"candidateId":  in.CandidateID,
		"jobOrderId":   in.JobOrderID,
	})

	v, err := c.repo.GetView(ctx, id)
	if err != nil {
		return nil, lookupError("get assignment", err, msgAssignmentNotFound)
	}
	return v, nil
}

// UpdateStatus moves an assignment to the status in patch, optionally with new
// notes. Reaching placed also fills the job order and places the candidate.
func (c *AssignmentController) UpdateStatus(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.AssignmentView, error) {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("get assignment", err, msgAssignmentNotFound)
	}

	v, _ := patch.Get("status")
	status, _ := v.(string)
	if !assignmentStatuses[status] {
		return nil, apperrors.NewBadRequestError(msgInvalidStatus)
	}

	placed := status == models.AssignmentStatusPlaced
	if err := c.repo.UpdateStatus(ctx, id, patch, placed); err != nil {
		return nil, lookupError("update assignment status", err, msgAssignmentNotFound)
	}

	if existing.Status != status {
		c.recorder.RecordAssignmentTransition(ctx, existing.Status, status)
	}
	c.logger.Info("assignment status updated", map[string]interface{}{
		"assignmentId": id,
		"from":         existing.Status,
		"to":           status,
		"cascade":      placed,
	})

	view, err := c.repo.GetView(ctx, id)
	if err != nil {
		return nil, lookupError("get assignment", err, msgAssignmentNotFound)
	}
	return view, nil
}
