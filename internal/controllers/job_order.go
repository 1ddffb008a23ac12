package controllers

import (
	"context"
	"errors"

	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/models"
)

const (
	msgJobOrderNotFound = "Job order not found"
	msgClientInactive   = "Client not found or inactive"
)

type JobOrderController struct {
	repo     JobOrderRepository
	clients  ClientRepository
	recorder Recorder
	logger   logger.Logger
}

func NewJobOrderController(repo JobOrderRepository, clients ClientRepository, recorder Recorder, log logger.Logger) *JobOrderController {
	return &JobOrderController{
		repo:     repo,
		clients:  clients,
		recorder: recorderOrNop(recorder),
		logger:   log.WithFields(map[string]interface{}{"controller": "job_order"}),
	}
}

func (c *JobOrderController) List(ctx context.Context, f models.JobOrderFilter) ([]models.JobOrderView, error) {
	out, err := c.repo.List(ctx, f)
	if err != nil {
		return nil, storeError("list job orders", err)
	}
	return out, nil
}

func (c *JobOrderController) ListOpen(ctx context.Context) ([]models.JobOrderView, error) {
	out, err := c.repo.ListOpen(ctx)
	if err != nil {
		return nil, storeError("list open job orders", err)
	}
	return out, nil
}

func (c *JobOrderController) Get(ctx context.Context, id int64) (*models.JobOrderDetail, error) {
	d, err := c.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, lookupError("get job order", err, msgJobOrderNotFound)
	}
	return d, nil
}

// Create opens a job order under an active client.
func (c *JobOrderController) Create(ctx context.Context, in models.JobOrderInput) (*models.JobOrderView, error) {
	client, err := c.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, lookupError("get client", err, msgClientInactive)
	}
	if client.Status != models.ClientStatusActive {
		return nil, apperrors.NewNotFoundError(msgClientInactive)
	}

	if in.Status == "" {
		in.Status = models.JobOrderStatusOpen
	}

	id, err := c.repo.Create(ctx, in)
	if errors.Is(err, models.ErrNotFound) {
		return nil, apperrors.NewNotFoundError(msgClientInactive)
	}
	if err != nil {
		return nil, storeError("create job order", err)
	}

	c.recorder.RecordEntityCreated(ctx, "job_order")
	c.logger.Info("job order created", map[string]interface{}{"jobOrderId": id, "clientId": in.ClientID})

	v, err := c.repo.GetView(ctx, id)
	if err != nil {
		return nil, lookupError("get job order", err, msgJobOrderNotFound)
	}
	return v, nil
}

// Update replaces every editable field. Any status may follow any other.
func (c *JobOrderController) Update(ctx context.Context, id int64, in models.JobOrderInput) (*models.JobOrderView, error) {
	existing, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError("get job order", err, msgJobOrderNotFound)
	}

	if err := c.repo.Replace(ctx, id, in); err != nil {
		return nil, lookupError("update job order", err, msgJobOrderNotFound)
	}

	if existing.Status != in.Status {
		c.logger.Info("job order status changed", map[string]interface{}{
			"jobOrderId": id,
			"from":       existing.Status,
			"to":         in.Status,
		})
	}

	v, err := c.repo.GetView(ctx, id)
	if err != nil {
		return nil, lookupError("get job order", err, msgJobOrderNotFound)
	}
	return v, nil
}
