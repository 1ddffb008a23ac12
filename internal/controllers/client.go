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
	msgClientNotFound = "Client not found"
	msgDuplicateName  = "A client with this company name already exists"
)

type ClientController struct {
	repo     ClientRepository
	recorder Recorder
	logger   logger.Logger
}

func NewClientController(repo ClientRepository, recorder Recorder, log logger.Logger) *ClientController {
	return &ClientController{
		repo:     repo,
		recorder: recorderOrNop(recorder),
		logger:   log.WithFields(map[string]interface{}{"controller": "client"}),
	}
}

// List returns active clients with their open job counts.
func (c *ClientController) List(ctx context.Context) ([]models.ClientSummary, error) {
	out, err := c.repo.ListActive(ctx)
	if err != nil {
		return nil, storeError("list clients", err)
	}
	return out, nil
}

func (c *ClientController) ListWithStats(ctx context.Context) ([]models.ClientStats, error) {
	out, err := c.repo.ListWithStats(ctx)
	if err != nil {
		return nil, storeError("list client statistics", err)
	}
	return out, nil
}

func (c *ClientController) Get(ctx context.Context, id int64) (*models.ClientDetail, error) {
	d, err := c.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, lookupError("get client", err, msgClientNotFound)
	}
	return d, nil
}

func (c *ClientController) Create(ctx context.Context, in models.ClientInput) (*models.Client, error) {
	if in.Status == "" {
		in.Status = models.ClientStatusActive
	}

	exists, err := c.repo.NameExists(ctx, in.CompanyName, 0)
	if err != nil {
		return nil, storeError("check client name", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(msgDuplicateName)
	}

	created, err := c.repo.Create(ctx, in)
	if errors.Is(err, models.ErrAlreadyExists) {
		return nil, apperrors.NewConflictError(msgDuplicateName)
	}
	if err != nil {
		return nil, storeError("create client", err)
	}

	c.recorder.RecordEntityCreated(ctx, "client")
	c.logger.Info("client created", map[string]interface{}{"clientId": created.ID})
	return created, nil
}

// Update applies a partial update to an existing client.
func (c *ClientController) Update(ctx context.Context, id int64, patch *querybuilder.Patch) (*models.Client, error) {
	if _, err := c.repo.GetByID(ctx, id); err != nil {
		return nil, lookupError("get client", err, msgClientNotFound)
	}

	if v, ok := patch.Get("company_name"); ok {
		if name, isString := v.(string); isString {
			exists, err := c.repo.NameExists(ctx, name, id)
			if err != nil {
				return nil, storeError("check client name", err)
			}
			if exists {
				return nil, apperrors.NewConflictError(msgDuplicateName)
			}
		}
	}

	if patch.Len() == 0 {
		return nil, apperrors.NewBadRequestError(msgNoUpdateFields)
	}

	updated, err := c.repo.Update(ctx, id, patch)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, apperrors.NewNotFoundError(msgClientNotFound)
	case errors.Is(err, models.ErrAlreadyExists):
		return nil, apperrors.NewConflictError(msgDuplicateName)
	case err != nil:
		return nil, storeError("update client", err)
	}

	c.logger.Info("client updated", map[string]interface{}{"clientId": id, "fields": patch.Columns()})
	return updated, nil
}
