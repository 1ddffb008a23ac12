package controllers

import (
	"errors"

	"staffing-api/internal/common/database"
	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/models"
)

// storeError maps an unexpected repository failure to a StandardError.
func storeError(operation string, err error) error {
	if database.IsValueTooLong(err) {
		return apperrors.NewBadRequestError("One or more fields exceed maximum length")
	}
	return apperrors.NewPersistenceError(operation, err)
}

// lookupError maps ErrNotFound to a 404 with message and everything else to a
// persistence failure.
func lookupError(operation string, err error, message string) error {
	if errors.Is(err, models.ErrNotFound) {
		return apperrors.NewNotFoundError(message)
	}
	return storeError(operation, err)
}
