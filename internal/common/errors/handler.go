// internal/common/errors/handler.go
package errors

import (
	"context"
	"errors"
	"time"
)

// ErrorHandler turns arbitrary errors into StandardErrors and logs them.
type ErrorHandler struct {
	logger        Logger
	exposeDetails bool
}

type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NewErrorHandler builds a handler. exposeDetails keeps the underlying error text
// on 5xx responses and should only be set in development.
func NewErrorHandler(logger Logger, exposeDetails bool) *ErrorHandler {
	return &ErrorHandler{logger: logger, exposeDetails: exposeDetails}
}

// ExposeDetails reports whether 5xx responses may carry the underlying error text.
func (h *ErrorHandler) ExposeDetails() bool {
	return h.exposeDetails
}

// Handle normalizes err and logs it with the request scope fields. Server
// errors are logged at error level, client errors at debug.
func (h *ErrorHandler) Handle(ctx context.Context, err error, fields map[string]interface{}) *StandardError {
	stdErr := h.normalizeError(ctx, err)
	h.logError(stdErr, fields)
	return stdErr
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(ctx context.Context, err error) *StandardError {
	if stdErr, ok := As(err); ok {
		return stdErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return &StandardError{
			Code:      ErrCodeInternal,
			Message:   "Internal server error",
			Details:   "request cancelled: " + err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
			cause:     err,
		}
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(stdErr *StandardError, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"status":        stdErr.Status(),
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if stdErr.Details != "" {
		entry["details"] = stdErr.Details
	}
	if len(stdErr.Fields) > 0 {
		entry["violations"] = len(stdErr.Fields)
	}
	for k, v := range fields {
		entry[k] = v
	}

	if stdErr.Status() >= 500 {
		h.logger.Error("Request failed", entry)
		return
	}
	h.logger.Debug("Request rejected", entry)
}
