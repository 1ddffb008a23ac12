package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "staffing-api/internal/common/errors"
)

// responder writes success envelopes and turns errors into failure envelopes.
type responder struct {
	errors *apperrors.ErrorHandler
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func okCount[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": len(data)})
}

func okMessage(c *gin.Context, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

func created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message, "data": data})
}

func (r *responder) fail(c *gin.Context, err error) {
	stdErr := r.errors.Handle(c.Request.Context(), err, map[string]interface{}{
		"requestId": requestID(c),
		"method":    c.Request.Method,
		"path":      c.Request.URL.Path,
	})
	c.AbortWithStatusJSON(stdErr.Status(), errorBody(stdErr, r.errors.ExposeDetails()))
}

func errorBody(e *apperrors.StandardError, exposeDetails bool) gin.H {
	switch e.Code {
	case apperrors.ErrCodeValidationFailed, apperrors.ErrCodeInvalidQuery, apperrors.ErrCodeInvalidParams:
		return gin.H{"success": false, "error": e.Message, "message": e.Hint, "details": e.Fields}
	case apperrors.ErrCodeRouteNotFound:
		return gin.H{
			"success": false,
			"message": e.Message,
			"path":    e.Metadata["path"],
			"method":  e.Metadata["method"],
		}
	}

	if e.Status() >= http.StatusInternalServerError {
		detail := "Something went wrong"
		if exposeDetails && e.Details != "" {
			detail = e.Details
		}
		return gin.H{"success": false, "message": "Internal server error", "error": detail}
	}
	return gin.H{"success": false, "error": e.Message}
}
