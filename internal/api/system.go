package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"staffing-api/internal/common/config"
)

const healthTimeout = 2 * time.Second

type systemHandler struct {
	app      config.AppConfig
	basePath string
	database Pinger
	cache    Pinger
}

// health pings the database and, when configured, the cache. A database
// failure answers 503; a cache failure only degrades the status.
func (h *systemHandler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	body := gin.H{
		"status":      "OK",
		"database":    "Connected",
		"server":      "Running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.app.Environment,
	}

	if err := h.database.Ping(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "Degraded"
		body["database"] = "Disconnected"
		body["error"] = err.Error()
	}

	if h.cache != nil {
		body["cache"] = "Connected"
		if err := h.cache.Ping(ctx); err != nil {
			body["status"] = "Degraded"
			body["cache"] = "Disconnected"
		}
	}

	c.JSON(status, body)
}

func (h *systemHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   h.app.Name,
		"version":   h.app.Version,
		"database":  "PostgreSQL",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *systemHandler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        h.app.Name,
		"version":     h.app.Version,
		"description": "Backend API for staffing management",
		"database":    "PostgreSQL",
		"endpoints": gin.H{
			"candidates":  h.basePath + "/candidates",
			"clients":     h.basePath + "/clients",
			"jobOrders":   h.basePath + "/job-orders",
			"assignments": h.basePath + "/assignments",
			"dashboard":   h.basePath + "/dashboard",
			"health":      "/health",
			"metrics":     "/metrics",
		},
	})
}
