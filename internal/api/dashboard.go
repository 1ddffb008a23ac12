package api

import "github.com/gin-gonic/gin"

type dashboardHandler struct {
	*responder
	svc DashboardService
}

func (h *dashboardHandler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, stats)
}

func (h *dashboardHandler) recentActivity(c *gin.Context) {
	act, err := h.svc.RecentActivity(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	ok(c, act)
}
