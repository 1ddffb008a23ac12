package controllers

import (
	"context"
	"errors"
	"time"

	"staffing-api/internal/common/database"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/common/metrics"
	"staffing-api/internal/models"
)

const dashboardStatsKey = "dashboard:stats"

type DashboardController struct {
	repo   DashboardRepository
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

// NewDashboardController caches Stats for ttl when cache is non-nil and ttl is
// positive. Writes do not invalidate the cached value.
func NewDashboardController(repo DashboardRepository, cache Cache, ttl time.Duration, log logger.Logger) *DashboardController {
	return &DashboardController{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"controller": "dashboard"}),
	}
}

func (c *DashboardController) cacheEnabled() bool {
	return c.cache != nil && c.ttl > 0
}

func (c *DashboardController) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if c.cacheEnabled() {
		var cached models.DashboardStats
		err := c.cache.GetJSON(ctx, dashboardStatsKey, &cached)
		switch {
		case err == nil:
			metrics.DashboardCacheResults.WithLabelValues("hit").Inc()
			return &cached, nil
		case errors.Is(err, database.ErrCacheMiss):
			metrics.DashboardCacheResults.WithLabelValues("miss").Inc()
		default:
			metrics.DashboardCacheResults.WithLabelValues("error").Inc()
			c.logger.Warn("dashboard cache read failed", map[string]interface{}{"error": err.Error()})
		}
	}

	stats, err := c.repo.Stats(ctx)
	if err != nil {
		return nil, storeError("dashboard stats", err)
	}

	skills, err := c.repo.OpenJobSkills(ctx)
	if err != nil {
		return nil, storeError("open job skills", err)
	}
	stats.TopSkills = TallySkills(skills)

	if c.cacheEnabled() {
		if err := c.cache.SetJSON(ctx, dashboardStatsKey, stats, c.ttl); err != nil {
			c.logger.Warn("dashboard cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return stats, nil
}

func (c *DashboardController) RecentActivity(ctx context.Context) (*models.RecentActivity, error) {
	act, err := c.repo.RecentActivity(ctx)
	if err != nil {
		return nil, storeError("recent activity", err)
	}
	return act, nil
}
