package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffing-api/internal/common/config"
	apperrors "staffing-api/internal/common/errors"
	"staffing-api/internal/common/logger"
)

// Deps is everything the router needs. Cache may be nil.
type Deps struct {
	App    config.AppConfig
	Server config.ServerConfig
	Logger logger.Logger

	Candidates  CandidateService
	Clients     ClientService
	JobOrders   JobOrderService
	Assignments AssignmentService
	Dashboard   DashboardService

	Database Pinger
	Cache    Pinger
}

// NewRouter builds the gin engine with the middleware chain and every route.
func NewRouter(d Deps) *gin.Engine {
	r := &responder{errors: apperrors.NewErrorHandler(d.Logger, d.App.IsDevelopment())}

	basePath := d.Server.BasePath
	if basePath == "" {
		basePath = "/api"
	}

	engine := gin.New()
	engine.Use(RequestID(), Metrics(), RequestLogger(d.Logger), r.Recovery(), CORS(d.Server.CORSAllowedOrigins))

	sys := &systemHandler{app: d.App, basePath: basePath, database: d.Database, cache: d.Cache}
	engine.GET("/", sys.root)
	engine.GET("/health", sys.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group(basePath)
	api.GET("/info", sys.info)

	candidates := &candidateHandler{responder: r, svc: d.Candidates}
	{
		g := api.Group("/candidates")
		g.GET("", candidates.list)
		g.GET("/stats", candidates.statistics)
		g.GET("/count-by-status", candidates.countByStatus)
		g.GET("/search/skills", candidates.searchBySkill)
		g.GET("/:id", candidates.get)
		g.POST("", candidates.create)
		g.POST("/bulk-status", candidates.bulkStatus)
		g.PUT("/:id", candidates.update)
		g.DELETE("/:id", candidates.delete)
	}

	clients := &clientHandler{responder: r, svc: d.Clients}
	{
		g := api.Group("/clients")
		g.GET("", clients.list)
		g.GET("/stats", clients.stats)
		g.GET("/:id", clients.get)
		g.POST("", clients.create)
		g.PUT("/:id", clients.update)
	}

	jobOrders := &jobOrderHandler{responder: r, svc: d.JobOrders}
	{
		g := api.Group("/job-orders")
		g.GET("", jobOrders.list)
		g.GET("/open", jobOrders.listOpen)
		g.GET("/:id", jobOrders.get)
		g.POST("", jobOrders.create)
		g.PUT("/:id", jobOrders.update)
	}

	assignments := &assignmentHandler{responder: r, svc: d.Assignments}
	{
		g := api.Group("/assignments")
		g.GET("", assignments.list)
		g.GET("/candidate/:id", assignments.listByCandidate)
		g.GET("/job-order/:id", assignments.listByJobOrder)
		g.POST("", assignments.create)
		g.PUT("/:id/status", assignments.updateStatus)
	}

	dashboard := &dashboardHandler{responder: r, svc: d.Dashboard}
	{
		g := api.Group("/dashboard")
		g.GET("/stats", dashboard.stats)
		g.GET("/recent-activity", dashboard.recentActivity)
	}

	engine.NoRoute(func(c *gin.Context) {
		r.fail(c, apperrors.NewRouteNotFoundError(c.Request.Method, c.Request.URL.Path))
	})

	return engine
}
