// cmd/staffing-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"staffing-api/internal/api"
	"staffing-api/internal/common/config"
	"staffing-api/internal/common/database"
	"staffing-api/internal/common/logger"
	"staffing-api/internal/common/observability"
	"staffing-api/internal/controllers"
	assignmentrepo "staffing-api/internal/repository/assignment"
	candidaterepo "staffing-api/internal/repository/candidate"
	clientrepo "staffing-api/internal/repository/client"
	dashboardrepo "staffing-api/internal/repository/dashboard"
	joborderrepo "staffing-api/internal/repository/joborder"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting staffing API",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(ctx, func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		return err
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	if cfg.Database.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, pg.DB); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
		zapLog.Info("Schema migrated")
	}

	// --- Init Redis (optional) ---
	var (
		cache       controllers.Cache
		cachePinger api.Pinger
	)
	if cfg.Database.Redis.Enabled() {
		redis := database.NewRedis(cfg.Database.Redis)
		if err := redis.Ping(ctx); err != nil {
			zapLog.Warn("Redis unavailable, dashboard cache reads will fall back to PostgreSQL", zap.Error(err))
		} else {
			zapLog.Info("Redis connected successfully")
		}
		defer redis.Close()
		cache, cachePinger = redis, redis
	}

	obs, err := observability.New(cfg.App.Name, nil)
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			zapLog.Warn("observability shutdown failed", zap.Error(err))
		}
	}()

	// --- Wire repositories and controllers ---
	candidates := candidaterepo.New(pg.DB)
	clients := clientrepo.New(pg.DB)
	jobOrders := joborderrepo.New(pg.DB)
	assignments := assignmentrepo.New(pg.DB)
	dashboard := dashboardrepo.New(pg.DB)

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := api.NewRouter(api.Deps{
		App:         cfg.App,
		Server:      cfg.Server,
		Logger:      log,
		Candidates:  controllers.NewCandidateController(candidates, obs, log),
		Clients:     controllers.NewClientController(clients, obs, log),
		JobOrders:   controllers.NewJobOrderController(jobOrders, clients, obs, log),
		Assignments: controllers.NewAssignmentController(assignments, candidates, jobOrders, obs, log),
		Dashboard:   controllers.NewDashboardController(dashboard, cache, config.GetDuration(cfg.Cache.DashboardTTL), log),
		Database:    pg,
		Cache:       cachePinger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		zapLog.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("basePath", cfg.Server.BasePath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	// --- Graceful Shutdown ---
	group.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, draining HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		zapLog.Error("Staffing API stopped with error", zap.Error(err))
		return err
	}
	zapLog.Info("Staffing API stopped gracefully")
	return nil
}
