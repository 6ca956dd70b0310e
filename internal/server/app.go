package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/mealplan"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/router"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns the server together with the connections it was built on
type App struct {
	*Server
	db    *database.DB
	redis *redis.Client
}

// NewApp connects to the configured backends and assembles the server.
// Redis is optional: when it cannot be reached the app runs without the
// recipe cache and with in-process rate limiting.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, cfg.Database, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without it", zap.Error(err))
			rdb = nil
		}
	}

	source, err := mealplan.NewSource(ctx, cfg)
	if err != nil {
		closeAll(db, rdb)
		return nil, err
	}

	handler, err := Handler(ctx, cfg, db, rdb, source, logger)
	if err != nil {
		closeAll(db, rdb)
		return nil, err
	}

	return &App{
		Server: New(cfg.Server, handler, logger),
		db:     db,
		redis:  rdb,
	}, nil
}

// Close releases the database and Redis connections
func (a *App) Close() error {
	return closeAll(a.db, a.redis)
}

func closeAll(db *database.DB, rdb *redis.Client) error {
	var firstErr error
	if rdb != nil {
		firstErr = rdb.Close()
	}
	if err := db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Handler wires services, middleware and routes over already opened
// connections. rdb may be nil.
func Handler(ctx context.Context, cfg *config.Config, db *database.DB, rdb *redis.Client, source mealplan.Source, logger *zap.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		db.StatsCollector(cfg.Database.Name),
	)
	metrics := middleware.NewMetrics(reg)

	var recipes service.IRecipeService = service.NewRecipeService(db.ORM)
	if rdb != nil && cfg.Cache.TTL > 0 {
		recipes = service.NewCachedRecipeService(recipes, service.NewRedisCache(rdb), cfg.Cache.TTL, logger)
	}

	plans, err := service.NewMealPlanService(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plans: %w", err)
	}
	logger.Info("Loaded meal plan catalog", zap.String("source", cfg.MealPlan.Source))

	health := map[string]api.HealthCheck{"database": db.HealthCheck}
	if rdb != nil {
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return router.SetupRouter(router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Limiter:        newLimiter(cfg.RateLimit, rdb),
		Metrics:        metrics,
		Logger:         logger,
	}, api.Dependencies{
		Recipes:   recipes,
		MealPlans: plans,
		Health:    health,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:    logger,
	}), nil
}

// newLimiter shares limits across replicas through Redis when it is available
func newLimiter(cfg config.RateLimitConfig, rdb *redis.Client) middleware.Limiter {
	if !cfg.Enabled {
		return nil
	}
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     cfg.RequestsPerMinute,
			KeyPrefix: "ratelimit",
		})
	}
	return middleware.NewLocalLimiter(cfg.RequestsPerMinute, cfg.Burst)
}
