package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/service"
	"go.uber.org/zap"
)

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the status of the API and its dependencies
type HealthHandler struct {
	checks  map[string]HealthCheck
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second, logger: logger}
}

// Health answers 200 when every dependency responds and 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	components := make(gin.H, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}
	c.JSON(status, gin.H{
		"status":     state,
		"components": components,
	})
}

// Dependencies are the services the HTTP routes are built from
type Dependencies struct {
	Recipes   service.IRecipeService
	MealPlans service.IMealPlanService
	Health    map[string]HealthCheck
	Metrics   http.Handler
	Logger    *zap.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	health := NewHealthHandler(deps.Health, deps.Logger)
	router.GET("/health", health.Health)
	router.GET("/api/health", health.Health)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := router.Group("/api")
	NewRecipeHandler(deps.Recipes, deps.Logger).RegisterRoutes(api)
	NewMealPlanHandler(deps.MealPlans, deps.Logger).RegisterRoutes(api)
}
