package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"go.uber.org/zap"
)

// Options configures the middleware chain
type Options struct {
	AllowedOrigins []string
	// Limiter is optional; nil disables rate limiting
	Limiter middleware.Limiter
	// Metrics is optional; nil disables request metrics
	Metrics *middleware.Metrics
	Logger  *zap.Logger
}

// operationalPaths are probed by orchestrators and scrapers, not users
var operationalPaths = []string{"/health", "/api/health", "/metrics"}

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(opts Options, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger, operationalPaths...),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Handler())
	}
	if opts.Limiter != nil {
		router.Use(middleware.RateLimit(opts.Limiter, opts.Logger, opts.Metrics, operationalPaths...))
	}

	api.RegisterRoutes(router, deps)
	return router
}
