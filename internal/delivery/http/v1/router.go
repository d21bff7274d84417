package v1

import (
	"context"
	"time"

	"go-matching-backend/config"
	"go-matching-backend/internal/delivery/http/middleware"
	"go-matching-backend/internal/domain"
	"go-matching-backend/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	// Context bounds background work started by middleware; nil never stops.
	Context  context.Context
	MatchUC  domain.MatchUsecase
	HealthUC usecase.HealthUsecase
	Validate *validator.Validate
	// Gatherer backs /v1/metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(deps.Context, middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	if deps.Gatherer != nil {
		v1.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		runLimiter := middleware.RateLimitMiddleware(deps.Context, middleware.RunRateLimitConfig(cfg.RateLimitRunThreshold, window))
		NewMatchHandler(v1, protected, runLimiter, deps.MatchUC, deps.Validate, cfg.MatchMaxBatchSize)
	}

	return r
}
