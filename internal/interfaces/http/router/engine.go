// Package router assembles the gin engine, its middleware chain and the
// versioned API routes.
package router

import (
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/interfaces/http/handler"
	"github.com/erp/stockledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EngineConfig carries everything NewEngine wires into the middleware chain
type EngineConfig struct {
	Logger     *zap.Logger
	APIVersion string
	HTTP       config.HTTPConfig
	Swagger    config.SwaggerConfig

	ServiceName      string
	TracingEnabled   bool
	TracerProvider   trace.TracerProvider
	Meter            metric.Meter // nil disables HTTP metrics
	ProfilingEnabled bool

	Idempotency    shared.IdempotencyStore // nil disables Idempotency-Key checks
	IdempotencyTTL time.Duration

	Health   *handler.HealthHandler
	Handlers Handlers
}

// NewEngine builds the gin engine: recovery, request IDs, request logging,
// tracing, metrics, profiling labels, CORS, security headers, the body limit
// and Idempotency-Key checks, then /health, /swagger and the API routes.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	if cfg.TracingEnabled {
		engine.Use(middleware.Tracing(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        true,
			TracerProvider: cfg.TracerProvider,
		}))
		engine.Use(middleware.SpanEnricher())
	}
	engine.Use(middleware.HTTPMetrics(cfg.Meter, log))
	if cfg.ProfilingEnabled {
		engine.Use(middleware.Profiling(middleware.DefaultProfilingConfig()))
	}
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.Idempotency != nil {
		engine.Use(middleware.Idempotency(cfg.Idempotency, cfg.IdempotencyTTL))
	}

	if cfg.Health != nil {
		engine.GET("/health", cfg.Health.Health)
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	version := cfg.APIVersion
	if version == "" {
		version = "v1"
	}
	r := NewRouter(engine, WithAPIVersion(version))
	for _, g := range DomainGroups(cfg.Handlers) {
		r.Register(g)
	}
	r.Setup()

	return engine, nil
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}
