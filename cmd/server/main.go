package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	warehouseapp "github.com/erp/stockledger/internal/application/warehouse"
	"github.com/erp/stockledger/internal/infrastructure/cache"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/erp/stockledger/internal/infrastructure/event"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/infrastructure/persistence"
	"github.com/erp/stockledger/internal/infrastructure/scheduler"
	"github.com/erp/stockledger/internal/infrastructure/telemetry"
	"github.com/erp/stockledger/internal/interfaces/http/handler"
	"github.com/erp/stockledger/internal/interfaces/http/middleware"
	"github.com/erp/stockledger/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	_ "github.com/erp/stockledger/docs"
)

//	@title			Stock Ledger API
//	@version		1.0
//	@description	Multi-warehouse stock ledger: movements, batches, reservations, transfers and alerts.

//	@contact.name	API Support
//	@contact.url	https://github.com/erp/stockledger

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTEL logs first so the application logger can be bridged to them
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize OTEL logs", zap.Error(err))
	}

	log := bootLog
	if logsProvider.IsEnabled() {
		baseCore, err := logger.NewCore(logCfg)
		if err != nil {
			bootLog.Fatal("Failed to initialize logger core", zap.Error(err))
		}
		otelCore := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, logsProvider, logger.ParseLevel(cfg.Telemetry.LogsLevel))
		log = telemetry.NewBridgedLogger(baseCore, otelCore, zap.AddCaller())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting stock ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingEndpoint,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link spans to profiles", zap.Error(err))
		}
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", db.Driver))

	dbMetrics, err := telemetry.RegisterDBInstrumentation(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        db.Driver,
	}, meterProvider, log)
	if err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}

	if db.Driver == "sqlite" {
		// Postgres schemas are owned by cmd/migrate
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	coordination, err := cache.NewCoordination(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize lock backend", zap.Error(err))
	}

	// Application core
	repos := persistence.NewRepositories(db.DB)
	core := inventoryapp.NewCore(
		repos,
		persistence.NewGormTransactionScope(db.DB),
		coordination.Locker,
		ledgerOptions(cfg.Ledger),
		log,
	)

	ledgerMetrics, err := telemetry.NewLedgerMetrics(meterProvider.Meter("stockledger"), persistence.NewGormStockLevelSource(db.DB), log)
	if err != nil {
		log.Fatal("Failed to initialize ledger metrics", zap.Error(err))
	}
	core.SetMetrics(ledgerMetrics)

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(event.NewEventSerializer(), log))
	thresholds := inventoryapp.NewThresholdAlertHandler(repos.Stock, log).
		WithPublisher(eventBus).
		WithMetrics(ledgerMetrics)
	eventBus.Subscribe(thresholds, thresholds.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	core.SetEventPublisher(eventBus)

	ledgerService := inventoryapp.NewLedgerService(core)
	reservationService := inventoryapp.NewReservationService(core)
	batchService := inventoryapp.NewBatchService(core)
	transferService := inventoryapp.NewTransferService(core)
	alertService := inventoryapp.NewAlertService(core)
	cycleCountService := inventoryapp.NewCycleCountService(core)
	warehouseService := warehouseapp.NewWarehouseService(repos.Warehouses, log)

	// Background jobs
	jobScheduler := scheduler.NewScheduler(scheduler.DefaultSchedulerConfig(),
		scheduler.NewLedgerJobExecutor(reservationService, alertService, log), log)
	if err := jobScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	trigger, err := scheduler.NewCronTrigger(scheduler.TriggerConfig{
		SweepInterval:     cfg.Ledger.ReservationSweepInterval,
		AlertScanSchedule: cfg.Ledger.AlertScanSchedule,
	}, jobScheduler, log)
	if err != nil {
		log.Fatal("Failed to configure job schedule", zap.Error(err))
	}
	if err := trigger.Start(ctx); err != nil {
		log.Fatal("Failed to start job trigger", zap.Error(err))
	}

	// HTTP
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:           log,
		HTTP:             cfg.HTTP,
		Swagger:          cfg.Swagger,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tracerProvider.IsEnabled(),
		TracerProvider:   otel.GetTracerProvider(),
		Meter:            meterProvider.Meter("stockledger-http"),
		ProfilingEnabled: profiler.IsEnabled(),
		Idempotency:      coordination.Idempotency,
		IdempotencyTTL:   cfg.Ledger.IdempotencyTTL,
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database":     db,
			"coordination": coordination,
		}),
		Handlers: router.Handlers{
			Warehouse:   handler.NewWarehouseHandler(warehouseService),
			Stock:       handler.NewStockHandler(ledgerService),
			Reservation: handler.NewReservationHandler(reservationService),
			Batch:       handler.NewBatchHandler(batchService),
			Transfer:    handler.NewTransferHandler(transferService),
			Alert:       handler.NewAlertHandler(alertService),
			CycleCount:  handler.NewCycleCountHandler(cycleCountService),
		},
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := trigger.Stop(shutdownCtx); err != nil {
		log.Warn("Failed to stop job trigger", zap.Error(err))
	}
	if err := jobScheduler.Stop(shutdownCtx); err != nil {
		log.Warn("Failed to stop scheduler", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Failed to stop event bus", zap.Error(err))
	}
	if err := ledgerMetrics.Close(); err != nil {
		log.Warn("Failed to unregister ledger metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		if err := dbMetrics.Close(); err != nil {
			log.Warn("Failed to unregister database metrics", zap.Error(err))
		}
	}
	if err := coordination.Close(); err != nil {
		log.Warn("Failed to close lock backend", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Warn("Failed to close database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := logsProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush logs", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// ledgerOptions maps ledger.* settings onto the core options
func ledgerOptions(cfg config.LedgerConfig) inventoryapp.Options {
	opts := inventoryapp.DefaultOptions()
	opts.MaxRetries = cfg.MaxRetries
	opts.RetryBackoff = cfg.RetryBackoff
	opts.DefaultReservationTTL = cfg.DefaultReservationTTL
	if cfg.ExpiryHorizonDays > 0 {
		opts.ExpiryHorizon = time.Duration(cfg.ExpiryHorizonDays) * 24 * time.Hour
	}
	if cfg.SweepBatchSize > 0 {
		opts.SweepBatchSize = cfg.SweepBatchSize
	}
	return opts
}
