package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	warehouseapp "github.com/erp/stockledger/internal/application/warehouse"
	"github.com/erp/stockledger/internal/infrastructure/cache"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/erp/stockledger/internal/infrastructure/persistence"
	"github.com/erp/stockledger/internal/interfaces/http/handler"
	"github.com/erp/stockledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func newTestEngine(t *testing.T, mutate func(*EngineConfig)) *gin.Engine {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	log := zaptest.NewLogger(t)
	repos := persistence.NewRepositories(db.DB)
	core := inventoryapp.NewCore(repos, persistence.NewGormTransactionScope(db.DB), inventoryapp.NewLocalKeyLocker(), inventoryapp.DefaultOptions(), log)

	store := cache.NewInMemoryIdempotencyStore(0)
	t.Cleanup(func() { _ = store.Close() })

	cfg := EngineConfig{
		Logger:         log,
		HTTP:           config.HTTPConfig{MaxBodySize: 1 << 10, CORSAllowOrigins: []string{"https://ops.example.com"}},
		Idempotency:    store,
		IdempotencyTTL: time.Minute,
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database": db,
		}),
		Handlers: Handlers{
			Warehouse:   handler.NewWarehouseHandler(warehouseapp.NewWarehouseService(repos.Warehouses, log)),
			Stock:       handler.NewStockHandler(inventoryapp.NewLedgerService(core)),
			Reservation: handler.NewReservationHandler(inventoryapp.NewReservationService(core)),
			Batch:       handler.NewBatchHandler(inventoryapp.NewBatchService(core)),
			Transfer:    handler.NewTransferHandler(inventoryapp.NewTransferService(core)),
			Alert:       handler.NewAlertHandler(inventoryapp.NewAlertService(core)),
			CycleCount:  handler.NewCycleCountHandler(inventoryapp.NewCycleCountService(core)),
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RegistersAPISurface(t *testing.T) {
	engine := newTestEngine(t, nil)

	registered := make(map[string]bool)
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /swagger/*any",
		"POST /api/v1/warehouses", "GET /api/v1/warehouses", "GET /api/v1/warehouses/:id",
		"PUT /api/v1/warehouses/:id", "POST /api/v1/warehouses/:id/activate", "POST /api/v1/warehouses/:id/deactivate",
		"POST /api/v1/stock/movements", "GET /api/v1/stock/movements", "GET /api/v1/stock/movements/:id",
		"POST /api/v1/stock/movements/:id/reverse",
		"POST /api/v1/stock/initialize", "GET /api/v1/stock", "GET /api/v1/stock/lookup",
		"PUT /api/v1/stock/thresholds", "GET /api/v1/stock/reconcile", "GET /api/v1/stock/valuation",
		"POST /api/v1/reservations", "GET /api/v1/reservations", "GET /api/v1/reservations/:id",
		"POST /api/v1/reservations/:id/release", "POST /api/v1/reservations/:id/fulfill",
		"POST /api/v1/reservations/release-by-reference", "POST /api/v1/reservations/expire",
		"POST /api/v1/batches/receive", "GET /api/v1/batches", "GET /api/v1/batches/expiring",
		"GET /api/v1/batches/aging", "POST /api/v1/batches/allocation-preview",
		"POST /api/v1/transfers", "POST /api/v1/transfers/dispatch",
		"POST /api/v1/transfers/:id/receive", "POST /api/v1/transfers/:id/cancel",
		"GET /api/v1/transfers", "GET /api/v1/transfers/:id",
		"GET /api/v1/alerts", "POST /api/v1/alerts/reorder-suggestions",
		"POST /api/v1/cycle-counts", "GET /api/v1/cycle-counts", "GET /api/v1/cycle-counts/:id",
		"POST /api/v1/cycle-counts/:id/start", "POST /api/v1/cycle-counts/:id/counts",
		"POST /api/v1/cycle-counts/:id/submit", "POST /api/v1/cycle-counts/:id/approve",
		"POST /api/v1/cycle-counts/:id/apply", "POST /api/v1/cycle-counts/:id/cancel",
	}
	for _, route := range want {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestNewEngine_MiddlewareChain(t *testing.T) {
	engine := newTestEngine(t, nil)

	t.Run("health carries a request id and security headers", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/health")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("swagger is hidden when disabled", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/index.html").Code)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/stock", nil)
		req.Header.Set("Origin", "https://ops.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://ops.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("oversized body", func(t *testing.T) {
		body := `{"code":"WH-X","name":"` + strings.Repeat("x", 2048) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/warehouses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("repeated idempotency key is rejected", func(t *testing.T) {
		post := func() int {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/warehouses", strings.NewReader(`{"code":"WH-IDEM","name":"Idem"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(middleware.HeaderIdempotencyKey, "create-wh-idem")
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			return w.Code
		}
		assert.Equal(t, http.StatusCreated, post())
		assert.Equal(t, http.StatusConflict, post())
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/nothing").Code)
	})
}

func TestNewEngine_RecordsHTTPMetrics(t *testing.T) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	engine := newTestEngine(t, func(cfg *EngineConfig) {
		cfg.Meter = provider.Meter("router-test")
	})
	serve(engine, http.MethodGet, "/api/v1/warehouses")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "http_server_request_total" {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestNewEngine_RejectsBadTrustedProxy(t *testing.T) {
	_, err := NewEngine(EngineConfig{HTTP: config.HTTPConfig{TrustedProxies: []string{"not-an-ip"}}, Handlers: Handlers{}})
	assert.Error(t, err)
}
