package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	warehouseapp "github.com/erp/stockledger/internal/application/warehouse"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/erp/stockledger/internal/infrastructure/config"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/infrastructure/persistence"
	"github.com/erp/stockledger/internal/interfaces/http/dto"
	"github.com/erp/stockledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// apiFixture serves every handler over a migrated sqlite database
type apiFixture struct {
	engine     *gin.Engine
	db         *persistence.Database
	productID  uuid.UUID
	warehouseA *warehouse.Warehouse
	warehouseB *warehouse.Warehouse
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "ledger.db")})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	repos := persistence.NewRepositories(db.DB)
	whA, err := warehouse.NewWarehouse("WH-A", "Main", warehouse.TypePhysical)
	require.NoError(t, err)
	whB, err := warehouse.NewWarehouse("WH-B", "Overflow", warehouse.TypePhysical)
	require.NoError(t, err)
	require.NoError(t, repos.Warehouses.Save(ctx, whA))
	require.NoError(t, repos.Warehouses.Save(ctx, whB))

	log := zaptest.NewLogger(t)
	opts := inventoryapp.DefaultOptions()
	opts.RetryBackoff = time.Millisecond
	core := inventoryapp.NewCore(repos, persistence.NewGormTransactionScope(db.DB), inventoryapp.NewLocalKeyLocker(), opts, log)

	engine := gin.New()
	engine.Use(middleware.RequestID(), logger.GinMiddleware(log))

	wh := NewWarehouseHandler(warehouseapp.NewWarehouseService(repos.Warehouses, log))
	engine.POST("/warehouses", wh.Create)
	engine.GET("/warehouses", wh.List)
	engine.GET("/warehouses/:id", wh.GetByID)
	engine.PUT("/warehouses/:id", wh.Update)
	engine.POST("/warehouses/:id/activate", wh.Activate)
	engine.POST("/warehouses/:id/deactivate", wh.Deactivate)

	sh := NewStockHandler(inventoryapp.NewLedgerService(core))
	engine.GET("/stock", sh.ListStock)
	engine.GET("/stock/lookup", sh.Lookup)
	engine.POST("/stock/initialize", sh.InitializeStock)
	engine.PUT("/stock/thresholds", sh.SetThresholds)
	engine.GET("/stock/reconcile", sh.Reconcile)
	engine.GET("/stock/valuation", sh.Valuation)
	engine.POST("/stock/movements", sh.RecordMovement)
	engine.GET("/stock/movements", sh.ListMovements)
	engine.GET("/stock/movements/:id", sh.GetMovement)
	engine.POST("/stock/movements/:id/reverse", sh.ReverseMovement)

	rh := NewReservationHandler(inventoryapp.NewReservationService(core))
	engine.POST("/reservations", rh.Reserve)
	engine.GET("/reservations", rh.List)
	engine.GET("/reservations/:id", rh.GetByID)
	engine.POST("/reservations/:id/release", rh.Release)
	engine.POST("/reservations/:id/fulfill", rh.Fulfill)
	engine.POST("/reservations/release-by-reference", rh.ReleaseByReference)
	engine.POST("/reservations/expire", rh.ExpireDue)

	bh := NewBatchHandler(inventoryapp.NewBatchService(core))
	engine.POST("/batches/receive", bh.Receive)
	engine.GET("/batches", bh.List)
	engine.GET("/batches/expiring", bh.Expiring)
	engine.GET("/batches/aging", bh.Aging)
	engine.POST("/batches/allocation-preview", bh.PreviewAllocation)

	th := NewTransferHandler(inventoryapp.NewTransferService(core))
	engine.POST("/transfers", th.Transfer)
	engine.POST("/transfers/dispatch", th.Dispatch)
	engine.GET("/transfers", th.List)
	engine.GET("/transfers/:id", th.GetByID)
	engine.POST("/transfers/:id/receive", th.Receive)
	engine.POST("/transfers/:id/cancel", th.Cancel)

	ah := NewAlertHandler(inventoryapp.NewAlertService(core))
	engine.GET("/alerts", ah.Scan)
	engine.POST("/alerts/reorder-suggestions", ah.ReorderSuggestions)

	ch := NewCycleCountHandler(inventoryapp.NewCycleCountService(core))
	engine.POST("/cycle-counts", ch.Create)
	engine.GET("/cycle-counts", ch.List)
	engine.GET("/cycle-counts/:id", ch.GetByID)
	engine.POST("/cycle-counts/:id/start", ch.Start)
	engine.POST("/cycle-counts/:id/counts", ch.RecordCounts)
	engine.POST("/cycle-counts/:id/submit", ch.Submit)
	engine.POST("/cycle-counts/:id/approve", ch.Approve)
	engine.POST("/cycle-counts/:id/apply", ch.Apply)
	engine.POST("/cycle-counts/:id/cancel", ch.Cancel)

	return &apiFixture{engine: engine, db: db, productID: uuid.New(), warehouseA: whA, warehouseB: whB}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

// receive posts a receipt of qty at cost into warehouseID
func (f *apiFixture) receive(t *testing.T, warehouseID uuid.UUID, qty, cost string) inventoryapp.MovementResponse {
	t.Helper()
	w := f.do(t, http.MethodPost, "/stock/movements", map[string]any{
		"product_id":   f.productID,
		"warehouse_id": warehouseID,
		"type":         "receipt",
		"quantity":     qty,
		"unit_cost":    cost,
		"reference":    "PO-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[inventoryapp.MovementResponse](t, w)
}

type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode[T](t, w)
	require.True(t, env.Success, w.Body.String())
	return env.Data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode[json.RawMessage](t, w)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	return env.Error.Code
}
