package router

import (
	"github.com/erp/stockledger/internal/interfaces/http/handler"
)

// Handlers groups the API handlers mounted under /api/<version>
type Handlers struct {
	Warehouse   *handler.WarehouseHandler
	Stock       *handler.StockHandler
	Reservation *handler.ReservationHandler
	Batch       *handler.BatchHandler
	Transfer    *handler.TransferHandler
	Alert       *handler.AlertHandler
	CycleCount  *handler.CycleCountHandler
}

// DomainGroups builds one route group per API area
func DomainGroups(h Handlers) []*DomainGroup {
	warehouses := NewDomainGroup("warehouses", "/warehouses").
		POST("", h.Warehouse.Create).
		GET("", h.Warehouse.List).
		GET("/:id", h.Warehouse.GetByID).
		PUT("/:id", h.Warehouse.Update).
		POST("/:id/activate", h.Warehouse.Activate).
		POST("/:id/deactivate", h.Warehouse.Deactivate)

	stock := NewDomainGroup("stock", "/stock").
		GET("", h.Stock.ListStock).
		GET("/lookup", h.Stock.Lookup).
		POST("/initialize", h.Stock.InitializeStock).
		PUT("/thresholds", h.Stock.SetThresholds).
		GET("/reconcile", h.Stock.Reconcile).
		GET("/valuation", h.Stock.Valuation)
	stock.Group("movements", "/movements").
		POST("", h.Stock.RecordMovement).
		GET("", h.Stock.ListMovements).
		GET("/:id", h.Stock.GetMovement).
		POST("/:id/reverse", h.Stock.ReverseMovement)

	reservations := NewDomainGroup("reservations", "/reservations").
		POST("", h.Reservation.Reserve).
		GET("", h.Reservation.List).
		GET("/:id", h.Reservation.GetByID).
		POST("/:id/release", h.Reservation.Release).
		POST("/:id/fulfill", h.Reservation.Fulfill).
		POST("/release-by-reference", h.Reservation.ReleaseByReference).
		POST("/expire", h.Reservation.ExpireDue)

	batches := NewDomainGroup("batches", "/batches").
		POST("/receive", h.Batch.Receive).
		GET("", h.Batch.List).
		GET("/expiring", h.Batch.Expiring).
		GET("/aging", h.Batch.Aging).
		POST("/allocation-preview", h.Batch.PreviewAllocation)

	transfers := NewDomainGroup("transfers", "/transfers").
		POST("", h.Transfer.Transfer).
		POST("/dispatch", h.Transfer.Dispatch).
		GET("", h.Transfer.List).
		GET("/:id", h.Transfer.GetByID).
		POST("/:id/receive", h.Transfer.Receive).
		POST("/:id/cancel", h.Transfer.Cancel)

	alerts := NewDomainGroup("alerts", "/alerts").
		GET("", h.Alert.Scan).
		POST("/reorder-suggestions", h.Alert.ReorderSuggestions)

	cycleCounts := NewDomainGroup("cycle-counts", "/cycle-counts").
		POST("", h.CycleCount.Create).
		GET("", h.CycleCount.List).
		GET("/:id", h.CycleCount.GetByID).
		POST("/:id/start", h.CycleCount.Start).
		POST("/:id/counts", h.CycleCount.RecordCounts).
		POST("/:id/submit", h.CycleCount.Submit).
		POST("/:id/approve", h.CycleCount.Approve).
		POST("/:id/apply", h.CycleCount.Apply).
		POST("/:id/cancel", h.CycleCount.Cancel)

	return []*DomainGroup{warehouses, stock, reservations, batches, transfers, alerts, cycleCounts}
}
