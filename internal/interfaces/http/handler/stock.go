package handler

import (
	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock records and the movement ledger
type StockHandler struct {
	BaseHandler
	ledgerService *inventoryapp.LedgerService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(ledgerService *inventoryapp.LedgerService) *StockHandler {
	return &StockHandler{ledgerService: ledgerService}
}

// RecordMovement godoc
// @ID           recordStockMovement
// @Summary      Post a stock movement
// @Description  Appends a receipt, issue, adjustment, return or write-off to the ledger and updates the stock record atomically.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.RecordMovementRequest true "Movement"
// @Success      201 {object} APIResponse[inventoryapp.MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /stock/movements [post]
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req inventoryapp.RecordMovementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	entry, err := h.ledgerService.RecordMovement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListMovements godoc
// @ID           listStockMovements
// @Summary      Query the movement ledger
// @Tags         stock
// @Produce      json
// @Param        product_id   query string   false "Product ID" format(uuid)
// @Param        warehouse_id query string   false "Warehouse ID" format(uuid)
// @Param        transfer_id  query string   false "Transfer ID" format(uuid)
// @Param        type         query []string false "Movement types"
// @Param        reference    query string   false "External reference"
// @Param        from         query string   false "RFC3339 lower bound"
// @Param        to           query string   false "RFC3339 upper bound"
// @Param        page         query int      false "Page number" default(1)
// @Param        page_size    query int      false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.MovementResponse]
// @Router       /stock/movements [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
		"transfer_id":  &filter.TransferID,
	}) {
		return
	}

	entries, total, err := h.ledgerService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// GetMovement godoc
// @ID           getStockMovement
// @Summary      Get one ledger entry
// @Tags         stock
// @Produce      json
// @Param        id path string true "Movement ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.MovementResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /stock/movements/{id} [get]
func (h *StockHandler) GetMovement(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	entry, err := h.ledgerService.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// ReverseMovement godoc
// @ID           reverseStockMovement
// @Summary      Reverse a ledger entry
// @Description  Posts an offsetting entry. An entry can be reversed once; reversals and transfer legs cannot be reversed.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        id      path string true "Movement ID" format(uuid)
// @Param        request body inventoryapp.ReverseMovementRequest false "Reason"
// @Success      201 {object} APIResponse[inventoryapp.MovementResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /stock/movements/{id}/reverse [post]
func (h *StockHandler) ReverseMovement(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.ReverseMovementRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	entry, err := h.ledgerService.ReverseMovement(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// InitializeStock godoc
// @ID           initializeStock
// @Summary      Create an empty stock record
// @Description  Idempotent: an existing record is returned unchanged.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.InitializeStockRequest true "Record"
// @Success      200 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /stock/initialize [post]
func (h *StockHandler) InitializeStock(c *gin.Context) {
	var req inventoryapp.InitializeStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rec, err := h.ledgerService.InitializeStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// ListStock godoc
// @ID           listStockRecords
// @Summary      List stock records
// @Tags         stock
// @Produce      json
// @Param        product_id    query string false "Product ID" format(uuid)
// @Param        warehouse_id  query string false "Warehouse ID" format(uuid)
// @Param        batch_tracked query bool   false "Batch tracked only"
// @Param        in_stock      query bool   false "On-hand above zero"
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.StockRecordResponse]
// @Router       /stock [get]
func (h *StockHandler) ListStock(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
	}) {
		return
	}

	recs, total, err := h.ledgerService.ListStockRecords(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, recs, total, filter.Page, filter.PageSize)
}

// Lookup godoc
// @ID           lookupStockRecord
// @Summary      Get the record of a product in a warehouse
// @Tags         stock
// @Produce      json
// @Param        product_id   query string true "Product ID" format(uuid)
// @Param        warehouse_id query string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /stock/lookup [get]
func (h *StockHandler) Lookup(c *gin.Context) {
	var productID, warehouseID uuid.UUID
	if !h.requireQueryUUIDs(c, map[string]*uuid.UUID{"product_id": &productID, "warehouse_id": &warehouseID}) {
		return
	}
	rec, err := h.ledgerService.GetStockRecord(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// SetThresholds godoc
// @ID           setStockThresholds
// @Summary      Set reorder level, safety stock and max stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.SetThresholdsRequest true "Thresholds"
// @Success      200 {object} APIResponse[inventoryapp.StockRecordResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /stock/thresholds [put]
func (h *StockHandler) SetThresholds(c *gin.Context) {
	var req inventoryapp.SetThresholdsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	rec, err := h.ledgerService.SetThresholds(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// Reconcile godoc
// @ID           reconcileStock
// @Summary      Replay a record's ledger and report discrepancies
// @Tags         stock
// @Produce      json
// @Param        product_id   query string true "Product ID" format(uuid)
// @Param        warehouse_id query string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.ReconciliationReport]
// @Router       /stock/reconcile [get]
func (h *StockHandler) Reconcile(c *gin.Context) {
	var productID, warehouseID uuid.UUID
	if !h.requireQueryUUIDs(c, map[string]*uuid.UUID{"product_id": &productID, "warehouse_id": &warehouseID}) {
		return
	}
	report, err := h.ledgerService.Reconcile(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Valuation godoc
// @ID           getStockValuation
// @Summary      Value stock at weighted-average cost
// @Tags         stock
// @Produce      json
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.ValuationResponse]
// @Router       /stock/valuation [get]
func (h *StockHandler) Valuation(c *gin.Context) {
	var warehouseID *uuid.UUID
	if !h.queryUUIDs(c, map[string]**uuid.UUID{"warehouse_id": &warehouseID}) {
		return
	}
	valuation, err := h.ledgerService.GetValuation(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, valuation)
}
