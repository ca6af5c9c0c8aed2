package handler

import (
	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHandler handles lots of batch-tracked products
type BatchHandler struct {
	BaseHandler
	batchService *inventoryapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *inventoryapp.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Receive godoc
// @ID           receiveBatch
// @Summary      Receive a new lot
// @Description  Creates the batch and posts its receipt entry. A batch number is generated when absent.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.ReceiveBatchRequest true "Lot"
// @Success      201 {object} APIResponse[inventoryapp.ReceiveBatchResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /batches/receive [post]
func (h *BatchHandler) Receive(c *gin.Context) {
	var req inventoryapp.ReceiveBatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	resp, err := h.batchService.ReceiveBatch(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listBatches
// @Summary      List lots
// @Tags         batches
// @Produce      json
// @Param        product_id        query string false "Product ID" format(uuid)
// @Param        warehouse_id      query string false "Warehouse ID" format(uuid)
// @Param        include_exhausted query bool   false "Include empty lots"
// @Param        page              query int    false "Page number" default(1)
// @Param        page_size         query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.BatchResponse]
// @Router       /batches [get]
func (h *BatchHandler) List(c *gin.Context) {
	var filter inventoryapp.BatchListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
	}) {
		return
	}

	batches, total, err := h.batchService.ListBatches(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, batches, total, filter.Page, filter.PageSize)
}

// Expiring godoc
// @ID           listExpiringBatches
// @Summary      Lots expiring within a horizon
// @Tags         batches
// @Produce      json
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Param        horizon_days query int    false "Days ahead"
// @Success      200 {object} APIResponse[[]inventoryapp.BatchResponse]
// @Router       /batches/expiring [get]
func (h *BatchHandler) Expiring(c *gin.Context) {
	var filter inventoryapp.ExpiringBatchesFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{"warehouse_id": &filter.WarehouseID}) {
		return
	}

	batches, err := h.batchService.ExpiringBatches(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// PreviewAllocation godoc
// @ID           previewBatchAllocation
// @Summary      Dry-run a FIFO, FEFO or specified allocation
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.AllocationPreviewRequest true "Quantity and strategy"
// @Success      200 {object} APIResponse[inventoryapp.AllocationPreviewResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /batches/allocation-preview [post]
func (h *BatchHandler) PreviewAllocation(c *gin.Context) {
	var req inventoryapp.AllocationPreviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.batchService.PreviewAllocation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Aging godoc
// @ID           getBatchAging
// @Summary      Bucket lots by days since receipt
// @Tags         batches
// @Produce      json
// @Param        product_id   query string false "Product ID" format(uuid)
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.AgingReport]
// @Router       /batches/aging [get]
func (h *BatchHandler) Aging(c *gin.Context) {
	var filter inventoryapp.AgingFilter
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
	}) {
		return
	}
	report, err := h.batchService.AgingReport(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
