package handler

import (
	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CycleCountHandler handles physical stock counts
type CycleCountHandler struct {
	BaseHandler
	cycleCountService *inventoryapp.CycleCountService
}

// NewCycleCountHandler creates a new CycleCountHandler
func NewCycleCountHandler(cycleCountService *inventoryapp.CycleCountService) *CycleCountHandler {
	return &CycleCountHandler{cycleCountService: cycleCountService}
}

// Create godoc
// @ID           createCycleCount
// @Summary      Open a cycle count
// @Description  Snapshots on-hand quantity and average cost of the warehouse's stock records.
// @Description  Listing product_ids makes the count partial.
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.CreateCycleCountRequest true "Cycle count"
// @Success      201 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts [post]
func (h *CycleCountHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateCycleCountRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	cc, err := h.cycleCountService.CreateCycleCount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cc)
}

// Start godoc
// @ID           startCycleCount
// @Summary      Start counting
// @Tags         cycle-counts
// @Produce      json
// @Param        id path string true "Cycle count ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/start [post]
func (h *CycleCountHandler) Start(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cc, err := h.cycleCountService.StartCycleCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// RecordCounts godoc
// @ID           recordCycleCounts
// @Summary      Record counted quantities
// @Description  A product may be recounted until the count is submitted.
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id      path string true "Cycle count ID" format(uuid)
// @Param        request body inventoryapp.RecordCountsRequest true "Counted quantities"
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/counts [post]
func (h *CycleCountHandler) RecordCounts(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.RecordCountsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	cc, err := h.cycleCountService.RecordCounts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// Submit godoc
// @ID           submitCycleCount
// @Summary      Submit a fully counted count for approval
// @Tags         cycle-counts
// @Produce      json
// @Param        id path string true "Cycle count ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/submit [post]
func (h *CycleCountHandler) Submit(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cc, err := h.cycleCountService.SubmitCycleCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// Approve godoc
// @ID           approveCycleCount
// @Summary      Approve counted quantities
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id      path string true "Cycle count ID" format(uuid)
// @Param        request body inventoryapp.ApproveCycleCountRequest false "Approver"
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/approve [post]
func (h *CycleCountHandler) Approve(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.ApproveCycleCountRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	cc, err := h.cycleCountService.ApproveCycleCount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// Apply godoc
// @ID           applyCycleCount
// @Summary      Post the adjustments of an approved count
// @Description  Each line is adjusted against the on-hand quantity at apply time.
// @Description  All adjustments and the completion commit together.
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        id      path string true "Cycle count ID" format(uuid)
// @Param        request body inventoryapp.ApplyCycleCountRequest false "Actor"
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/apply [post]
func (h *CycleCountHandler) Apply(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.ApplyCycleCountRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	cc, err := h.cycleCountService.ApplyAdjustments(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// Cancel godoc
// @ID           cancelCycleCount
// @Summary      Abandon a cycle count
// @Tags         cycle-counts
// @Accept       json
// @Produce      json
// @Param        id      path string true "Cycle count ID" format(uuid)
// @Param        request body inventoryapp.CancelCycleCountRequest false "Reason"
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /cycle-counts/{id}/cancel [post]
func (h *CycleCountHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.CancelCycleCountRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	cc, err := h.cycleCountService.CancelCycleCount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// GetByID godoc
// @ID           getCycleCount
// @Summary      Get a cycle count
// @Tags         cycle-counts
// @Produce      json
// @Param        id path string true "Cycle count ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.CycleCountResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /cycle-counts/{id} [get]
func (h *CycleCountHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cc, err := h.cycleCountService.GetCycleCount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cc)
}

// List godoc
// @ID           listCycleCounts
// @Summary      List cycle counts
// @Tags         cycle-counts
// @Produce      json
// @Param        warehouse_id query string false "Warehouse ID" format(uuid)
// @Param        status       query string false "draft, in_progress, pending_approval, approved, completed or cancelled"
// @Param        page         query int    false "Page number" default(1)
// @Param        page_size    query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.CycleCountResponse]
// @Router       /cycle-counts [get]
func (h *CycleCountHandler) List(c *gin.Context) {
	var filter inventoryapp.CycleCountListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{"warehouse_id": &filter.WarehouseID}) {
		return
	}

	cs, total, err := h.cycleCountService.ListCycleCounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, cs, total, filter.Page, filter.PageSize)
}
