package handler

import (
	warehouseapp "github.com/erp/stockledger/internal/application/warehouse"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles the warehouse directory endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *warehouseapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *warehouseapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Description  Register a new stock location. Codes are unique.
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body warehouseapp.CreateWarehouseRequest true "Warehouse"
// @Success      201 {object} APIResponse[warehouseapp.WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	w, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, w)
}

// GetByID godoc
// @ID           getWarehouse
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[warehouseapp.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	w, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// List godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Description  Filter by status, type or a code/name search. Defaults to code order.
// @Tags         warehouses
// @Produce      json
// @Param        search    query string false "Code or name contains"
// @Param        status    query string false "active or inactive"
// @Param        type      query string false "physical, virtual or transit"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]warehouseapp.WarehouseResponse]
// @Router       /warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter warehouseapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	warehouses, total, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, warehouses, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateWarehouse
// @Summary      Update a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id      path string true "Warehouse ID" format(uuid)
// @Param        request body warehouseapp.UpdateWarehouseRequest true "Changes"
// @Success      200 {object} APIResponse[warehouseapp.WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req warehouseapp.UpdateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	w, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// Activate godoc
// @ID           activateWarehouse
// @Summary      Activate a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[warehouseapp.WarehouseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /warehouses/{id}/activate [post]
func (h *WarehouseHandler) Activate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	w, err := h.warehouseService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}

// Deactivate godoc
// @ID           deactivateWarehouse
// @Summary      Deactivate a warehouse
// @Description  Inactive warehouses reject new receipts, issues and reservations.
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[warehouseapp.WarehouseResponse]
// @Failure      422 {object} ErrorResponse
// @Router       /warehouses/{id}/deactivate [post]
func (h *WarehouseHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	w, err := h.warehouseService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, w)
}
