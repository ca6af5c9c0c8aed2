package handler

import (
	"context"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransferHandler handles inter-warehouse transfers
type TransferHandler struct {
	BaseHandler
	transferService *inventoryapp.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(transferService *inventoryapp.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Transfer godoc
// @ID           transferStock
// @Summary      Move stock between warehouses in one step
// @Description  Posts the transfer-out and transfer-in legs atomically.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.TransferRequest true "Transfer"
// @Success      201 {object} APIResponse[inventoryapp.TransferResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /transfers [post]
func (h *TransferHandler) Transfer(c *gin.Context) {
	h.create(c, h.transferService.Transfer)
}

// Dispatch godoc
// @ID           dispatchTransfer
// @Summary      Dispatch stock into transit
// @Description  Posts the transfer-out leg now. The destination receives it later.
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.TransferRequest true "Transfer"
// @Success      201 {object} APIResponse[inventoryapp.TransferResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /transfers/dispatch [post]
func (h *TransferHandler) Dispatch(c *gin.Context) {
	h.create(c, h.transferService.DispatchTransfer)
}

func (h *TransferHandler) create(c *gin.Context, op func(context.Context, inventoryapp.TransferRequest) (*inventoryapp.TransferResponse, error)) {
	var req inventoryapp.TransferRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	t, err := op(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, t)
}

// Receive godoc
// @ID           receiveTransfer
// @Summary      Receive an in-transit transfer
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id      path string true "Transfer ID" format(uuid)
// @Param        request body inventoryapp.ReceiveTransferRequest false "Actor"
// @Success      200 {object} APIResponse[inventoryapp.TransferResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.ReceiveTransferRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	t, err := h.transferService.ReceiveTransfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// Cancel godoc
// @ID           cancelTransfer
// @Summary      Return in-transit stock to its source
// @Tags         transfers
// @Accept       json
// @Produce      json
// @Param        id      path string true "Transfer ID" format(uuid)
// @Param        request body inventoryapp.CancelTransferRequest false "Reason"
// @Success      200 {object} APIResponse[inventoryapp.TransferResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.CancelTransferRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	t, err := h.transferService.CancelTransfer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// GetByID godoc
// @ID           getTransfer
// @Summary      Get a transfer
// @Tags         transfers
// @Produce      json
// @Param        id path string true "Transfer ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.TransferResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /transfers/{id} [get]
func (h *TransferHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	t, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, t)
}

// List godoc
// @ID           listTransfers
// @Summary      List transfers
// @Tags         transfers
// @Produce      json
// @Param        product_id   query string false "Product ID" format(uuid)
// @Param        warehouse_id query string false "Source or destination warehouse" format(uuid)
// @Param        status       query string false "pending, completed or cancelled"
// @Param        page         query int    false "Page number" default(1)
// @Param        page_size    query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.TransferResponse]
// @Router       /transfers [get]
func (h *TransferHandler) List(c *gin.Context) {
	var filter inventoryapp.TransferListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
	}) {
		return
	}

	ts, total, err := h.transferService.ListTransfers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, ts, total, filter.Page, filter.PageSize)
}
