package handler

import (
	"time"

	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReservationHandler handles stock holds
type ReservationHandler struct {
	BaseHandler
	reservationService *inventoryapp.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservationService *inventoryapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Reserve godoc
// @ID           createReservation
// @Summary      Hold available stock
// @Description  Moves quantity from available to reserved. Fails with INSUFFICIENT_AVAILABLE_STOCK when available is short.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Rejects repeats with 409 DUPLICATE_REQUEST"
// @Param        request body inventoryapp.ReserveRequest true "Reservation"
// @Success      201 {object} APIResponse[inventoryapp.ReservationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /reservations [post]
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req inventoryapp.ReserveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	r, err := h.reservationService.Reserve(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// GetByID godoc
// @ID           getReservation
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Param        id path string true "Reservation ID" format(uuid)
// @Success      200 {object} APIResponse[inventoryapp.ReservationResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	r, err := h.reservationService.GetReservation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// List godoc
// @ID           listReservations
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Param        product_id     query string false "Product ID" format(uuid)
// @Param        warehouse_id   query string false "Warehouse ID" format(uuid)
// @Param        status         query string false "active, released, fulfilled or expired"
// @Param        reference_type query string false "quote, sales_order, project or manual"
// @Param        reference      query string false "External reference"
// @Param        page           query int    false "Page number" default(1)
// @Param        page_size      query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]inventoryapp.ReservationResponse]
// @Router       /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	var filter inventoryapp.ReservationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{
		"product_id":   &filter.ProductID,
		"warehouse_id": &filter.WarehouseID,
	}) {
		return
	}

	rs, total, err := h.reservationService.ListReservations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rs, total, filter.Page, filter.PageSize)
}

// Release godoc
// @ID           releaseReservation
// @Summary      Release an active hold
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Reservation ID" format(uuid)
// @Param        request body inventoryapp.ReleaseReservationRequest false "Reason"
// @Success      200 {object} APIResponse[inventoryapp.ReservationResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.ReleaseReservationRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	r, err := h.reservationService.Release(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Fulfill godoc
// @ID           fulfillReservation
// @Summary      Convert a hold into an issue
// @Description  Consumes the held quantity in one atomic step and posts an issue entry.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id      path string true "Reservation ID" format(uuid)
// @Param        request body inventoryapp.FulfillReservationRequest false "Reference"
// @Success      201 {object} APIResponse[inventoryapp.MovementResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /reservations/{id}/fulfill [post]
func (h *ReservationHandler) Fulfill(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.FulfillReservationRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	req.Actor = actorOr(c, req.Actor)

	entry, err := h.reservationService.Fulfill(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ReleaseByReference godoc
// @ID           releaseReservationsByReference
// @Summary      Release every active hold of a reference
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.ReleaseByReferenceRequest true "Reference"
// @Success      200 {object} APIResponse[inventoryapp.ReleaseByReferenceResponse]
// @Router       /reservations/release-by-reference [post]
func (h *ReservationHandler) ReleaseByReference(c *gin.Context) {
	var req inventoryapp.ReleaseByReferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.reservationService.ReleaseByReference(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ExpireDue godoc
// @ID           expireReservations
// @Summary      Run the reservation expiry sweep now
// @Tags         reservations
// @Produce      json
// @Success      200 {object} APIResponse[inventoryapp.ExpiredReservationStats]
// @Router       /reservations/expire [post]
func (h *ReservationHandler) ExpireDue(c *gin.Context) {
	stats, err := h.reservationService.ExpireDue(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
