package handler

import (
	inventoryapp "github.com/erp/stockledger/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AlertHandler handles stock alerts and reorder suggestions
type AlertHandler struct {
	BaseHandler
	alertService *inventoryapp.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alertService *inventoryapp.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Scan godoc
// @ID           scanAlerts
// @Summary      Scan for stock alerts
// @Description  Reports low stock, out of stock, overstock, expiring and expired lots.
// @Tags         alerts
// @Produce      json
// @Param        warehouse_id query string   false "Warehouse ID" format(uuid)
// @Param        type         query []string false "Alert types"
// @Param        horizon_days query int      false "Expiry horizon in days"
// @Success      200 {object} APIResponse[inventoryapp.AlertReport]
// @Router       /alerts [get]
func (h *AlertHandler) Scan(c *gin.Context) {
	var filter inventoryapp.AlertFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if !h.queryUUIDs(c, map[string]**uuid.UUID{"warehouse_id": &filter.WarehouseID}) {
		return
	}

	report, err := h.alertService.ScanAlerts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ReorderSuggestions godoc
// @ID           suggestReorder
// @Summary      Suggest reorder quantities
// @Description  Lists records at or below their reorder level with the quantity that restores max stock.
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.ReorderSuggestionRequest false "Scope"
// @Success      200 {object} APIResponse[[]inventory.ReorderSuggestion]
// @Router       /alerts/reorder-suggestions [post]
func (h *AlertHandler) ReorderSuggestions(c *gin.Context) {
	var req inventoryapp.ReorderSuggestionRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}
	suggestions, err := h.alertService.SuggestReorder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}
