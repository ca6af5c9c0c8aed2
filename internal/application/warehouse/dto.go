package warehouse

import (
	"time"

	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/google/uuid"
)

// CreateWarehouseRequest represents a request to create a new warehouse
type CreateWarehouseRequest struct {
	Code      string `json:"code" binding:"required,min=1,max=50"`
	Name      string `json:"name" binding:"required,min=1,max=200"`
	Type      string `json:"type" binding:"omitempty,oneof=physical virtual transit"`
	Address   string `json:"address" binding:"max=500"`
	IsDefault *bool  `json:"is_default"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address   *string `json:"address" binding:"omitempty,max=500"`
	IsDefault *bool   `json:"is_default"`
}

// ListFilter represents filter options for the warehouse list
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Type     string `form:"type" binding:"omitempty,oneof=physical virtual transit"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Address   string    `json:"address,omitempty"`
	IsDefault bool      `json:"is_default"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Type:      string(w.Type),
		Status:    string(w.Status),
		Address:   w.Address,
		IsDefault: w.IsDefault,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWarehouseResponses converts a slice of domain warehouses
func ToWarehouseResponses(warehouses []warehouse.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		responses[i] = ToWarehouseResponse(&warehouses[i])
	}
	return responses
}
