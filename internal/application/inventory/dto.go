package inventory

import (
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockRecordResponse represents a stock record in API responses
type StockRecordResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	AvgCost           decimal.Decimal `json:"avg_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	SafetyStock       decimal.Decimal `json:"safety_stock"`
	MaxStock          decimal.Decimal `json:"max_stock"`
	BatchTracked      bool            `json:"batch_tracked"`
	IsLowStock        bool            `json:"is_low_stock"`
	IsOutOfStock      bool            `json:"is_out_of_stock"`
	IsOverstock       bool            `json:"is_overstock"`
	LastMovementAt    *time.Time      `json:"last_movement_at,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToStockRecordResponse converts a domain StockRecord to a response
func ToStockRecordResponse(rec *inventory.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:                rec.ID,
		ProductID:         rec.ProductID,
		WarehouseID:       rec.WarehouseID,
		Quantity:          rec.Quantity,
		ReservedQuantity:  rec.ReservedQuantity,
		AvailableQuantity: rec.AvailableQuantity(),
		AvgCost:           rec.AvgCost,
		TotalValue:        rec.TotalValue(),
		ReorderLevel:      rec.ReorderLevel,
		SafetyStock:       rec.SafetyStock,
		MaxStock:          rec.MaxStock,
		BatchTracked:      rec.BatchTracked,
		IsLowStock:        rec.IsLowStock(),
		IsOutOfStock:      rec.IsOutOfStock(),
		IsOverstock:       rec.IsOverstock(),
		LastMovementAt:    rec.LastMovementAt,
		Version:           rec.Version,
		CreatedAt:         rec.CreatedAt,
		UpdatedAt:         rec.UpdatedAt,
	}
}

// ToStockRecordResponses converts a slice of records
func ToStockRecordResponses(recs []inventory.StockRecord) []StockRecordResponse {
	out := make([]StockRecordResponse, len(recs))
	for i := range recs {
		out[i] = ToStockRecordResponse(&recs[i])
	}
	return out
}

// MovementResponse represents a ledger entry in API responses
type MovementResponse struct {
	ID            uuid.UUID                   `json:"id"`
	ProductID     uuid.UUID                   `json:"product_id"`
	WarehouseID   uuid.UUID                   `json:"warehouse_id"`
	Type          string                      `json:"type"`
	QuantityDelta decimal.Decimal             `json:"quantity_delta"`
	UnitCost      decimal.Decimal             `json:"unit_cost"`
	TotalValue    decimal.Decimal             `json:"total_value"`
	BalanceBefore decimal.Decimal             `json:"balance_before"`
	BalanceAfter  decimal.Decimal             `json:"balance_after"`
	AvgCostAfter  decimal.Decimal             `json:"avg_cost_after"`
	Sequence      int64                       `json:"sequence"`
	Reference     string                      `json:"reference,omitempty"`
	Reason        string                      `json:"reason,omitempty"`
	Actor         string                      `json:"actor,omitempty"`
	ReservationID *uuid.UUID                  `json:"reservation_id,omitempty"`
	TransferID    *uuid.UUID                  `json:"transfer_id,omitempty"`
	ReversalOfID  *uuid.UUID                  `json:"reversal_of_id,omitempty"`
	Allocations   []inventory.BatchAllocation `json:"allocations,omitempty"`
	Timestamp     time.Time                   `json:"timestamp"`
}

// ToMovementResponse converts a domain MovementEntry to a response
func ToMovementResponse(e *inventory.MovementEntry) MovementResponse {
	return MovementResponse{
		ID:            e.ID,
		ProductID:     e.ProductID,
		WarehouseID:   e.WarehouseID,
		Type:          string(e.Type),
		QuantityDelta: e.QuantityDelta,
		UnitCost:      e.UnitCost,
		TotalValue:    e.TotalValue(),
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		AvgCostAfter:  e.AvgCostAfter,
		Sequence:      e.Sequence,
		Reference:     e.Reference,
		Reason:        e.Reason,
		Actor:         e.Actor,
		ReservationID: e.ReservationID,
		TransferID:    e.TransferID,
		ReversalOfID:  e.ReversalOfID,
		Allocations:   e.Allocations,
		Timestamp:     e.Timestamp,
	}
}

// ToMovementResponses converts a slice of entries
func ToMovementResponses(entries []inventory.MovementEntry) []MovementResponse {
	out := make([]MovementResponse, len(entries))
	for i := range entries {
		out[i] = ToMovementResponse(&entries[i])
	}
	return out
}

// RecordMovementRequest represents a request to post a movement
type RecordMovementRequest struct {
	ProductID   uuid.UUID        `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID        `json:"warehouse_id" binding:"required"`
	Type        string           `json:"type" binding:"required"`
	Quantity    decimal.Decimal  `json:"quantity" binding:"decimal_gt0"`
	UnitCost    *decimal.Decimal `json:"unit_cost"`
	Reference   string           `json:"reference" binding:"max=200"`
	Reason      string           `json:"reason" binding:"max=500"`
	Actor       string           `json:"actor" binding:"max=100"`
	// Strategy and BatchID apply to outward movements on batch-tracked stock
	Strategy string     `json:"strategy" binding:"omitempty,oneof=fifo fefo specified"`
	BatchID  *uuid.UUID `json:"batch_id"`
}

// InitializeStockRequest creates an empty stock record if none exists
type InitializeStockRequest struct {
	ProductID    uuid.UUID        `json:"product_id" binding:"required"`
	WarehouseID  uuid.UUID        `json:"warehouse_id" binding:"required"`
	ReorderLevel *decimal.Decimal `json:"reorder_level"`
	SafetyStock  *decimal.Decimal `json:"safety_stock"`
	MaxStock     *decimal.Decimal `json:"max_stock"`
	BatchTracked bool             `json:"batch_tracked"`
}

// SetThresholdsRequest represents a request to set stock thresholds
type SetThresholdsRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID  uuid.UUID       `json:"warehouse_id" binding:"required"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
}

// StockListFilter represents filter options for stock record lists
type StockListFilter struct {
	ProductID    *uuid.UUID `form:"-"`
	WarehouseID  *uuid.UUID `form:"-"`
	BatchTracked *bool      `form:"batch_tracked"`
	InStock      bool       `form:"in_stock"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderBy      string     `form:"order_by" binding:"omitempty,oneof=created_at updated_at quantity avg_cost"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MovementListFilter represents filter options for ledger queries
type MovementListFilter struct {
	ProductID   *uuid.UUID `form:"-"`
	WarehouseID *uuid.UUID `form:"-"`
	Types       []string   `form:"type"`
	Reference   string     `form:"reference"`
	TransferID  *uuid.UUID `form:"-"`
	From        *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To          *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReverseMovementRequest represents a request to offset a ledger entry
type ReverseMovementRequest struct {
	Reason string `json:"reason" binding:"max=500"`
	Actor  string `json:"actor" binding:"max=100"`
}

// ReconciliationReport is the outcome of replaying a key's ledger
type ReconciliationReport struct {
	ProductID              uuid.UUID        `json:"product_id"`
	WarehouseID            uuid.UUID        `json:"warehouse_id"`
	RecordQuantity         decimal.Decimal  `json:"record_quantity"`
	ReplayedQuantity       decimal.Decimal  `json:"replayed_quantity"`
	RecordAvgCost          decimal.Decimal  `json:"record_avg_cost"`
	ReplayedAvgCost        decimal.Decimal  `json:"replayed_avg_cost"`
	ReservedQuantity       decimal.Decimal  `json:"reserved_quantity"`
	ActiveReservationTotal decimal.Decimal  `json:"active_reservation_total"`
	BatchTracked           bool             `json:"batch_tracked"`
	BatchRemainingTotal    *decimal.Decimal `json:"batch_remaining_total,omitempty"`
	EntryCount             int              `json:"entry_count"`
	LastSequence           int64            `json:"last_sequence"`
	Consistent             bool             `json:"consistent"`
	Discrepancies          []string         `json:"discrepancies"`
	CheckedAt              time.Time        `json:"checked_at"`
}

// ValuationItem is the value of one stock record
type ValuationItem struct {
	ProductID      uuid.UUID       `json:"product_id"`
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	AvgCost        decimal.Decimal `json:"avg_cost"`
	TotalValue     decimal.Decimal `json:"total_value"`
	AvailableValue decimal.Decimal `json:"available_value"`
	ReservedValue  decimal.Decimal `json:"reserved_value"`
}

// ValuationSummary totals a valuation
type ValuationSummary struct {
	RecordCount     int             `json:"record_count"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalValue      decimal.Decimal `json:"total_value"`
	AvailableValue  decimal.Decimal `json:"available_value"`
	ReservedValue   decimal.Decimal `json:"reserved_value"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}

// ValuationResponse values stock at weighted-average cost
type ValuationResponse struct {
	WarehouseID   *uuid.UUID       `json:"warehouse_id,omitempty"`
	CostingMethod string           `json:"costing_method"`
	Items         []ValuationItem  `json:"items"`
	Summary       ValuationSummary `json:"summary"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// ReservationResponse represents a reservation in API responses
type ReservationResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Status        string          `json:"status"`
	ReferenceType string          `json:"reference_type"`
	Reference     string          `json:"reference,omitempty"`
	Actor         string          `json:"actor,omitempty"`
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	MovementID    *uuid.UUID      `json:"movement_id,omitempty"`
	ReleaseReason string          `json:"release_reason,omitempty"`
	ReleasedAt    *time.Time      `json:"released_at,omitempty"`
	FulfilledAt   *time.Time      `json:"fulfilled_at,omitempty"`
	ExpiredAt     *time.Time      `json:"expired_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToReservationResponse converts a domain Reservation to a response
func ToReservationResponse(r *inventory.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		WarehouseID:   r.WarehouseID,
		Quantity:      r.Quantity,
		Status:        string(r.Status),
		ReferenceType: string(r.ReferenceType),
		Reference:     r.Reference,
		Actor:         r.Actor,
		ExpiresAt:     r.ExpiresAt,
		MovementID:    r.MovementID,
		ReleaseReason: r.ReleaseReason,
		ReleasedAt:    r.ReleasedAt,
		FulfilledAt:   r.FulfilledAt,
		ExpiredAt:     r.ExpiredAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Version:       r.Version,
	}
}

// ToReservationResponses converts a slice of reservations
func ToReservationResponses(rs []inventory.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, len(rs))
	for i := range rs {
		out[i] = ToReservationResponse(&rs[i])
	}
	return out
}

// ReserveRequest represents a request to hold stock
type ReserveRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID   uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	ReferenceType string          `json:"reference_type" binding:"omitempty,oneof=quote sales_order project manual"`
	Reference     string          `json:"reference" binding:"max=200"`
	Actor         string          `json:"actor" binding:"max=100"`
	// ExpiresAt wins over TTLSeconds; with neither the configured default applies
	ExpiresAt  *time.Time `json:"expires_at"`
	TTLSeconds *int64     `json:"ttl_seconds" binding:"omitempty,min=0"`
}

// ReleaseReservationRequest represents a request to release a hold
type ReleaseReservationRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// FulfillReservationRequest represents a request to convert a hold into an issue
type FulfillReservationRequest struct {
	Reference string `json:"reference" binding:"max=200"`
	Actor     string `json:"actor" binding:"max=100"`
}

// ReleaseByReferenceRequest releases every active hold of a quote or order
type ReleaseByReferenceRequest struct {
	ReferenceType string `json:"reference_type" binding:"omitempty,oneof=quote sales_order project manual"`
	Reference     string `json:"reference" binding:"required,max=200"`
	Reason        string `json:"reason" binding:"max=500"`
}

// ReleaseByReferenceResponse reports how many holds were released
type ReleaseByReferenceResponse struct {
	Reference string `json:"reference"`
	Released  int    `json:"released"`
}

// ReservationListFilter represents filter options for reservation lists
type ReservationListFilter struct {
	ProductID     *uuid.UUID `form:"-"`
	WarehouseID   *uuid.UUID `form:"-"`
	Status        string     `form:"status" binding:"omitempty,oneof=active released fulfilled expired"`
	ReferenceType string     `form:"reference_type" binding:"omitempty,oneof=quote sales_order project manual"`
	Reference     string     `form:"reference"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpiredReservationStats contains statistics about an expiry sweep
type ExpiredReservationStats struct {
	TotalExpired   int       `json:"total_expired"`
	SuccessExpired int       `json:"success_expired"`
	FailedExpired  int       `json:"failed_expired"`
	ProcessedAt    time.Time `json:"processed_at"`
}

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	BatchNumber       string          `json:"batch_number"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	ReceivedDate      time.Time       `json:"received_date"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	ReceiptMovementID *uuid.UUID      `json:"receipt_movement_id,omitempty"`
	IsExhausted       bool            `json:"is_exhausted"`
	IsExpired         bool            `json:"is_expired"`
	DaysUntilExpiry   *int            `json:"days_until_expiry,omitempty"`
	AgeDays           int             `json:"age_days"`
	Version           int             `json:"version"`
}

// ToBatchResponse converts a domain Batch to a response as of now
func ToBatchResponse(b *inventory.Batch, now time.Time) BatchResponse {
	resp := BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		WarehouseID:       b.WarehouseID,
		BatchNumber:       b.BatchNumber,
		InitialQuantity:   b.InitialQuantity,
		QuantityRemaining: b.QuantityRemaining,
		UnitCost:          b.UnitCost,
		TotalValue:        b.TotalValue(),
		ReceivedDate:      b.ReceivedDate,
		ExpiryDate:        b.ExpiryDate,
		ReceiptMovementID: b.ReceiptMovementID,
		IsExhausted:       b.IsExhausted(),
		IsExpired:         b.IsExpired(now),
		AgeDays:           b.AgeDays(now),
		Version:           b.Version,
	}
	if days, ok := b.DaysUntilExpiry(now); ok {
		resp.DaysUntilExpiry = &days
	}
	return resp
}

// ToBatchResponses converts a slice of batches
func ToBatchResponses(bs []inventory.Batch, now time.Time) []BatchResponse {
	out := make([]BatchResponse, len(bs))
	for i := range bs {
		out[i] = ToBatchResponse(&bs[i], now)
	}
	return out
}

// ReceiveBatchRequest represents a receipt of a new lot
type ReceiveBatchRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID  uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReceivedDate *time.Time      `json:"received_date"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	BatchNumber  string          `json:"batch_number" binding:"max=64"`
	Reference    string          `json:"reference" binding:"max=200"`
	Actor        string          `json:"actor" binding:"max=100"`
}

// ReceiveBatchResponse pairs the new lot with its receipt entry
type ReceiveBatchResponse struct {
	Batch    BatchResponse    `json:"batch"`
	Movement MovementResponse `json:"movement"`
}

// AllocationPreviewRequest asks which lots an outward movement would take
type AllocationPreviewRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	Strategy    string          `json:"strategy" binding:"omitempty,oneof=fifo fefo specified"`
	BatchID     *uuid.UUID      `json:"batch_id"`
}

// AllocationPreviewResponse is a dry-run allocation plan
type AllocationPreviewResponse struct {
	Strategy            string                      `json:"strategy"`
	Allocations         []inventory.BatchAllocation `json:"allocations"`
	TotalAllocated      decimal.Decimal             `json:"total_allocated"`
	TotalCost           decimal.Decimal             `json:"total_cost"`
	WeightedAverageCost decimal.Decimal             `json:"weighted_average_cost"`
}

// BatchListFilter represents filter options for batch lists
type BatchListFilter struct {
	ProductID        *uuid.UUID `form:"-"`
	WarehouseID      *uuid.UUID `form:"-"`
	IncludeExhausted bool       `form:"include_exhausted"`
	Page             int        `form:"page" binding:"omitempty,min=1"`
	PageSize         int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderDir         string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpiringBatchesFilter selects lots expiring within a horizon
type ExpiringBatchesFilter struct {
	WarehouseID *uuid.UUID `form:"-"`
	HorizonDays int        `form:"horizon_days" binding:"omitempty,min=1,max=3650"`
}

// TransferResponse represents a transfer in API responses
type TransferResponse struct {
	ID                     uuid.UUID                   `json:"id"`
	ProductID              uuid.UUID                   `json:"product_id"`
	SourceWarehouseID      uuid.UUID                   `json:"source_warehouse_id"`
	DestinationWarehouseID uuid.UUID                   `json:"destination_warehouse_id"`
	Quantity               decimal.Decimal             `json:"quantity"`
	UnitCost               decimal.Decimal             `json:"unit_cost"`
	Status                 string                      `json:"status"`
	Reference              string                      `json:"reference"`
	Actor                  string                      `json:"actor,omitempty"`
	OutMovementID          *uuid.UUID                  `json:"out_movement_id,omitempty"`
	InMovementID           *uuid.UUID                  `json:"in_movement_id,omitempty"`
	CompensationMovementID *uuid.UUID                  `json:"compensation_movement_id,omitempty"`
	Allocations            []inventory.BatchAllocation `json:"allocations,omitempty"`
	CancelReason           string                      `json:"cancel_reason,omitempty"`
	DispatchedAt           *time.Time                  `json:"dispatched_at,omitempty"`
	CompletedAt            *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt            *time.Time                  `json:"cancelled_at,omitempty"`
	CreatedAt              time.Time                   `json:"created_at"`
	Version                int                         `json:"version"`
}

// ToTransferResponse converts a domain Transfer to a response
func ToTransferResponse(t *inventory.Transfer) TransferResponse {
	return TransferResponse{
		ID:                     t.ID,
		ProductID:              t.ProductID,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Quantity:               t.Quantity,
		UnitCost:               t.UnitCost,
		Status:                 string(t.Status),
		Reference:              t.Reference,
		Actor:                  t.Actor,
		OutMovementID:          t.OutMovementID,
		InMovementID:           t.InMovementID,
		CompensationMovementID: t.CompensationMovementID,
		Allocations:            t.Allocations,
		CancelReason:           t.CancelReason,
		DispatchedAt:           t.DispatchedAt,
		CompletedAt:            t.CompletedAt,
		CancelledAt:            t.CancelledAt,
		CreatedAt:              t.CreatedAt,
		Version:                t.Version,
	}
}

// ToTransferResponses converts a slice of transfers
func ToTransferResponses(ts []inventory.Transfer) []TransferResponse {
	out := make([]TransferResponse, len(ts))
	for i := range ts {
		out[i] = ToTransferResponse(&ts[i])
	}
	return out
}

// TransferRequest represents a request to move stock between warehouses
type TransferRequest struct {
	ProductID              uuid.UUID       `json:"product_id" binding:"required"`
	SourceWarehouseID      uuid.UUID       `json:"source_warehouse_id" binding:"required"`
	DestinationWarehouseID uuid.UUID       `json:"destination_warehouse_id" binding:"required"`
	Quantity               decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	Reference              string          `json:"reference" binding:"max=200"`
	Actor                  string          `json:"actor" binding:"max=100"`
}

// ReceiveTransferRequest represents the arrival of an in-transit transfer
type ReceiveTransferRequest struct {
	Actor string `json:"actor" binding:"max=100"`
}

// CancelTransferRequest represents a request to return in-transit stock to its source
type CancelTransferRequest struct {
	Reason string `json:"reason" binding:"max=500"`
	Actor  string `json:"actor" binding:"max=100"`
}

// TransferListFilter represents filter options for transfer lists
type TransferListFilter struct {
	ProductID   *uuid.UUID `form:"-"`
	WarehouseID *uuid.UUID `form:"-"`
	Status      string     `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CycleCountLineResponse represents one counted product
type CycleCountLineResponse struct {
	ProductID       uuid.UUID        `json:"product_id"`
	SystemQuantity  decimal.Decimal  `json:"system_quantity"`
	AvgCost         decimal.Decimal  `json:"avg_cost"`
	CountedQuantity *decimal.Decimal `json:"counted_quantity,omitempty"`
	Variance        *decimal.Decimal `json:"variance,omitempty"`
	VarianceValue   *decimal.Decimal `json:"variance_value,omitempty"`
	AppliedQuantity *decimal.Decimal `json:"applied_quantity,omitempty"`
	AdjustmentID    *uuid.UUID       `json:"adjustment_id,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CountedBy       string           `json:"counted_by,omitempty"`
	CountedAt       *time.Time       `json:"counted_at,omitempty"`
}

// CycleCountResponse represents a cycle count in API responses
type CycleCountResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Number        string                     `json:"number"`
	WarehouseID   uuid.UUID                  `json:"warehouse_id"`
	CountType     string                     `json:"count_type"`
	Status        string                     `json:"status"`
	Lines         []CycleCountLineResponse   `json:"lines"`
	Totals        inventory.CycleCountTotals `json:"totals"`
	Notes         string                     `json:"notes,omitempty"`
	Actor         string                     `json:"actor,omitempty"`
	ApprovedBy    string                     `json:"approved_by,omitempty"`
	CancelReason  string                     `json:"cancel_reason,omitempty"`
	ScheduledDate *time.Time                 `json:"scheduled_date,omitempty"`
	StartedAt     *time.Time                 `json:"started_at,omitempty"`
	SubmittedAt   *time.Time                 `json:"submitted_at,omitempty"`
	ApprovedAt    *time.Time                 `json:"approved_at,omitempty"`
	CompletedAt   *time.Time                 `json:"completed_at,omitempty"`
	CancelledAt   *time.Time                 `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	Version       int                        `json:"version"`
}

// ToCycleCountResponse converts a domain CycleCount to a response
func ToCycleCountResponse(c *inventory.CycleCount) CycleCountResponse {
	lines := make([]CycleCountLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CycleCountLineResponse{
			ProductID:       l.ProductID,
			SystemQuantity:  l.SystemQuantity,
			AvgCost:         l.AvgCost,
			CountedQuantity: l.CountedQuantity,
			Variance:        l.Variance,
			VarianceValue:   l.VarianceValue,
			AppliedQuantity: l.AppliedQuantity,
			AdjustmentID:    l.AdjustmentID,
			Notes:           l.Notes,
			CountedBy:       l.CountedBy,
			CountedAt:       l.CountedAt,
		}
	}
	return CycleCountResponse{
		ID:            c.ID,
		Number:        c.Number,
		WarehouseID:   c.WarehouseID,
		CountType:     string(c.CountType),
		Status:        string(c.Status),
		Lines:         lines,
		Totals:        c.Totals(),
		Notes:         c.Notes,
		Actor:         c.Actor,
		ApprovedBy:    c.ApprovedBy,
		CancelReason:  c.CancelReason,
		ScheduledDate: c.ScheduledDate,
		StartedAt:     c.StartedAt,
		SubmittedAt:   c.SubmittedAt,
		ApprovedAt:    c.ApprovedAt,
		CompletedAt:   c.CompletedAt,
		CancelledAt:   c.CancelledAt,
		CreatedAt:     c.CreatedAt,
		Version:       c.Version,
	}
}

// ToCycleCountResponses converts a slice of cycle counts
func ToCycleCountResponses(cs []inventory.CycleCount) []CycleCountResponse {
	out := make([]CycleCountResponse, len(cs))
	for i := range cs {
		out[i] = ToCycleCountResponse(&cs[i])
	}
	return out
}

// CreateCycleCountRequest opens a count. An empty ProductIDs counts every
// record of the warehouse.
type CreateCycleCountRequest struct {
	WarehouseID   uuid.UUID   `json:"warehouse_id" binding:"required"`
	CountType     string      `json:"count_type" binding:"omitempty,oneof=full partial"`
	ProductIDs    []uuid.UUID `json:"product_ids"`
	ScheduledDate *time.Time  `json:"scheduled_date"`
	Notes         string      `json:"notes" binding:"max=500"`
	Actor         string      `json:"actor" binding:"max=100"`
}

// CountLineRequest is one counted quantity
type CountLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes" binding:"max=500"`
}

// RecordCountsRequest carries counted quantities for a count in progress
type RecordCountsRequest struct {
	Counts []CountLineRequest `json:"counts" binding:"required,min=1,dive"`
	Actor  string             `json:"actor" binding:"max=100"`
}

// ApproveCycleCountRequest records who approved a count
type ApproveCycleCountRequest struct {
	Actor string `json:"actor" binding:"max=100"`
}

// ApplyCycleCountRequest records who posted the adjustments of a count
type ApplyCycleCountRequest struct {
	Actor string `json:"actor" binding:"max=100"`
}

// CancelCycleCountRequest abandons a count
type CancelCycleCountRequest struct {
	Reason string `json:"reason" binding:"max=500"`
	Actor  string `json:"actor" binding:"max=100"`
}

// CycleCountListFilter represents filter options for cycle count lists
type CycleCountListFilter struct {
	WarehouseID *uuid.UUID `form:"-"`
	Status      string     `form:"status" binding:"omitempty,oneof=draft in_progress pending_approval approved completed cancelled"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=500"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AlertFilter narrows an alert scan
type AlertFilter struct {
	WarehouseID *uuid.UUID `form:"-"`
	Types       []string   `form:"type"`
	HorizonDays int        `form:"horizon_days" binding:"omitempty,min=1,max=3650"`
}

// AlertReport is the result of an alert scan
type AlertReport struct {
	Alerts      []inventory.Alert      `json:"alerts"`
	Summary     inventory.AlertSummary `json:"summary"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// ReorderSuggestionRequest narrows reorder suggestions
type ReorderSuggestionRequest struct {
	ProductIDs  []uuid.UUID `json:"product_ids"`
	WarehouseID *uuid.UUID  `json:"warehouse_id"`
}

func pageFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	f := shared.DefaultFilter()
	f.Page = page
	f.PageSize = pageSize
	if orderBy != "" {
		f.OrderBy = orderBy
	}
	if orderDir != "" {
		f.OrderDir = orderDir
	}
	return f.Normalize()
}

// AgingBucket groups non-exhausted lots by days since receipt
type AgingBucket struct {
	Label      string          `json:"label"`
	MinDays    int             `json:"min_days"`
	MaxDays    *int            `json:"max_days,omitempty"`
	BatchCount int             `json:"batch_count"`
	Quantity   decimal.Decimal `json:"quantity"`
	Value      decimal.Decimal `json:"value"`
}

// AgingReport summarizes how long stock has been held
type AgingReport struct {
	WarehouseID *uuid.UUID      `json:"warehouse_id,omitempty"`
	Buckets     []AgingBucket   `json:"buckets"`
	TotalValue  decimal.Decimal `json:"total_value"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// AgingFilter narrows an aging report
type AgingFilter struct {
	ProductID   *uuid.UUID `form:"-"`
	WarehouseID *uuid.UUID `form:"-"`
}
