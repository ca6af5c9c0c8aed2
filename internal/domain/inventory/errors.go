package inventory

import (
	"fmt"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error codes raised by the stock ledger
const (
	CodeInvalidQuantity            = "INVALID_QUANTITY"
	CodeInvalidMovementType        = "INVALID_MOVEMENT_TYPE"
	CodeInsufficientStock          = "INSUFFICIENT_STOCK"
	CodeInsufficientAvailableStock = "INSUFFICIENT_AVAILABLE_STOCK"
	CodeInvalidState               = "INVALID_STATE"
	CodeNotFound                   = "NOT_FOUND"
	CodeConcurrencyConflict        = "CONCURRENCY_CONFLICT"
)

func invalidQuantity(message string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidQuantity, message)
}

func invalidInput(message string) *shared.DomainError {
	return shared.NewDomainError(shared.ErrInvalidInput.Code, message)
}

func invalidState(message string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidState, message)
}

// NewInsufficientStockError reports an outward movement that would breach on-hand or reserved stock
func NewInsufficientStockError(key StockKey, requested, available decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		CodeInsufficientStock,
		fmt.Sprintf("Insufficient stock: requested %s, available %s", requested.String(), available.String()),
		shortfallDetails(key, requested, available),
	)
}

// NewInsufficientAvailableStockError reports a reservation larger than the available quantity
func NewInsufficientAvailableStockError(key StockKey, requested, available decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		CodeInsufficientAvailableStock,
		fmt.Sprintf("Insufficient available stock: requested %s, available %s", requested.String(), available.String()),
		shortfallDetails(key, requested, available),
	)
}

// NewStockRecordNotFoundError reports a missing (product, warehouse) pair
func NewStockRecordNotFoundError(key StockKey) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		CodeNotFound,
		"Stock record not found",
		map[string]any{
			"product_id":   key.ProductID.String(),
			"warehouse_id": key.WarehouseID.String(),
		},
	)
}

// NewNotFoundError reports a missing entity by kind and id
func NewNotFoundError(kind string, id uuid.UUID) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		CodeNotFound,
		fmt.Sprintf("%s not found", kind),
		map[string]any{"id": id.String()},
	)
}

func shortfallDetails(key StockKey, requested, available decimal.Decimal) map[string]any {
	shortfall := requested.Sub(available)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}
	return map[string]any{
		"product_id":   key.ProductID.String(),
		"warehouse_id": key.WarehouseID.String(),
		"requested":    requested.String(),
		"available":    available.String(),
		"shortfall":    shortfall.String(),
	}
}

// NewInvalidMovementTypeError reports a movement type the ledger cannot post
func NewInvalidMovementTypeError(raw string) *shared.DomainError {
	return shared.NewDomainErrorWithDetails(
		CodeInvalidMovementType,
		fmt.Sprintf("Movement type %q is not a recognized inward or outward kind", raw),
		map[string]any{"type": raw},
	)
}
