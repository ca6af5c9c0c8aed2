package inventory

import (
	"sort"

	"github.com/google/uuid"
)

// StockKey identifies a stock record. All mutations of one key are serialized.
type StockKey struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
}

// NewStockKey builds a key for a product held in a warehouse
func NewStockKey(productID, warehouseID uuid.UUID) StockKey {
	return StockKey{ProductID: productID, WarehouseID: warehouseID}
}

// String returns the canonical lock name of the key
func (k StockKey) String() string {
	return "stock:" + k.ProductID.String() + ":" + k.WarehouseID.String()
}

// IsZero reports whether either half of the key is missing
func (k StockKey) IsZero() bool {
	return k.ProductID == uuid.Nil || k.WarehouseID == uuid.Nil
}

// SortStockKeys orders keys canonically and removes duplicates.
// Multi-key operations acquire locks in this order.
func SortStockKeys(keys ...StockKey) []StockKey {
	seen := make(map[StockKey]struct{}, len(keys))
	out := make([]StockKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
