package persistence

import (
	"slices"
	"strings"

	"github.com/erp/stockledger/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortSpec whitelists the columns a list query may be ordered by. Anything
// else, including injection attempts, falls back to the default column.
type sortSpec struct {
	fallback string
	columns  []string
}

func newSortSpec(fallback string, columns ...string) sortSpec {
	return sortSpec{fallback: fallback, columns: append(columns, fallback)}
}

// column resolves a requested sort column
func (s sortSpec) column(requested string) string {
	requested = strings.TrimSpace(requested)
	if slices.Contains(s.columns, requested) {
		return requested
	}
	return s.fallback
}

// descending reports whether dir asks for DESC. Only "asc" in any case
// sorts ascending.
func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

var (
	warehouseSort   = newSortSpec("code", "id", "created_at", "updated_at", "name", "type", "status", "is_default")
	stockRecordSort = newSortSpec("updated_at", "id", "created_at", "product_id", "warehouse_id",
		"quantity", "reserved_quantity", "avg_cost", "reorder_level", "last_movement_at")
	movementSort    = newSortSpec("occurred_at", "sequence", "movement_type", "quantity_delta", "reference")
	batchSort       = newSortSpec("received_date", "created_at", "batch_number", "expiry_date", "quantity_remaining", "unit_cost")
	reservationSort = newSortSpec("created_at", "updated_at", "quantity", "status", "expires_at", "reference")
	transferSort    = newSortSpec("created_at", "updated_at", "status", "quantity", "dispatched_at", "completed_at")
	cycleCountSort  = newSortSpec("created_at", "updated_at", "status", "number", "scheduled_date", "completed_at")
)

// applyPage orders and paginates a query, with id as the tiebreaker so
// pages are stable
func applyPage(query *gorm.DB, filter shared.Filter, spec sortSpec) *gorm.DB {
	filter = filter.Normalize()
	desc := descending(filter.OrderDir)
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: spec.column(filter.OrderBy)}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Offset(filter.Offset()).
		Limit(filter.PageSize)
}
