package warehouse

import (
	"context"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter narrows warehouse listings
type Filter struct {
	shared.Filter
	Status Status
	Type   Type
	Search string
}

// Repository defines the interface for warehouse persistence
type Repository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByCode finds a warehouse by its code
	FindByCode(ctx context.Context, code string) (*Warehouse, error)

	// List returns a page of warehouses and the total match count
	List(ctx context.Context, filter Filter) ([]Warehouse, int64, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, w *Warehouse) error

	// ExistsByCode checks if a warehouse with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ClearDefault clears the default flag on every warehouse
	ClearDefault(ctx context.Context) error
}
