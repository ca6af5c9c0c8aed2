package inventory

import (
	"context"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
)

// StockRecordFilter narrows stock record listings
type StockRecordFilter struct {
	shared.Filter
	ProductID    *uuid.UUID
	WarehouseID  *uuid.UUID
	BatchTracked *bool
	// OnlyInStock hides records with nothing on hand
	OnlyInStock bool
}

// MovementFilter narrows ledger listings
type MovementFilter struct {
	shared.Filter
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	Types       []MovementType
	Reference   string
	TransferID  *uuid.UUID
	From        *time.Time
	To          *time.Time
}

// BatchFilter narrows batch listings
type BatchFilter struct {
	shared.Filter
	ProductID        *uuid.UUID
	WarehouseID      *uuid.UUID
	IncludeExhausted bool
}

// ReservationFilter narrows reservation listings
type ReservationFilter struct {
	shared.Filter
	ProductID     *uuid.UUID
	WarehouseID   *uuid.UUID
	Status        ReservationStatus
	ReferenceType ReferenceType
	Reference     string
}

// TransferFilter narrows transfer listings. WarehouseID matches either leg.
type TransferFilter struct {
	shared.Filter
	ProductID   *uuid.UUID
	WarehouseID *uuid.UUID
	Status      TransferStatus
}

// CycleCountFilter narrows cycle count listings
type CycleCountFilter struct {
	shared.Filter
	WarehouseID *uuid.UUID
	Status      CycleCountStatus
}

// StockRecordRepository persists stock records.
// Update is a compare-and-swap: it succeeds only if the stored version still
// equals expectedVersion, otherwise it returns shared.ErrConcurrencyConflict.
type StockRecordRepository interface {
	// FindByKey returns the record of a product-warehouse pair or a NOT_FOUND error
	FindByKey(ctx context.Context, key StockKey) (*StockRecord, error)

	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// GetOrCreate returns the existing record or inserts an empty one
	GetOrCreate(ctx context.Context, key StockKey) (*StockRecord, error)

	// Update writes the record if its stored version equals expectedVersion
	Update(ctx context.Context, rec *StockRecord, expectedVersion int) error

	// List returns a page of records and the total match count
	List(ctx context.Context, filter StockRecordFilter) ([]StockRecord, int64, error)

	// ListForScan returns every record, optionally limited to one warehouse
	ListForScan(ctx context.Context, warehouseID *uuid.UUID) ([]StockRecord, error)
}

// MovementRepository persists ledger entries. Entries are insert-only.
type MovementRepository interface {
	// Create appends an entry to the ledger
	Create(ctx context.Context, entry *MovementEntry) error

	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MovementEntry, error)

	// FindByKey returns every entry of a key ordered by sequence
	FindByKey(ctx context.Context, key StockKey) ([]MovementEntry, error)

	// ExistsReversalOf reports whether an entry has already been reversed
	ExistsReversalOf(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns a page of entries, newest first by default
	List(ctx context.Context, filter MovementFilter) ([]MovementEntry, int64, error)
}

// BatchRepository persists receipt lots
type BatchRepository interface {
	Create(ctx context.Context, batch *Batch) error

	// Update writes the batch if its stored version equals expectedVersion
	Update(ctx context.Context, batch *Batch, expectedVersion int) error

	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindAvailableByKey returns the non-exhausted batches of a key
	FindAvailableByKey(ctx context.Context, key StockKey) ([]Batch, error)

	// FindExpiring returns non-exhausted batches with an expiry on or before the cut-off,
	// including those already expired
	FindExpiring(ctx context.Context, before time.Time, warehouseID *uuid.UUID) ([]Batch, error)

	List(ctx context.Context, filter BatchFilter) ([]Batch, int64, error)
}

// ReservationRepository persists reservations
type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error

	// Update writes the reservation if its stored version equals expectedVersion
	Update(ctx context.Context, r *Reservation, expectedVersion int) error

	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindActiveByKey returns the active reservations holding stock of a key
	FindActiveByKey(ctx context.Context, key StockKey) ([]Reservation, error)

	// FindDue returns up to limit active reservations whose expiry is before now
	FindDue(ctx context.Context, now time.Time, limit int) ([]Reservation, error)

	// FindActiveByReference returns the active reservations created for a reference
	FindActiveByReference(ctx context.Context, reference string) ([]Reservation, error)

	List(ctx context.Context, filter ReservationFilter) ([]Reservation, int64, error)
}

// TransferRepository persists warehouse transfers
type TransferRepository interface {
	Create(ctx context.Context, t *Transfer) error

	// Update writes the transfer if its stored version equals expectedVersion
	Update(ctx context.Context, t *Transfer, expectedVersion int) error

	FindByID(ctx context.Context, id uuid.UUID) (*Transfer, error)

	List(ctx context.Context, filter TransferFilter) ([]Transfer, int64, error)
}

// CycleCountRepository persists physical counts
type CycleCountRepository interface {
	Create(ctx context.Context, c *CycleCount) error

	// Update writes the count if its stored version equals expectedVersion
	Update(ctx context.Context, c *CycleCount, expectedVersion int) error

	FindByID(ctx context.Context, id uuid.UUID) (*CycleCount, error)

	List(ctx context.Context, filter CycleCountFilter) ([]CycleCount, int64, error)
}
