package persistence

import (
	"context"

	appinv "github.com/erp/stockledger/internal/application/inventory"
	"github.com/erp/stockledger/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope runs a ledger mutation in one database transaction.
// Every repository handed to the callback shares that transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a scope over db
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos{tx})
	})
}

type txRepos struct{ tx *gorm.DB }

func (r txRepos) StockRepo() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

func (r txRepos) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

func (r txRepos) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r txRepos) ReservationRepo() inventory.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

func (r txRepos) TransferRepo() inventory.TransferRepository {
	return NewGormTransferRepository(r.tx)
}

func (r txRepos) CycleCountRepo() inventory.CycleCountRepository {
	return NewGormCycleCountRepository(r.tx)
}

// NewRepositories builds the repositories used outside transactions
func NewRepositories(db *gorm.DB) appinv.Repositories {
	return appinv.Repositories{
		Warehouses:   NewGormWarehouseRepository(db),
		Stock:        NewGormStockRecordRepository(db),
		Movements:    NewGormMovementRepository(db),
		Batches:      NewGormBatchRepository(db),
		Reservations: NewGormReservationRepository(db),
		Transfers:    NewGormTransferRepository(db),
		CycleCounts:  NewGormCycleCountRepository(db),
	}
}

var (
	_ appinv.TransactionScope          = (*GormTransactionScope)(nil)
	_ appinv.TransactionalRepositories = txRepos{}
)
