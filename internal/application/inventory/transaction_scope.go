package inventory

import (
	"context"

	"github.com/erp/stockledger/internal/domain/inventory"
)

// TransactionScope provides transactional access to ledger repositories.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all ledger repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// StockRepo is the only writer of quantity and reserved quantity. MovementRepo is
// append-only. The other repositories hold the aggregates whose changes must
// commit together with the stock records they affect.
type TransactionalRepositories interface {
	StockRepo() inventory.StockRecordRepository
	MovementRepo() inventory.MovementRepository
	BatchRepo() inventory.BatchRepository
	ReservationRepo() inventory.ReservationRepository
	TransferRepo() inventory.TransferRepository
	CycleCountRepo() inventory.CycleCountRepository
}
