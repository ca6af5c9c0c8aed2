package inventory

import (
	"context"
	"errors"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransferService moves stock between warehouses, either in one step or as
// a dispatch followed by a receive or cancel
type TransferService struct {
	*Core
}

// NewTransferService creates a new TransferService
func NewTransferService(core *Core) *TransferService {
	return &TransferService{Core: core}
}

// Transfer posts both legs and the completed transfer in one transaction
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	keys := []inventory.StockKey{
		inventory.NewStockKey(req.ProductID, req.SourceWarehouseID),
		inventory.NewStockKey(req.ProductID, req.DestinationWarehouseID),
	}
	var transfer *inventory.Transfer
	err := s.mutate(ctx, "transfer", keys, func(tx *txContext) error {
		t, out, err := s.dispatch(ctx, tx, req)
		if err != nil {
			return err
		}
		in, err := s.postInLeg(ctx, tx, t, t.DestinationKey(), t.Reference, "", out.consumed)
		if err != nil {
			return err
		}
		if err := t.MarkCompleted(in.entry); err != nil {
			return err
		}
		if err := tx.repos.TransferRepo().Create(ctx, t); err != nil {
			return err
		}
		tx.collect(t)
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordLegs(ctx, transfer, inventory.MovementTypeTransferOut, inventory.MovementTypeTransferIn)
	s.logTransfer("Stock transferred", transfer)
	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// DispatchTransfer posts the out-leg and leaves the transfer pending while
// stock is in transit
func (s *TransferService) DispatchTransfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	keys := []inventory.StockKey{
		inventory.NewStockKey(req.ProductID, req.SourceWarehouseID),
		inventory.NewStockKey(req.ProductID, req.DestinationWarehouseID),
	}
	var transfer *inventory.Transfer
	err := s.mutate(ctx, "dispatch_transfer", keys, func(tx *txContext) error {
		t, _, err := s.dispatch(ctx, tx, req)
		if err != nil {
			return err
		}
		if err := tx.repos.TransferRepo().Create(ctx, t); err != nil {
			return err
		}
		tx.collect(t)
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordLegs(ctx, transfer, inventory.MovementTypeTransferOut)
	s.logTransfer("Transfer dispatched", transfer)
	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// ReceiveTransfer posts the in-leg of a pending transfer
func (s *TransferService) ReceiveTransfer(ctx context.Context, id uuid.UUID, req ReceiveTransferRequest) (*TransferResponse, error) {
	current, err := s.findTransfer(ctx, s.repos.Transfers, id)
	if err != nil {
		return nil, err
	}
	if err := current.CanReceive(); err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, current.DestinationWarehouseID); err != nil {
		return nil, err
	}

	var transfer *inventory.Transfer
	err = s.mutate(ctx, "receive_transfer", []inventory.StockKey{current.SourceKey(), current.DestinationKey()}, func(tx *txContext) error {
		t, err := s.findTransfer(ctx, tx.repos.TransferRepo(), id)
		if err != nil {
			return err
		}
		loaded := t.Version
		if err := t.CanReceive(); err != nil {
			return err
		}
		in, err := s.postInLeg(ctx, tx, t, t.DestinationKey(), t.Reference, req.Actor, nil)
		if err != nil {
			return err
		}
		if err := t.MarkCompleted(in.entry); err != nil {
			return err
		}
		if err := tx.repos.TransferRepo().Update(ctx, t, loaded); err != nil {
			return err
		}
		tx.collect(t)
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordLegs(ctx, transfer, inventory.MovementTypeTransferIn)
	s.logTransfer("Transfer received", transfer)
	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// CancelTransfer returns in-transit stock to the source with a compensating entry
func (s *TransferService) CancelTransfer(ctx context.Context, id uuid.UUID, req CancelTransferRequest) (*TransferResponse, error) {
	current, err := s.findTransfer(ctx, s.repos.Transfers, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireWritable(ctx, current.SourceWarehouseID); err != nil {
		return nil, err
	}

	var transfer *inventory.Transfer
	err = s.mutate(ctx, "cancel_transfer", []inventory.StockKey{current.SourceKey(), current.DestinationKey()}, func(tx *txContext) error {
		t, err := s.findTransfer(ctx, tx.repos.TransferRepo(), id)
		if err != nil {
			return err
		}
		loaded := t.Version
		if err := t.CanReceive(); err != nil {
			return shared.NewDomainErrorWithDetails(inventory.CodeInvalidState,
				"Only an in-transit transfer can be cancelled",
				map[string]any{"transfer_id": t.ID.String(), "status": string(t.Status)})
		}
		compensation, err := s.postInLeg(ctx, tx, t, t.SourceKey(), "CANCEL-"+t.Reference, req.Actor, nil)
		if err != nil {
			return err
		}
		if err := t.MarkCancelled(compensation.entry, req.Reason); err != nil {
			return err
		}
		if err := tx.repos.TransferRepo().Update(ctx, t, loaded); err != nil {
			return err
		}
		tx.collect(t)
		transfer = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordLegs(ctx, transfer, inventory.MovementTypeTransferIn)
	s.logTransfer("Transfer cancelled", transfer)
	resp := ToTransferResponse(transfer)
	return &resp, nil
}

// GetTransfer returns one transfer
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*TransferResponse, error) {
	t, err := s.findTransfer(ctx, s.repos.Transfers, id)
	if err != nil {
		return nil, err
	}
	resp := ToTransferResponse(t)
	return &resp, nil
}

// ListTransfers returns a page of transfers
func (s *TransferService) ListTransfers(ctx context.Context, filter TransferListFilter) ([]TransferResponse, int64, error) {
	ts, total, err := s.repos.Transfers.List(ctx, inventory.TransferFilter{
		Filter:      pageFilter(filter.Page, filter.PageSize, "created_at", filter.OrderDir),
		ProductID:   filter.ProductID,
		WarehouseID: filter.WarehouseID,
		Status:      inventory.TransferStatus(filter.Status),
	})
	if err != nil {
		return nil, 0, err
	}
	return ToTransferResponses(ts), total, nil
}

func (s *TransferService) validate(ctx context.Context, req TransferRequest) error {
	// Constructing the aggregate checks ids, quantity and distinct warehouses
	if _, err := inventory.NewTransfer(req.ProductID, req.SourceWarehouseID, req.DestinationWarehouseID, req.Quantity, req.Reference, req.Actor); err != nil {
		return err
	}
	return s.requireWritable(ctx, req.SourceWarehouseID, req.DestinationWarehouseID)
}

// dispatch creates the transfer and posts its out-leg. The aggregate is built
// inside the transaction so a retried attempt starts from a fresh one.
func (s *TransferService) dispatch(ctx context.Context, tx *txContext, req TransferRequest) (*inventory.Transfer, *posted, error) {
	t, err := inventory.NewTransfer(req.ProductID, req.SourceWarehouseID, req.DestinationWarehouseID, req.Quantity, req.Reference, req.Actor)
	if err != nil {
		return nil, nil, err
	}
	out, err := s.post(ctx, tx, postSpec{
		key: t.SourceKey(),
		movement: inventory.MovementRequest{
			Type:       inventory.MovementTypeTransferOut,
			Quantity:   t.Quantity,
			Reference:  t.Reference,
			Actor:      t.Actor,
			TransferID: &t.ID,
		},
		strategy: inventory.AllocationStrategyFIFO,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := t.MarkDispatched(out.entry); err != nil {
		return nil, nil, err
	}
	return t, out, nil
}

// postInLeg posts a transfer_in of the full transfer quantity at the
// transfer's unit cost. Lots taken from the source are recreated on the
// receiving side with the same number, dates and cost.
func (s *TransferService) postInLeg(ctx context.Context, tx *txContext, t *inventory.Transfer, key inventory.StockKey, reference, actor string, consumed map[uuid.UUID]*inventory.Batch) (*posted, error) {
	if actor == "" {
		actor = t.Actor
	}
	lots, err := s.transferLots(ctx, tx, t.Allocations, consumed)
	if err != nil {
		return nil, err
	}
	unitCost := t.UnitCost
	return s.post(ctx, tx, postSpec{
		key: key,
		movement: inventory.MovementRequest{
			Type:       inventory.MovementTypeTransferIn,
			Quantity:   t.Quantity,
			UnitCost:   &unitCost,
			Reference:  reference,
			Actor:      actor,
			TransferID: &t.ID,
		},
		lots:         lots,
		trackBatches: len(lots) > 0,
	})
}

func (s *TransferService) transferLots(ctx context.Context, tx *txContext, allocations []inventory.BatchAllocation, consumed map[uuid.UUID]*inventory.Batch) ([]lotSpec, error) {
	lots := make([]lotSpec, 0, len(allocations))
	for _, a := range allocations {
		source, ok := consumed[a.BatchID]
		if !ok {
			var err error
			source, err = tx.repos.BatchRepo().FindByID(ctx, a.BatchID)
			if err != nil {
				return nil, err
			}
		}
		cost := a.UnitCost
		lots = append(lots, lotSpec{
			number:   a.BatchNumber,
			quantity: a.Quantity,
			unitCost: &cost,
			received: source.ReceivedDate,
			expiry:   source.ExpiryDate,
		})
	}
	return lots, nil
}

func (s *TransferService) findTransfer(ctx context.Context, repo inventory.TransferRepository, id uuid.UUID) (*inventory.Transfer, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, inventory.NewNotFoundError("Transfer", id)
		}
		return nil, err
	}
	return t, nil
}

func (s *TransferService) recordLegs(ctx context.Context, t *inventory.Transfer, legs ...inventory.MovementType) {
	for _, leg := range legs {
		s.metrics.RecordMovement(ctx, string(leg), t.Quantity.InexactFloat64())
	}
}

func (s *TransferService) logTransfer(msg string, t *inventory.Transfer) {
	s.logger.Info(msg,
		zap.String("transfer_id", t.ID.String()),
		zap.String("product_id", t.ProductID.String()),
		zap.String("source_warehouse_id", t.SourceWarehouseID.String()),
		zap.String("destination_warehouse_id", t.DestinationWarehouseID.String()),
		zap.String("quantity", t.Quantity.String()),
		zap.String("status", string(t.Status)),
		zap.String("reference", t.Reference),
	)
}
