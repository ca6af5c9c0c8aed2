package inventory

import (
	"errors"
	"testing"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransfer(t *testing.T) {
	productID, src, dst := uuid.New(), uuid.New(), uuid.New()

	t.Run("creates a pending transfer with a default reference", func(t *testing.T) {
		tr, err := NewTransfer(productID, src, dst, dec(10), "", "bob")
		require.NoError(t, err)
		assert.True(t, tr.IsPending())
		assert.Equal(t, "TRF-"+tr.ID.String()[:8], tr.Reference)
		assert.Equal(t, NewStockKey(productID, src), tr.SourceKey())
		assert.Equal(t, NewStockKey(productID, dst), tr.DestinationKey())
	})

	t.Run("same warehouse is rejected", func(t *testing.T) {
		_, err := NewTransfer(productID, src, src, dec(10), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		_, err := NewTransfer(productID, src, dst, dec(0), "", "")
		assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))
	})
}

func TestTransfer_Lifecycle(t *testing.T) {
	newDispatched := func(t *testing.T) *Transfer {
		tr, err := NewTransfer(uuid.New(), uuid.New(), uuid.New(), dec(10), "T-1", "")
		require.NoError(t, err)
		assert.Error(t, tr.CanReceive())
		out := &MovementEntry{ID: uuid.New(), UnitCost: dec(7)}
		require.NoError(t, tr.MarkDispatched(out))
		assert.Equal(t, "7", tr.UnitCost.String())
		return tr
	}

	t.Run("dispatch then receive", func(t *testing.T) {
		tr := newDispatched(t)
		require.NoError(t, tr.CanReceive())
		assert.Error(t, tr.MarkDispatched(&MovementEntry{ID: uuid.New()}))

		require.NoError(t, tr.MarkCompleted(&MovementEntry{ID: uuid.New()}))
		assert.Equal(t, TransferStatusCompleted, tr.Status)
		assert.NotNil(t, tr.CompletedAt)

		err := tr.MarkCancelled(&MovementEntry{ID: uuid.New()}, "late")
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("dispatch then cancel", func(t *testing.T) {
		tr := newDispatched(t)
		require.NoError(t, tr.MarkCancelled(&MovementEntry{ID: uuid.New()}, "wrong destination"))
		assert.Equal(t, TransferStatusCancelled, tr.Status)
		assert.Equal(t, "wrong destination", tr.CancelReason)

		err := tr.MarkCompleted(&MovementEntry{ID: uuid.New()})
		assert.True(t, errors.Is(err, shared.ErrInvalidState))

		var types []string
		for _, e := range tr.PendingEvents() {
			types = append(types, e.EventType())
		}
		assert.Equal(t, []string{EventTypeTransferDispatched, EventTypeTransferCancelled}, types)
	})
}
