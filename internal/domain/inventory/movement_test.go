package inventory

import (
	"errors"
	"testing"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementType_Classification(t *testing.T) {
	inward := []MovementType{MovementTypeReceipt, MovementTypeTransferIn, MovementTypeAdjustmentIn}
	outward := []MovementType{MovementTypeIssue, MovementTypeTransferOut, MovementTypeAdjustmentOut, MovementTypeWastage}

	for _, mt := range inward {
		assert.True(t, mt.IsInward(), mt)
		assert.False(t, mt.IsOutward(), mt)
		assert.Equal(t, MovementTypeAdjustmentOut, mt.ReversalType())
	}
	for _, mt := range outward {
		assert.True(t, mt.IsOutward(), mt)
		assert.False(t, mt.IsInward(), mt)
		assert.Equal(t, MovementTypeAdjustmentIn, mt.ReversalType())
	}
	for _, mt := range []MovementType{MovementTypeReservation, MovementTypeRelease} {
		assert.True(t, mt.IsValid())
		assert.False(t, mt.IsPostable())
	}
	assert.Len(t, AllMovementTypes(), 9)
}

func TestParseMovementType(t *testing.T) {
	mt, err := ParseMovementType("wastage")
	require.NoError(t, err)
	assert.Equal(t, MovementTypeWastage, mt)

	_, err = ParseMovementType("reservation")
	assert.True(t, errors.Is(err, shared.ErrInvalidMovementType))

	_, err = ParseMovementType("")
	assert.True(t, errors.Is(err, shared.ErrInvalidMovementType))
}

func TestReplay(t *testing.T) {
	t.Run("rebuilds quantity and average cost from entries", func(t *testing.T) {
		rec := newTestRecord(t)
		var entries []MovementEntry
		entries = append(entries, *receive(t, rec, 100, 10))
		require.NoError(t, rec.Reserve(dec(20)))
		entries = append(entries, *receive(t, rec, 50, 16))
		out, err := rec.ApplyMovement(MovementRequest{Type: MovementTypeWastage, Quantity: dec(15)})
		require.NoError(t, err)
		entries = append(entries, *out)
		in, err := rec.ApplyMovement(MovementRequest{Type: MovementTypeTransferIn, Quantity: dec(15), UnitCost: costPtr(20)})
		require.NoError(t, err)
		entries = append(entries, *in)

		// out of order on purpose
		shuffled := []MovementEntry{entries[3], entries[0], entries[2], entries[1]}
		result := Replay(shuffled)

		assert.True(t, result.Consistent(), result.Discrepancies)
		assert.Equal(t, 4, result.EntryCount)
		assert.True(t, result.Quantity.Equal(rec.Quantity))
		assert.True(t, result.AvgCost.Equal(rec.AvgCost))
		assert.Equal(t, in.Sequence, result.LastSequence)
	})

	t.Run("detects a broken balance chain", func(t *testing.T) {
		rec := newTestRecord(t)
		first := *receive(t, rec, 10, 1)
		second := *receive(t, rec, 10, 1)
		second.BalanceBefore = dec(7)

		result := Replay([]MovementEntry{first, second})
		assert.False(t, result.Consistent())
		assert.Len(t, result.Discrepancies, 2)
	})

	t.Run("empty ledger", func(t *testing.T) {
		result := Replay(nil)
		assert.True(t, result.Consistent())
		assert.True(t, result.Quantity.IsZero())
		assert.Equal(t, 0, result.EntryCount)
	})
}

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name   string
		oldQty int64
		oldAvg int64
		inQty  int64
		cost   int64
		want   string
	}{
		{"first receipt takes unit cost", 0, 0, 100, 10, "10"},
		{"blend", 100, 10, 50, 16, "12"},
		{"equal halves", 100, 10, 100, 20, "15"},
		{"negative old quantity ignored", -5, 10, 10, 3, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(dec(tt.oldQty), dec(tt.oldAvg), dec(tt.inQty), dec(tt.cost))
			assert.Equal(t, tt.want, got.String())
		})
	}

	t.Run("rounds to four places", func(t *testing.T) {
		got := WeightedAverageCost(dec(3), dec(1), dec(3), dec(2))
		assert.Equal(t, "1.5", got.String())
		got = WeightedAverageCost(dec(1), dec(1), dec(2), dec(2))
		assert.Equal(t, "1.6667", got.String())
	})
}
