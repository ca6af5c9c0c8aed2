package inventory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationStrategy selects the order in which batches are consumed
type AllocationStrategy string

const (
	// AllocationStrategyFIFO consumes the oldest received batch first
	AllocationStrategyFIFO AllocationStrategy = "fifo"
	// AllocationStrategyFEFO consumes the batch closest to expiry first
	AllocationStrategyFEFO AllocationStrategy = "fefo"
	// AllocationStrategySpecified consumes one explicitly chosen batch
	AllocationStrategySpecified AllocationStrategy = "specified"
)

// IsValid checks if the strategy is known
func (s AllocationStrategy) IsValid() bool {
	switch s {
	case AllocationStrategyFIFO, AllocationStrategyFEFO, AllocationStrategySpecified:
		return true
	}
	return false
}

// String returns the string representation
func (s AllocationStrategy) String() string {
	return string(s)
}

// AllocationPlan describes which batches an outward movement takes from
type AllocationPlan struct {
	Strategy            AllocationStrategy
	Allocations         []BatchAllocation
	TotalAllocated      decimal.Decimal
	TotalCost           decimal.Decimal
	WeightedAverageCost decimal.Decimal
}

// Allocate plans consumption of quantity from batches using the strategy.
// Exhausted batches are skipped and a batch may be partially consumed.
// A shortfall returns InsufficientStock; nothing is mutated either way.
func Allocate(key StockKey, batches []Batch, quantity decimal.Decimal, strategy AllocationStrategy, batchID *uuid.UUID) (*AllocationPlan, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, invalidQuantity("Requested quantity must be greater than zero")
	}
	if strategy == "" {
		strategy = AllocationStrategyFIFO
	}
	if !strategy.IsValid() {
		return nil, invalidInput("Unknown allocation strategy: " + string(strategy))
	}

	candidates := make([]Batch, 0, len(batches))
	for _, b := range batches {
		if b.IsExhausted() || b.Key() != key {
			continue
		}
		if strategy == AllocationStrategySpecified {
			if batchID == nil || b.ID != *batchID {
				continue
			}
		}
		candidates = append(candidates, b)
	}
	if strategy == AllocationStrategySpecified && batchID == nil {
		return nil, invalidInput("A batch must be chosen for the specified strategy")
	}

	switch strategy {
	case AllocationStrategyFIFO:
		sortFIFO(candidates)
	case AllocationStrategyFEFO:
		sortFEFO(candidates)
	}

	plan := &AllocationPlan{
		Strategy:       strategy,
		Allocations:    make([]BatchAllocation, 0),
		TotalAllocated: decimal.Zero,
		TotalCost:      decimal.Zero,
	}
	remaining := quantity
	for _, b := range candidates {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := decimal.Min(remaining, b.QuantityRemaining)
		plan.Allocations = append(plan.Allocations, BatchAllocation{
			BatchID:     b.ID,
			BatchNumber: b.BatchNumber,
			Quantity:    take,
			UnitCost:    b.UnitCost,
		})
		plan.TotalAllocated = plan.TotalAllocated.Add(take)
		plan.TotalCost = plan.TotalCost.Add(take.Mul(b.UnitCost))
		remaining = remaining.Sub(take)
	}

	if remaining.IsPositive() {
		return nil, NewInsufficientStockError(key, quantity, plan.TotalAllocated)
	}
	if plan.TotalAllocated.IsPositive() {
		plan.WeightedAverageCost = plan.TotalCost.Div(plan.TotalAllocated).Round(costScale)
	}
	return plan, nil
}

// ApplyAllocations consumes the planned quantities from the given batches and
// returns the batches that changed. Batches are matched by ID.
func ApplyAllocations(batches []Batch, allocations []BatchAllocation) ([]*Batch, error) {
	index := make(map[uuid.UUID]*Batch, len(batches))
	for i := range batches {
		index[batches[i].ID] = &batches[i]
	}
	changed := make([]*Batch, 0, len(allocations))
	for _, a := range allocations {
		b, ok := index[a.BatchID]
		if !ok {
			return nil, NewNotFoundError("Batch", a.BatchID)
		}
		if err := b.Consume(a.Quantity); err != nil {
			return nil, err
		}
		changed = append(changed, b)
	}
	return changed, nil
}

func sortFIFO(batches []Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return receivedBefore(batches[i], batches[j])
	})
}

func sortFEFO(batches []Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		ei, ej := batches[i].ExpiryDate, batches[j].ExpiryDate
		switch {
		case ei != nil && ej != nil:
			if !ei.Equal(*ej) {
				return ei.Before(*ej)
			}
		case ei != nil:
			return true
		case ej != nil:
			return false
		}
		return receivedBefore(batches[i], batches[j])
	})
}

func receivedBefore(a, b Batch) bool {
	if !a.ReceivedDate.Equal(b.ReceivedDate) {
		return a.ReceivedDate.Before(b.ReceivedDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
