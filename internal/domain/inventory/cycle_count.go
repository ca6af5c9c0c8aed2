package inventory

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CycleCountStatus represents the lifecycle of a physical count
type CycleCountStatus string

const (
	CycleCountStatusDraft           CycleCountStatus = "draft"
	CycleCountStatusInProgress      CycleCountStatus = "in_progress"
	CycleCountStatusPendingApproval CycleCountStatus = "pending_approval"
	CycleCountStatusApproved        CycleCountStatus = "approved"
	CycleCountStatusCompleted       CycleCountStatus = "completed"
	CycleCountStatusCancelled       CycleCountStatus = "cancelled"
)

// IsValid checks if the status is known
func (s CycleCountStatus) IsValid() bool {
	switch s {
	case CycleCountStatusDraft, CycleCountStatusInProgress, CycleCountStatusPendingApproval,
		CycleCountStatusApproved, CycleCountStatusCompleted, CycleCountStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for completed and cancelled counts
func (s CycleCountStatus) IsTerminal() bool {
	return s == CycleCountStatusCompleted || s == CycleCountStatusCancelled
}

// CycleCountType says whether every record of the warehouse is counted
type CycleCountType string

const (
	CycleCountTypeFull    CycleCountType = "full"
	CycleCountTypePartial CycleCountType = "partial"
)

// IsValid checks if the type is known
func (t CycleCountType) IsValid() bool {
	return t == CycleCountTypeFull || t == CycleCountTypePartial
}

// CycleCountLine is one product of a count. SystemQuantity and AvgCost are
// snapshots taken when the count was created.
type CycleCountLine struct {
	ProductID       uuid.UUID        `json:"product_id"`
	SystemQuantity  decimal.Decimal  `json:"system_quantity"`
	AvgCost         decimal.Decimal  `json:"avg_cost"`
	CountedQuantity *decimal.Decimal `json:"counted_quantity,omitempty"`
	Variance        *decimal.Decimal `json:"variance,omitempty"`
	VarianceValue   *decimal.Decimal `json:"variance_value,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CountedBy       string           `json:"counted_by,omitempty"`
	CountedAt       *time.Time       `json:"counted_at,omitempty"`
	// AppliedQuantity is the delta actually posted, measured against the
	// on-hand quantity at apply time
	AppliedQuantity *decimal.Decimal `json:"applied_quantity,omitempty"`
	AdjustmentID    *uuid.UUID       `json:"adjustment_id,omitempty"`
}

// IsCounted reports whether a quantity has been recorded
func (l CycleCountLine) IsCounted() bool {
	return l.CountedQuantity != nil
}

// CountEntry is one counted quantity reported by the floor
type CountEntry struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Notes     string
}

// CycleCountTotals summarizes the lines of a count
type CycleCountTotals struct {
	TotalItems         int             `json:"total_items"`
	CountedItems       int             `json:"counted_items"`
	TotalSystemQty     decimal.Decimal `json:"total_system_qty"`
	TotalCountedQty    decimal.Decimal `json:"total_counted_qty"`
	TotalVariance      decimal.Decimal `json:"total_variance"`
	TotalVarianceValue decimal.Decimal `json:"total_variance_value"`
}

// CycleCount is a physical stock count of one warehouse. It moves from
// draft through counting and approval; applying it posts one adjustment per
// line whose counted quantity differs from the on-hand quantity.
type CycleCount struct {
	shared.AggregateBase
	Number        string
	WarehouseID   uuid.UUID
	CountType     CycleCountType
	Status        CycleCountStatus
	Lines         []CycleCountLine
	Notes         string
	Actor         string
	ApprovedBy    string
	CancelReason  string
	ScheduledDate *time.Time
	StartedAt     *time.Time
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
}

// NewCycleCount creates a draft count with one line per stock record
func NewCycleCount(warehouseID uuid.UUID, countType CycleCountType, records []StockRecord, notes, actor string) (*CycleCount, error) {
	if warehouseID == uuid.Nil {
		return nil, invalidInput("Warehouse ID is required")
	}
	if countType == "" {
		countType = CycleCountTypeFull
	}
	if !countType.IsValid() {
		return nil, invalidInput("Unknown cycle count type: " + string(countType))
	}
	if len(records) == 0 {
		return nil, invalidInput("No stock records to count in this warehouse")
	}

	lines := make([]CycleCountLine, 0, len(records))
	for _, rec := range records {
		if rec.WarehouseID != warehouseID {
			return nil, invalidInput("Stock record belongs to another warehouse")
		}
		lines = append(lines, CycleCountLine{
			ProductID:      rec.ProductID,
			SystemQuantity: rec.Quantity,
			AvgCost:        rec.AvgCost,
		})
	}

	c := &CycleCount{
		AggregateBase: shared.NewAggregateBase(),
		WarehouseID:   warehouseID,
		CountType:     countType,
		Status:        CycleCountStatusDraft,
		Lines:         lines,
		Notes:         notes,
		Actor:         actor,
	}
	c.Number = GenerateCycleCountNumber(c.CreatedAt)
	return c, nil
}

// GenerateCycleCountNumber returns CC<yyyymmdd>-<6 hex>
func GenerateCycleCountNumber(at time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		copy(buf, uuid.New().String())
	}
	return "CC" + at.Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(buf))
}

// Keys returns the stock keys of every line
func (c *CycleCount) Keys() []StockKey {
	keys := make([]StockKey, len(c.Lines))
	for i, l := range c.Lines {
		keys[i] = NewStockKey(l.ProductID, c.WarehouseID)
	}
	return keys
}

// Start opens a draft count for counting
func (c *CycleCount) Start() error {
	if err := c.requireStatus("start", CycleCountStatusDraft); err != nil {
		return err
	}
	now := time.Now()
	c.Status = CycleCountStatusInProgress
	c.StartedAt = &now
	c.touch(now)
	return nil
}

// RecordCounts stores counted quantities and their variance against the
// snapshot. A product may be recounted until the count is submitted.
func (c *CycleCount) RecordCounts(entries []CountEntry, actor string) error {
	if err := c.requireStatus("record counts on", CycleCountStatusInProgress); err != nil {
		return err
	}
	if len(entries) == 0 {
		return invalidInput("At least one counted quantity is required")
	}

	index := make(map[uuid.UUID]int, len(c.Lines))
	for i, l := range c.Lines {
		index[l.ProductID] = i
	}
	for _, e := range entries {
		if e.Quantity.IsNegative() {
			return invalidQuantity("Counted quantity cannot be negative")
		}
		if _, ok := index[e.ProductID]; !ok {
			return shared.NewDomainErrorWithDetails(shared.ErrInvalidInput.Code,
				"Product is not part of this cycle count",
				map[string]any{"product_id": e.ProductID.String(), "cycle_count_id": c.ID.String()})
		}
	}

	now := time.Now()
	for _, e := range entries {
		line := &c.Lines[index[e.ProductID]]
		counted := e.Quantity
		variance := counted.Sub(line.SystemQuantity)
		value := variance.Mul(line.AvgCost).Round(4)
		line.CountedQuantity = &counted
		line.Variance = &variance
		line.VarianceValue = &value
		line.Notes = e.Notes
		line.CountedBy = actor
		line.CountedAt = &now
	}
	c.touch(now)
	return nil
}

// Submit hands a fully counted count over for approval
func (c *CycleCount) Submit() error {
	if err := c.requireStatus("submit", CycleCountStatusInProgress); err != nil {
		return err
	}
	if uncounted := c.Totals().TotalItems - c.Totals().CountedItems; uncounted > 0 {
		return shared.NewDomainErrorWithDetails(CodeInvalidState,
			"Every line must be counted before submitting",
			map[string]any{"cycle_count_id": c.ID.String(), "uncounted": uncounted})
	}
	now := time.Now()
	c.Status = CycleCountStatusPendingApproval
	c.SubmittedAt = &now
	c.touch(now)
	return nil
}

// Approve accepts the counted quantities
func (c *CycleCount) Approve(actor string) error {
	if err := c.requireStatus("approve", CycleCountStatusPendingApproval); err != nil {
		return err
	}
	now := time.Now()
	c.Status = CycleCountStatusApproved
	c.ApprovedBy = actor
	c.ApprovedAt = &now
	c.touch(now)
	return nil
}

// CanApply returns nil when adjustments may be posted
func (c *CycleCount) CanApply() error {
	return c.requireStatus("apply", CycleCountStatusApproved)
}

// MarkCompleted records the adjustment posted for each product. Lines
// without an entry matched the on-hand quantity.
func (c *CycleCount) MarkCompleted(adjustments map[uuid.UUID]*MovementEntry) error {
	if err := c.CanApply(); err != nil {
		return err
	}
	for i := range c.Lines {
		line := &c.Lines[i]
		applied := decimal.Zero
		if entry, ok := adjustments[line.ProductID]; ok {
			applied = entry.QuantityDelta
			line.AdjustmentID = &entry.ID
		}
		line.AppliedQuantity = &applied
	}
	now := time.Now()
	c.Status = CycleCountStatusCompleted
	c.CompletedAt = &now
	c.touch(now)
	c.RecordEvent(NewCycleCountCompletedEvent(c))
	return nil
}

// Cancel abandons a count that has not been applied
func (c *CycleCount) Cancel(reason string) error {
	if c.Status.IsTerminal() {
		return c.statusError("cancel")
	}
	now := time.Now()
	c.Status = CycleCountStatusCancelled
	c.CancelReason = reason
	c.CancelledAt = &now
	c.touch(now)
	c.RecordEvent(NewCycleCountCancelledEvent(c))
	return nil
}

// Totals sums the lines. Uncounted lines add nothing to the counted figures.
func (c *CycleCount) Totals() CycleCountTotals {
	t := CycleCountTotals{
		TotalItems:         len(c.Lines),
		TotalSystemQty:     decimal.Zero,
		TotalCountedQty:    decimal.Zero,
		TotalVariance:      decimal.Zero,
		TotalVarianceValue: decimal.Zero,
	}
	for _, l := range c.Lines {
		t.TotalSystemQty = t.TotalSystemQty.Add(l.SystemQuantity)
		if !l.IsCounted() {
			continue
		}
		t.CountedItems++
		t.TotalCountedQty = t.TotalCountedQty.Add(*l.CountedQuantity)
		t.TotalVariance = t.TotalVariance.Add(*l.Variance)
		t.TotalVarianceValue = t.TotalVarianceValue.Add(*l.VarianceValue)
	}
	return t
}

func (c *CycleCount) touch(now time.Time) {
	c.UpdatedAt = now
	c.BumpVersion()
}

func (c *CycleCount) requireStatus(action string, want CycleCountStatus) error {
	if c.Status == want {
		return nil
	}
	return c.statusError(action)
}

func (c *CycleCount) statusError(action string) error {
	return shared.NewDomainErrorWithDetails(
		CodeInvalidState,
		"Cannot "+action+" a cycle count in status "+string(c.Status),
		map[string]any{
			"cycle_count_id": c.ID.String(),
			"status":         string(c.Status),
		},
	)
}
