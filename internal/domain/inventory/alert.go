package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertType is the condition an alert reports
type AlertType string

const (
	AlertTypeLowStock   AlertType = "low_stock"
	AlertTypeOutOfStock AlertType = "out_of_stock"
	AlertTypeOverstock  AlertType = "overstock"
	AlertTypeExpiring   AlertType = "expiring"
	AlertTypeExpired    AlertType = "expired"
)

// IsValid checks if the alert type is known
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeLowStock, AlertTypeOutOfStock, AlertTypeOverstock, AlertTypeExpiring, AlertTypeExpired:
		return true
	}
	return false
}

// AllAlertTypes returns every alert type
func AllAlertTypes() []AlertType {
	return []AlertType{AlertTypeLowStock, AlertTypeOutOfStock, AlertTypeOverstock, AlertTypeExpiring, AlertTypeExpired}
}

// Severity orders alerts from most to least urgent
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank returns 0 for the most urgent severity
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// DefaultExpiryHorizon is how far ahead expiring batches are reported
const DefaultExpiryHorizon = 30 * 24 * time.Hour

// expiringWarningDays is the cut-off between warning and info for expiring batches
const expiringWarningDays = 7

// Alert is a read-only finding over a stock record or batch
type Alert struct {
	ID              string          `json:"id"`
	Type            AlertType       `json:"type"`
	Severity        Severity        `json:"severity"`
	ProductID       uuid.UUID       `json:"product_id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	BatchID         *uuid.UUID      `json:"batch_id,omitempty"`
	BatchNumber     string          `json:"batch_number,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Threshold       decimal.Decimal `json:"threshold"`
	SuggestedOrder  decimal.Decimal `json:"suggested_order"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	DaysUntilExpiry *int            `json:"days_until_expiry,omitempty"`
	DaysExpired     *int            `json:"days_expired,omitempty"`
	Message         string          `json:"message"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EvaluateStockAlerts returns the stock-level alerts of a record.
// low_stock and out_of_stock are mutually exclusive; overstock is independent.
func EvaluateStockAlerts(rec *StockRecord, now time.Time) []Alert {
	alerts := make([]Alert, 0, 2)
	available := rec.AvailableQuantity()
	suggested := decimal.Max(rec.SuggestedReorderQuantity(), decimal.Zero)

	switch {
	case rec.IsOutOfStock():
		alerts = append(alerts, Alert{
			ID:             "out_" + rec.ID.String(),
			Type:           AlertTypeOutOfStock,
			Severity:       SeverityCritical,
			ProductID:      rec.ProductID,
			WarehouseID:    rec.WarehouseID,
			Quantity:       available,
			Threshold:      rec.ReorderLevel,
			SuggestedOrder: suggested,
			Message:        "Out of stock: no available quantity",
			CreatedAt:      now,
		})
	case rec.IsLowStock():
		alerts = append(alerts, Alert{
			ID:             "low_" + rec.ID.String(),
			Type:           AlertTypeLowStock,
			Severity:       SeverityWarning,
			ProductID:      rec.ProductID,
			WarehouseID:    rec.WarehouseID,
			Quantity:       available,
			Threshold:      rec.ReorderLevel,
			SuggestedOrder: suggested,
			Message:        fmt.Sprintf("Low stock: %s available, reorder level %s", available.String(), rec.ReorderLevel.String()),
			CreatedAt:      now,
		})
	}

	if rec.IsOverstock() {
		excess := rec.Quantity.Sub(rec.MaxStock)
		alerts = append(alerts, Alert{
			ID:          "over_" + rec.ID.String(),
			Type:        AlertTypeOverstock,
			Severity:    SeverityInfo,
			ProductID:   rec.ProductID,
			WarehouseID: rec.WarehouseID,
			Quantity:    rec.Quantity,
			Threshold:   rec.MaxStock,
			Message:     fmt.Sprintf("Overstock: exceeds max stock by %s", excess.String()),
			CreatedAt:   now,
		})
	}
	return alerts
}

// EvaluateBatchAlerts returns the expiry alerts of a batch. Exhausted batches
// and batches without an expiry date never alert.
func EvaluateBatchAlerts(b *Batch, now time.Time, horizon time.Duration) []Alert {
	if b.IsExhausted() || b.ExpiryDate == nil {
		return nil
	}
	if horizon <= 0 {
		horizon = DefaultExpiryHorizon
	}
	batchID := b.ID

	if b.IsExpired(now) {
		days := b.DaysExpired(now)
		return []Alert{{
			ID:          "exp_" + b.ID.String(),
			Type:        AlertTypeExpired,
			Severity:    SeverityCritical,
			ProductID:   b.ProductID,
			WarehouseID: b.WarehouseID,
			BatchID:     &batchID,
			BatchNumber: b.BatchNumber,
			Quantity:    b.QuantityRemaining,
			ExpiryDate:  b.ExpiryDate,
			DaysExpired: &days,
			Message:     fmt.Sprintf("Expired: batch %s expired %d days ago", b.BatchNumber, days),
			CreatedAt:   now,
		}}
	}

	if !b.ExpiresWithin(now, horizon) {
		return nil
	}
	days, _ := b.DaysUntilExpiry(now)
	severity := SeverityInfo
	if days <= expiringWarningDays {
		severity = SeverityWarning
	}
	return []Alert{{
		ID:              "expiring_" + b.ID.String(),
		Type:            AlertTypeExpiring,
		Severity:        severity,
		ProductID:       b.ProductID,
		WarehouseID:     b.WarehouseID,
		BatchID:         &batchID,
		BatchNumber:     b.BatchNumber,
		Quantity:        b.QuantityRemaining,
		ExpiryDate:      b.ExpiryDate,
		DaysUntilExpiry: &days,
		Message:         fmt.Sprintf("Expiring soon: batch %s expires in %d days", b.BatchNumber, days),
		CreatedAt:       now,
	}}
}

// SortAlerts orders alerts by severity, then type, then product
func SortAlerts(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri < rj
		}
		if alerts[i].Type != alerts[j].Type {
			return alerts[i].Type < alerts[j].Type
		}
		return alerts[i].ProductID.String() < alerts[j].ProductID.String()
	})
}

// AlertSummary counts alerts by severity and type
type AlertSummary struct {
	Total    int               `json:"total"`
	Critical int               `json:"critical"`
	Warning  int               `json:"warning"`
	Info     int               `json:"info"`
	ByType   map[AlertType]int `json:"by_type"`
}

// SummarizeAlerts builds the summary of a set of alerts
func SummarizeAlerts(alerts []Alert) AlertSummary {
	summary := AlertSummary{ByType: make(map[AlertType]int, len(AllAlertTypes()))}
	for _, t := range AllAlertTypes() {
		summary.ByType[t] = 0
	}
	for _, a := range alerts {
		summary.Total++
		switch a.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityWarning:
			summary.Warning++
		default:
			summary.Info++
		}
		summary.ByType[a.Type]++
	}
	return summary
}

// ReorderSuggestion is an advisory purchase quantity for a low or empty record
type ReorderSuggestion struct {
	ProductID         uuid.UUID       `json:"product_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	Reason            AlertType       `json:"reason"`
	Quantity          decimal.Decimal `json:"quantity"`
	Available         decimal.Decimal `json:"available"`
	ReorderLevel      decimal.Decimal `json:"reorder_level"`
	MaxStock          decimal.Decimal `json:"max_stock"`
	SuggestedQuantity decimal.Decimal `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}

// SuggestReorder returns a suggestion for a low or out-of-stock record.
// The second value is false when the record needs nothing.
func SuggestReorder(rec *StockRecord) (ReorderSuggestion, bool) {
	var reason AlertType
	switch {
	case rec.IsOutOfStock():
		reason = AlertTypeOutOfStock
	case rec.IsLowStock():
		reason = AlertTypeLowStock
	default:
		return ReorderSuggestion{}, false
	}

	suggested := rec.SuggestedReorderQuantity()
	if !suggested.IsPositive() {
		return ReorderSuggestion{}, false
	}
	return ReorderSuggestion{
		ProductID:         rec.ProductID,
		WarehouseID:       rec.WarehouseID,
		Reason:            reason,
		Quantity:          rec.Quantity,
		Available:         rec.AvailableQuantity(),
		ReorderLevel:      rec.ReorderLevel,
		MaxStock:          rec.MaxStock,
		SuggestedQuantity: suggested,
		EstimatedCost:     suggested.Mul(rec.AvgCost).Round(2),
	}, true
}
