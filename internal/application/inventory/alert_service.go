package inventory

import (
	"context"
	"time"

	"github.com/erp/stockledger/internal/domain/inventory"
	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
)

// AlertService scans stock records and batches for threshold and expiry
// conditions. It never writes.
type AlertService struct {
	*Core
}

// NewAlertService creates a new AlertService
func NewAlertService(core *Core) *AlertService {
	return &AlertService{Core: core}
}

// ScanAlerts evaluates every record and dated lot, optionally narrowed to one
// warehouse and a set of alert types
func (s *AlertService) ScanAlerts(ctx context.Context, filter AlertFilter) (*AlertReport, error) {
	wanted, err := parseAlertTypes(filter.Types)
	if err != nil {
		return nil, err
	}
	if filter.WarehouseID != nil {
		if _, err := s.requireWarehouse(ctx, *filter.WarehouseID); err != nil {
			return nil, err
		}
	}
	horizon := s.opts.ExpiryHorizon
	if filter.HorizonDays > 0 {
		horizon = time.Duration(filter.HorizonDays) * 24 * time.Hour
	}
	now := s.now()

	alerts := make([]inventory.Alert, 0)
	if wanted.any(inventory.AlertTypeLowStock, inventory.AlertTypeOutOfStock, inventory.AlertTypeOverstock) {
		recs, err := s.repos.Stock.ListForScan(ctx, filter.WarehouseID)
		if err != nil {
			return nil, err
		}
		for i := range recs {
			alerts = append(alerts, wanted.keep(inventory.EvaluateStockAlerts(&recs[i], now))...)
		}
	}
	if wanted.any(inventory.AlertTypeExpiring, inventory.AlertTypeExpired) {
		batches, err := s.repos.Batches.FindExpiring(ctx, now.Add(horizon), filter.WarehouseID)
		if err != nil {
			return nil, err
		}
		for i := range batches {
			alerts = append(alerts, wanted.keep(inventory.EvaluateBatchAlerts(&batches[i], now, horizon))...)
		}
	}

	inventory.SortAlerts(alerts)
	for _, a := range alerts {
		s.metrics.RecordAlert(ctx, string(a.Type), string(a.Severity))
	}
	return &AlertReport{
		Alerts:      alerts,
		Summary:     inventory.SummarizeAlerts(alerts),
		GeneratedAt: now,
	}, nil
}

// SuggestReorder returns purchase suggestions for low and out-of-stock
// records. It has no side effects.
func (s *AlertService) SuggestReorder(ctx context.Context, req ReorderSuggestionRequest) ([]inventory.ReorderSuggestion, error) {
	if req.WarehouseID != nil {
		if _, err := s.requireWarehouse(ctx, *req.WarehouseID); err != nil {
			return nil, err
		}
	}
	recs, err := s.repos.Stock.ListForScan(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]struct{}, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		products[id] = struct{}{}
	}
	suggestions := make([]inventory.ReorderSuggestion, 0)
	for i := range recs {
		if len(products) > 0 {
			if _, ok := products[recs[i].ProductID]; !ok {
				continue
			}
		}
		if suggestion, ok := inventory.SuggestReorder(&recs[i]); ok {
			suggestions = append(suggestions, suggestion)
		}
	}
	return suggestions, nil
}

type alertTypeSet map[inventory.AlertType]struct{}

func parseAlertTypes(raw []string) (alertTypeSet, error) {
	set := make(alertTypeSet, len(raw))
	for _, r := range raw {
		t := inventory.AlertType(r)
		if !t.IsValid() {
			return nil, shared.NewDomainErrorWithDetails("INVALID_INPUT",
				"Unknown alert type", map[string]any{"type": r})
		}
		set[t] = struct{}{}
	}
	return set, nil
}

// any reports whether one of types is wanted; an empty set wants everything
func (s alertTypeSet) any(types ...inventory.AlertType) bool {
	if len(s) == 0 {
		return true
	}
	for _, t := range types {
		if _, ok := s[t]; ok {
			return true
		}
	}
	return false
}

func (s alertTypeSet) keep(alerts []inventory.Alert) []inventory.Alert {
	if len(s) == 0 {
		return alerts
	}
	kept := alerts[:0]
	for _, a := range alerts {
		if _, ok := s[a.Type]; ok {
			kept = append(kept, a)
		}
	}
	return kept
}
