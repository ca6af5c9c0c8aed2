package warehouse

import (
	"context"
	"errors"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/domain/warehouse"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarehouseService handles warehouse directory operations
type WarehouseService struct {
	repo      warehouse.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(repo warehouse.Repository, logger *zap.Logger) *WarehouseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseService{
		repo:   repo,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *WarehouseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	w, err := warehouse.NewWarehouse(req.Code, req.Name, warehouse.Type(req.Type))
	if err != nil {
		return nil, err
	}
	if req.Address != "" {
		if err := w.Update(req.Name, req.Address); err != nil {
			return nil, err
		}
	}

	if req.IsDefault != nil && *req.IsDefault {
		if err := s.repo.ClearDefault(ctx); err != nil {
			return nil, err
		}
		if err := w.SetDefault(true); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}
	s.publish(ctx, w)

	s.logger.Info("Warehouse created",
		zap.String("warehouse_id", w.ID.String()),
		zap.String("code", w.Code),
		zap.String("type", string(w.Type)),
	)

	response := ToWarehouseResponse(w)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(w)
	return &response, nil
}

// GetByCode retrieves a warehouse by code
func (s *WarehouseService) GetByCode(ctx context.Context, code string) (*WarehouseResponse, error) {
	w, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(w)
	return &response, nil
}

// List retrieves warehouses with filtering and pagination
func (s *WarehouseService) List(ctx context.Context, filter ListFilter) ([]WarehouseResponse, int64, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
		if filter.OrderDir == "" {
			filter.OrderDir = "asc"
		}
	}
	domainFilter := warehouse.Filter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
		},
		Status: warehouse.Status(filter.Status),
		Type:   warehouse.Type(filter.Type),
		Search: filter.Search,
	}
	domainFilter.Filter = domainFilter.Filter.Normalize()

	warehouses, total, err := s.repo.List(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToWarehouseResponses(warehouses), total, nil
}

// Update updates the name, address or default flag of a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Address != nil {
		name, address := w.Name, w.Address
		if req.Name != nil {
			name = *req.Name
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := w.Update(name, address); err != nil {
			return nil, err
		}
	}

	if req.IsDefault != nil && *req.IsDefault != w.IsDefault {
		if *req.IsDefault {
			if !w.IsActive() {
				return nil, shared.NewDomainError("INVALID_STATE", "An inactive warehouse cannot be the default")
			}
			if err := s.repo.ClearDefault(ctx); err != nil {
				return nil, err
			}
		}
		if err := w.SetDefault(*req.IsDefault); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(w)
	return &response, nil
}

// Activate lets a warehouse accept stock mutations again
func (s *WarehouseService) Activate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	return s.changeStatus(ctx, id, (*warehouse.Warehouse).Activate)
}

// Deactivate blocks stock mutations against a warehouse; reads stay allowed
func (s *WarehouseService) Deactivate(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	return s.changeStatus(ctx, id, (*warehouse.Warehouse).Deactivate)
}

func (s *WarehouseService) changeStatus(ctx context.Context, id uuid.UUID, change func(*warehouse.Warehouse) error) (*WarehouseResponse, error) {
	w, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(w); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, w); err != nil {
		return nil, err
	}
	s.publish(ctx, w)

	s.logger.Info("Warehouse status changed",
		zap.String("warehouse_id", w.ID.String()),
		zap.String("status", string(w.Status)),
	)

	response := ToWarehouseResponse(w)
	return &response, nil
}

func (s *WarehouseService) find(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, warehouse.NewNotFoundError(id)
		}
		return nil, err
	}
	return w, nil
}

func (s *WarehouseService) publish(ctx context.Context, w *warehouse.Warehouse) {
	events := w.PendingEvents()
	w.ClearEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish warehouse events",
			zap.String("warehouse_id", w.ID.String()),
			zap.Error(err),
		)
	}
}
