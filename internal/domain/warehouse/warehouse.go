package warehouse

import (
	"strings"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the status of a warehouse
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Type represents the type of warehouse
type Type string

const (
	TypePhysical Type = "physical" // Physical warehouse
	TypeVirtual  Type = "virtual"  // Virtual/logical warehouse
	TypeTransit  Type = "transit"  // In-transit location
)

// IsValid checks if the type is known
func (t Type) IsValid() bool {
	switch t {
	case TypePhysical, TypeVirtual, TypeTransit:
		return true
	}
	return false
}

// Warehouse is a stock-holding location. Stock records, batches,
// reservations and transfers all reference a warehouse by ID.
type Warehouse struct {
	shared.AggregateBase
	Code      string
	Name      string
	Type      Type
	Status    Status
	Address   string
	IsDefault bool
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(code, name string, warehouseType Type) (*Warehouse, error) {
	if warehouseType == "" {
		warehouseType = TypePhysical
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !warehouseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid warehouse type")
	}

	w := &Warehouse{
		AggregateBase: shared.NewAggregateBase(),
		Code:          strings.ToUpper(code),
		Name:          name,
		Type:          warehouseType,
		Status:        StatusActive,
	}
	w.RecordEvent(NewCreatedEvent(w))
	return w, nil
}

// Update changes the name and address
func (w *Warehouse) Update(name, address string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	w.Name = name
	w.Address = address
	w.UpdatedAt = time.Now()
	w.BumpVersion()
	return nil
}

// SetDefault marks this warehouse as the default warehouse
func (w *Warehouse) SetDefault(isDefault bool) error {
	if isDefault && !w.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "An inactive warehouse cannot be the default")
	}
	w.IsDefault = isDefault
	w.UpdatedAt = time.Now()
	w.BumpVersion()
	return nil
}

// Activate makes the warehouse accept stock mutations again
func (w *Warehouse) Activate() error {
	if w.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Warehouse is already active")
	}
	old := w.Status
	w.Status = StatusActive
	w.UpdatedAt = time.Now()
	w.BumpVersion()
	w.RecordEvent(NewStatusChangedEvent(w, old))
	return nil
}

// Deactivate stops stock mutations against the warehouse. Reads stay allowed.
func (w *Warehouse) Deactivate() error {
	if !w.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Warehouse is already inactive")
	}
	if w.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate the default warehouse")
	}
	old := w.Status
	w.Status = StatusInactive
	w.UpdatedAt = time.Now()
	w.BumpVersion()
	w.RecordEvent(NewStatusChangedEvent(w, old))
	return nil
}

// IsActive returns true if the warehouse is active
func (w *Warehouse) IsActive() bool {
	return w.Status == StatusActive
}

// EnsureWritable returns INVALID_STATE for an inactive warehouse
func (w *Warehouse) EnsureWritable() error {
	if w.IsActive() {
		return nil
	}
	return shared.NewDomainErrorWithDetails(
		"INVALID_STATE",
		"Warehouse "+w.Code+" is inactive",
		map[string]any{"warehouse_id": w.ID.String(), "status": string(w.Status)},
	)
}

// NewNotFoundError reports an unknown warehouse id
func NewNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainErrorWithDetails("NOT_FOUND", "Warehouse not found", map[string]any{"warehouse_id": id.String()})
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_INPUT", "Warehouse code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name cannot exceed 200 characters")
	}
	return nil
}
