package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// WarehouseAddress holds the physical location of a warehouse. Latitude and
// longitude are the point the nearest-warehouse resolver measures from.
type WarehouseAddress struct {
	Street    string  `gorm:"type:varchar(255)" json:"street"`
	City      string  `gorm:"type:varchar(100)" json:"city"`
	Province  string  `gorm:"type:varchar(100)" json:"province"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

// Warehouse is the aggregate root for warehouse operations. Each warehouse
// has at most one assigned admin; system-initiated mutations at a warehouse
// are attributed to that admin when present.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code    string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name    string           `gorm:"type:varchar(200);not null"`
	Status  WarehouseStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	AdminID *uuid.UUID       `gorm:"type:uuid;index"`
	Address WarehouseAddress `gorm:"embedded;embeddedPrefix:address_"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new active warehouse at the given location
func NewWarehouse(code, name string, address WarehouseAddress) (*Warehouse, error) {
	if err := validateWarehouseCode(code); err != nil {
		return nil, err
	}
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if err := validateCoordinates(address.Latitude, address.Longitude); err != nil {
		return nil, err
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            WarehouseStatusActive,
		Address:           address,
	}, nil
}

// AssignAdmin assigns the warehouse's admin. Each warehouse has one admin.
func (w *Warehouse) AssignAdmin(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADMIN", "Admin ID cannot be empty")
	}
	w.AdminID = &adminID
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// UnassignAdmin removes the warehouse's admin
func (w *Warehouse) UnassignAdmin() {
	w.AdminID = nil
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Relocate updates the warehouse's address
func (w *Warehouse) Relocate(address WarehouseAddress) error {
	if err := validateCoordinates(address.Latitude, address.Longitude); err != nil {
		return err
	}
	w.Address = address
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// Disable marks the warehouse inactive
func (w *Warehouse) Disable() error {
	if w.Status == WarehouseStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Warehouse is already inactive")
	}
	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// IsActive returns true if the warehouse is active
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

func validateWarehouseCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Warehouse code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateWarehouseName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot exceed 200 characters")
	}
	return nil
}

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return shared.NewDomainError("INVALID_COORDINATES", "Latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return shared.NewDomainError("INVALID_COORDINATES", "Longitude must be between -180 and 180")
	}
	return nil
}
