package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// AdminRole distinguishes platform operators from warehouse-bound operators
type AdminRole string

const (
	AdminRoleSuper     AdminRole = "super"     // Operates across all warehouses
	AdminRoleWarehouse AdminRole = "warehouse" // Bound to a single warehouse
)

// AdminStatus represents the status of an admin account
type AdminStatus string

const (
	AdminStatusActive      AdminStatus = "active"
	AdminStatusDeactivated AdminStatus = "deactivated"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Admin represents an operator who may create and process stock transfers.
// Warehouse admins act on behalf of their assigned warehouse; super admins
// may act on any warehouse.
type Admin struct {
	shared.BaseAggregateRoot
	Name        string      `gorm:"type:varchar(100);not null"`
	Email       string      `gorm:"type:varchar(200);not null;uniqueIndex"`
	Role        AdminRole   `gorm:"type:varchar(20);not null"`
	WarehouseID *uuid.UUID  `gorm:"type:uuid;index"`
	Status      AdminStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

// NewAdmin creates a new active admin
func NewAdmin(name, email string, role AdminRole) (*Admin, error) {
	if err := validateAdminName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if role != AdminRoleSuper && role != AdminRoleWarehouse {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown admin role")
	}

	return &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              role,
		Status:            AdminStatusActive,
	}, nil
}

// AssignWarehouse binds a warehouse admin to a warehouse
func (a *Admin) AssignWarehouse(warehouseID uuid.UUID) error {
	if a.Role != AdminRoleWarehouse {
		return shared.NewDomainError("INVALID_ROLE", "Only warehouse admins can be assigned to a warehouse")
	}

	a.WarehouseID = &warehouseID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// UnassignWarehouse removes the warehouse binding
func (a *Admin) UnassignWarehouse() {
	a.WarehouseID = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Deactivate disables the admin account
func (a *Admin) Deactivate() error {
	if a.Status == AdminStatusDeactivated {
		return shared.NewDomainError("ALREADY_INACTIVE", "Admin is already deactivated")
	}

	a.Status = AdminStatusDeactivated
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsActive returns true when the admin may perform operations
func (a *Admin) IsActive() bool {
	return a.Status == AdminStatusActive
}

// CanOperateWarehouse reports whether the admin may act on the given warehouse
func (a *Admin) CanOperateWarehouse(warehouseID uuid.UUID) bool {
	if !a.IsActive() {
		return false
	}
	if a.Role == AdminRoleSuper {
		return true
	}
	return a.WarehouseID != nil && *a.WarehouseID == warehouseID
}

func validateAdminName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Admin name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Admin name cannot exceed 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}
