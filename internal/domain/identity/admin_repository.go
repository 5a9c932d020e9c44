package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// AdminRepository defines the interface for admin persistence
type AdminRepository interface {
	// FindByID finds an admin by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)

	// FindByEmail finds an admin by email
	FindByEmail(ctx context.Context, email string) (*Admin, error)

	// FindByWarehouse finds all admins assigned to a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]Admin, error)

	// FindAll finds all admins matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Admin, error)

	// Save creates or updates an admin
	Save(ctx context.Context, admin *Admin) error

	// Delete deletes an admin
	Delete(ctx context.Context, id uuid.UUID) error
}
