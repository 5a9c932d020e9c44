package trade

import (
	"context"

	"github.com/google/uuid"
)

// OrderQuery captures the filters supported by the order listing
type OrderQuery struct {
	Page     int
	PageSize int
	UserID   *uuid.UUID
	Status   OrderStatus
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByInvoiceNumber finds an order by its invoice number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Order, error)

	// FindItem finds a single line item of an order by product
	FindItem(ctx context.Context, orderID, productID uuid.UUID) (*OrderItem, error)

	// FindAll finds orders matching the query and reports the total matching
	// count before pagination
	FindAll(ctx context.Context, query OrderQuery) ([]Order, int64, error)

	// Save creates or updates an order along with its items
	Save(ctx context.Context, order *Order) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
