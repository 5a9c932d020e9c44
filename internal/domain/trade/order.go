package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusWaitingPayment      OrderStatus = "waiting_payment"
	OrderStatusWaitingConfirmation OrderStatus = "waiting_confirmation"
	OrderStatusProcessed           OrderStatus = "processed"
	OrderStatusShipped             OrderStatus = "shipped"
	OrderStatusCancelled           OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusWaitingPayment, OrderStatusWaitingConfirmation,
		OrderStatusProcessed, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusWaitingPayment:
		return target == OrderStatusWaitingConfirmation || target == OrderStatusCancelled
	case OrderStatusWaitingConfirmation:
		return target == OrderStatusProcessed || target == OrderStatusCancelled
	case OrderStatusProcessed:
		return target == OrderStatusShipped
	case OrderStatusShipped, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// OrderItem represents a line item in a customer order
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Order represents a customer order fulfilled from a single warehouse.
// The fulfilling warehouse is resolved at creation time from the shipping
// coordinates; stock is committed against it when payment is confirmed.
type Order struct {
	shared.BaseAggregateRoot
	InvoiceNumber     string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID            uuid.UUID   `gorm:"type:uuid;not null;index"`
	WarehouseID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status            OrderStatus `gorm:"type:varchar(30);not null;default:'waiting_payment'"`
	TotalPrice        decimal.Decimal
	ShippingLatitude  float64 `gorm:"type:decimal(10,7)"`
	ShippingLongitude float64 `gorm:"type:decimal(10,7)"`
	PaymentProofImage string  `gorm:"type:varchar(500)"`
	Items             []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order awaiting payment
func NewOrder(userID, warehouseID uuid.UUID, shippingLat, shippingLon float64) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		WarehouseID:       warehouseID,
		Status:            OrderStatusWaitingPayment,
		TotalPrice:        decimal.Zero,
		ShippingLatitude:  shippingLat,
		ShippingLongitude: shippingLon,
		Items:             make([]OrderItem, 0),
	}
	order.InvoiceNumber = generateInvoiceNumber(order.ID, order.CreatedAt)

	return order, nil
}

// AddItem appends a line item and updates the order total
func (o *Order) AddItem(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusWaitingPayment {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added while awaiting payment")
	}

	item, err := NewOrderItem(o.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}

	o.Items = append(o.Items, *item)
	o.TotalPrice = o.TotalPrice.Add(item.Subtotal)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// AttachPaymentProof records the uploaded payment proof and moves the order
// to waiting_confirmation
func (o *Order) AttachPaymentProof(imageURL string) error {
	if imageURL == "" {
		return shared.NewDomainError("INVALID_INPUT", "Payment proof image cannot be empty")
	}
	if !o.Status.CanTransitionTo(OrderStatusWaitingConfirmation) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot attach payment proof to an order in status %s", o.Status))
	}

	o.PaymentProofImage = imageURL
	o.Status = OrderStatusWaitingConfirmation
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// ConfirmPayment marks the payment as verified. Stock commitment against the
// fulfilling warehouse happens in the same transaction as this transition.
func (o *Order) ConfirmPayment() error {
	if !o.Status.CanTransitionTo(OrderStatusProcessed) || o.Status != OrderStatusWaitingConfirmation {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm payment for an order in status %s", o.Status))
	}

	o.Status = OrderStatusProcessed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Ship marks the order as shipped
func (o *Order) Ship() error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot ship an order in status %s", o.Status))
	}

	o.Status = OrderStatusShipped
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Cancel cancels an order that has not been processed yet
func (o *Order) Cancel() error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel an order in status %s", o.Status))
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// generateInvoiceNumber derives a stable human-readable invoice number from
// the order identity and creation time
func generateInvoiceNumber(id uuid.UUID, createdAt time.Time) string {
	return fmt.Sprintf("INV/%s/%s", createdAt.Format("20060102"), id.String()[:8])
}
