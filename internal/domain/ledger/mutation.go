package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// MutationType represents the direction of a stock mutation
type MutationType string

const (
	// MutationTypeAdd credits stock to a warehouse
	MutationTypeAdd MutationType = "add"
	// MutationTypeSubtract debits stock from a warehouse
	MutationTypeSubtract MutationType = "subtract"
)

// String returns the string representation of MutationType
func (t MutationType) String() string {
	return string(t)
}

// IsValid returns true if the mutation type is valid
func (t MutationType) IsValid() bool {
	return t == MutationTypeAdd || t == MutationTypeSubtract
}

// MutationStatus represents the lifecycle state of a mutation
type MutationStatus string

const (
	// MutationStatusPending is a created transfer request awaiting processing
	MutationStatusPending MutationStatus = "pending"
	// MutationStatusProcessing is a transfer request being re-validated
	MutationStatusProcessing MutationStatus = "processing"
	// MutationStatusSuccess is an applied mutation; only success rows count toward stock
	MutationStatusSuccess MutationStatus = "success"
	// MutationStatusFailed is a transfer request that failed re-validation
	MutationStatusFailed MutationStatus = "failed"
	// MutationStatusCancelled is a transfer request withdrawn before processing
	MutationStatusCancelled MutationStatus = "cancelled"
)

// String returns the string representation of MutationStatus
func (s MutationStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s MutationStatus) IsValid() bool {
	switch s {
	case MutationStatusPending, MutationStatusProcessing, MutationStatusSuccess,
		MutationStatusFailed, MutationStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if the status admits no further transitions
func (s MutationStatus) IsTerminal() bool {
	switch s {
	case MutationStatusSuccess, MutationStatusFailed, MutationStatusCancelled:
		return true
	}
	return false
}

// Mutation is one row of the append-only stock ledger: a single stock change
// for a product at a warehouse. Current stock of a (product, warehouse) pair is
// the Stock value of the most recent success mutation ordered by CreatedAt.
// Terminal rows are immutable; only status, stock and description may change
// while a row is pending or processing.
type Mutation struct {
	shared.BaseAggregateRoot
	ProductID              uuid.UUID      `gorm:"type:uuid;not null;index:idx_mutations_stock_lookup,priority:1"`
	WarehouseID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_mutations_stock_lookup,priority:2"`
	DestinationWarehouseID uuid.UUID      `gorm:"type:uuid;not null;index"`
	MutationType           MutationType   `gorm:"type:varchar(20);not null"`
	MutationQuantity       int64          `gorm:"not null"`
	PreviousStock          int64          `gorm:"not null"`
	Stock                  int64          `gorm:"not null"`
	Status                 MutationStatus `gorm:"type:varchar(20);not null;index:idx_mutations_stock_lookup,priority:3"`
	IsManual               bool           `gorm:"not null;default:false"`
	AdminID                *uuid.UUID     `gorm:"type:uuid;index"` // nil for system-initiated mutations
	Description            string         `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Mutation) TableName() string {
	return "mutations"
}

func validateMutationParties(productID, warehouseID, destinationWarehouseID uuid.UUID) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if destinationWarehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Destination warehouse ID cannot be empty")
	}
	return nil
}

// NewTransferRequest creates a pending subtract mutation at the source
// warehouse of an admin-initiated transfer. Stock stays equal to PreviousStock
// until the request is processed.
func NewTransferRequest(
	productID, warehouseID, destinationWarehouseID uuid.UUID,
	quantity, previousStock int64,
	adminID uuid.UUID,
	description string,
	at time.Time,
) (*Mutation, error) {
	if err := validateMutationParties(productID, warehouseID, destinationWarehouseID); err != nil {
		return nil, err
	}
	if warehouseID == destinationWarehouseID {
		return nil, shared.NewDomainError("SAME_WAREHOUSE", "Source and destination warehouse cannot be the same")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Mutation quantity must be greater than 0")
	}
	if adminID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADMIN", "Admin ID cannot be empty")
	}
	if previousStock < quantity {
		return nil, shared.ErrInsufficientStock
	}
	if at.IsZero() {
		at = time.Now()
	}

	m := &Mutation{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.NewBaseEntityAt(at),
			Version:    1,
		},
		ProductID:              productID,
		WarehouseID:            warehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		MutationType:           MutationTypeSubtract,
		MutationQuantity:       quantity,
		PreviousStock:          previousStock,
		Stock:                  previousStock,
		Status:                 MutationStatusPending,
		IsManual:               true,
		AdminID:                &adminID,
		Description:            description,
	}
	m.AddDomainEvent(NewMutationCreatedEvent(m))
	return m, nil
}

// NewAppliedMutation creates a mutation that is committed as success in the
// same transaction that created it. Used for transfer credits and for both
// legs of automatic replenishment; such rows never pass through pending.
func NewAppliedMutation(
	productID, warehouseID, destinationWarehouseID uuid.UUID,
	mutationType MutationType,
	quantity, previousStock int64,
	adminID *uuid.UUID,
	isManual bool,
	description string,
) (*Mutation, error) {
	if err := validateMutationParties(productID, warehouseID, destinationWarehouseID); err != nil {
		return nil, err
	}
	if !mutationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MUTATION_TYPE", "Invalid mutation type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Mutation quantity must be greater than 0")
	}

	stock := previousStock + quantity
	if mutationType == MutationTypeSubtract {
		if previousStock < quantity {
			return nil, shared.ErrInsufficientStock
		}
		stock = previousStock - quantity
	}

	m := &Mutation{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		ProductID:              productID,
		WarehouseID:            warehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		MutationType:           mutationType,
		MutationQuantity:       quantity,
		PreviousStock:          previousStock,
		Stock:                  stock,
		Status:                 MutationStatusSuccess,
		IsManual:               isManual,
		AdminID:                adminID,
		Description:            description,
	}
	m.AddDomainEvent(NewMutationSucceededEvent(m))
	return m, nil
}

// BeginProcessing moves a pending request to processing. Stock is untouched;
// re-validation happens after this transition is persisted.
func (m *Mutation) BeginProcessing() error {
	if m.Status != MutationStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot process mutation in status %q", m.Status))
	}
	m.Status = MutationStatusProcessing
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	return nil
}

// Cancel withdraws a pending request. Only valid from pending; terminal.
func (m *Mutation) Cancel() error {
	if m.Status != MutationStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel mutation in status %q", m.Status))
	}
	m.Status = MutationStatusCancelled
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMutationCancelledEvent(m))
	return nil
}

// Complete applies a processing subtract request: marks it success and snaps
// Stock to PreviousStock minus the requested quantity.
func (m *Mutation) Complete() error {
	if m.Status != MutationStatusProcessing {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete mutation in status %q", m.Status))
	}
	m.Status = MutationStatusSuccess
	m.Stock = m.PreviousStock - m.MutationQuantity
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMutationSucceededEvent(m))
	return nil
}

// Fail marks a pending or processing request failed and records the reason.
func (m *Mutation) Fail(reason string) error {
	if m.Status != MutationStatusPending && m.Status != MutationStatusProcessing {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot fail mutation in status %q", m.Status))
	}
	m.Status = MutationStatusFailed
	m.Description = reason
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
	m.AddDomainEvent(NewMutationFailedEvent(m, reason))
	return nil
}

// IsBalanced reports whether a success row satisfies the ledger arithmetic:
// stock equals previousStock plus or minus the quantity depending on type.
func (m *Mutation) IsBalanced() bool {
	if m.Status != MutationStatusSuccess {
		return true
	}
	switch m.MutationType {
	case MutationTypeAdd:
		return m.Stock == m.PreviousStock+m.MutationQuantity
	case MutationTypeSubtract:
		return m.Stock == m.PreviousStock-m.MutationQuantity
	}
	return false
}

// SignedQuantity returns the quantity with direction applied
func (m *Mutation) SignedQuantity() int64 {
	if m.MutationType == MutationTypeSubtract {
		return -m.MutationQuantity
	}
	return m.MutationQuantity
}

// IsIntraWarehouse reports whether the row is an adjustment within one warehouse
func (m *Mutation) IsIntraWarehouse() bool {
	return m.WarehouseID == m.DestinationWarehouseID
}
