package ledger

import (
	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMutation = "Mutation"

// Event type constants
const (
	EventTypeMutationCreated   = "MutationCreated"
	EventTypeMutationSucceeded = "MutationSucceeded"
	EventTypeMutationFailed    = "MutationFailed"
	EventTypeMutationCancelled = "MutationCancelled"
)

// MutationCreatedEvent is raised when a transfer request enters the ledger as pending
type MutationCreatedEvent struct {
	shared.BaseDomainEvent
	MutationID             uuid.UUID `json:"mutation_id"`
	ProductID              uuid.UUID `json:"product_id"`
	WarehouseID            uuid.UUID `json:"warehouse_id"`
	DestinationWarehouseID uuid.UUID `json:"destination_warehouse_id"`
	Quantity               int64     `json:"quantity"`
}

// NewMutationCreatedEvent creates a new MutationCreatedEvent
func NewMutationCreatedEvent(m *Mutation) *MutationCreatedEvent {
	return &MutationCreatedEvent{
		BaseDomainEvent:        shared.NewBaseDomainEvent(EventTypeMutationCreated, AggregateTypeMutation, m.ID),
		MutationID:             m.ID,
		ProductID:              m.ProductID,
		WarehouseID:            m.WarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		Quantity:               m.MutationQuantity,
	}
}

// MutationSucceededEvent is raised when a mutation reaches success and becomes
// the authoritative stock snapshot for its (product, warehouse) pair
type MutationSucceededEvent struct {
	shared.BaseDomainEvent
	MutationID  uuid.UUID    `json:"mutation_id"`
	ProductID   uuid.UUID    `json:"product_id"`
	WarehouseID uuid.UUID    `json:"warehouse_id"`
	Type        MutationType `json:"mutation_type"`
	Stock       int64        `json:"stock"`
}

// NewMutationSucceededEvent creates a new MutationSucceededEvent
func NewMutationSucceededEvent(m *Mutation) *MutationSucceededEvent {
	return &MutationSucceededEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMutationSucceeded, AggregateTypeMutation, m.ID),
		MutationID:      m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		Type:            m.MutationType,
		Stock:           m.Stock,
	}
}

// MutationFailedEvent is raised when process-time re-validation rejects a request
type MutationFailedEvent struct {
	shared.BaseDomainEvent
	MutationID  uuid.UUID `json:"mutation_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Reason      string    `json:"reason"`
}

// NewMutationFailedEvent creates a new MutationFailedEvent
func NewMutationFailedEvent(m *Mutation, reason string) *MutationFailedEvent {
	return &MutationFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMutationFailed, AggregateTypeMutation, m.ID),
		MutationID:      m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		Reason:          reason,
	}
}

// MutationCancelledEvent is raised when an admin withdraws a pending request
type MutationCancelledEvent struct {
	shared.BaseDomainEvent
	MutationID  uuid.UUID `json:"mutation_id"`
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
}

// NewMutationCancelledEvent creates a new MutationCancelledEvent
func NewMutationCancelledEvent(m *Mutation) *MutationCancelledEvent {
	return &MutationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMutationCancelled, AggregateTypeMutation, m.ID),
		MutationID:      m.ID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
	}
}
