package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/shared"
)

// Journal is the operator-facing audit mirror of a Mutation. One row exists
// per mutation created through an operator-visible workflow, carrying the same
// causal fields and updated in lockstep with the paired mutation's status.
// No journal row exists without a causally-prior mutation.
type Journal struct {
	shared.BaseEntity
	MutationID             uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	ProductID              uuid.UUID      `gorm:"type:uuid;not null;index"`
	WarehouseID            uuid.UUID      `gorm:"type:uuid;not null;index"`
	DestinationWarehouseID uuid.UUID      `gorm:"type:uuid;not null;index"`
	MutationType           MutationType   `gorm:"type:varchar(20);not null"`
	MutationQuantity       int64          `gorm:"not null"`
	PreviousStock          int64          `gorm:"not null"`
	Stock                  int64          `gorm:"not null"`
	Status                 MutationStatus `gorm:"type:varchar(20);not null;index"`
	IsManual               bool           `gorm:"not null;default:false"`
	AdminID                *uuid.UUID     `gorm:"type:uuid"`
	Description            string         `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Journal) TableName() string {
	return "journals"
}

// NewJournal mirrors a mutation into an audit row. The journal inherits the
// mutation's timestamps so both sides of the pair sort identically.
func NewJournal(m *Mutation) *Journal {
	return &Journal{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		MutationID:             m.ID,
		ProductID:              m.ProductID,
		WarehouseID:            m.WarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		MutationType:           m.MutationType,
		MutationQuantity:       m.MutationQuantity,
		PreviousStock:          m.PreviousStock,
		Stock:                  m.Stock,
		Status:                 m.Status,
		IsManual:               m.IsManual,
		AdminID:                m.AdminID,
		Description:            m.Description,
	}
}

// SyncWith updates the journal from its paired mutation after a status
// transition. Status, stock and description are the only fields a transition
// may touch.
func (j *Journal) SyncWith(m *Mutation) error {
	if j.MutationID != m.ID {
		return shared.NewDomainError("JOURNAL_MISMATCH", "Journal is not paired with this mutation")
	}
	j.Status = m.Status
	j.Stock = m.Stock
	j.Description = m.Description
	j.UpdatedAt = time.Now()
	return nil
}
