package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormJournalRepository implements JournalRepository using GORM
type GormJournalRepository struct {
	db *gorm.DB
}

// NewGormJournalRepository creates a new GormJournalRepository
func NewGormJournalRepository(db *gorm.DB) *GormJournalRepository {
	return &GormJournalRepository{db: db}
}

// Save inserts or updates a journal row
func (r *GormJournalRepository) Save(ctx context.Context, j *ledger.Journal) error {
	return r.db.WithContext(ctx).Save(j).Error
}

// FindByMutationID finds the journal row paired with a mutation
func (r *GormJournalRepository) FindByMutationID(ctx context.Context, mutationID uuid.UUID) (*ledger.Journal, error) {
	var j ledger.Journal
	if err := r.db.WithContext(ctx).
		Where("mutation_id = ?", mutationID).
		First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// FindAll lists journal rows matching the query and returns the total count
func (r *GormJournalRepository) FindAll(ctx context.Context, q ledger.JournalQuery) ([]ledger.Journal, int64, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Journal{})

	if q.WarehouseID != nil {
		query = query.Where("warehouse_id = ? OR destination_warehouse_id = ?", *q.WarehouseID, *q.WarehouseID)
	}
	if q.DestinationWarehouseID != nil {
		query = query.Where("destination_warehouse_id = ?", *q.DestinationWarehouseID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Month >= 1 && q.Month <= 12 {
		query = query.Where("EXTRACT(MONTH FROM created_at) = ?", q.Month)
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		query = query.Where(
			"mutation_type LIKE ? OR product_id IN (SELECT id FROM products WHERE name ILIKE ?)",
			pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []ledger.Journal
	if err := query.
		Order(orderClause(journalSortColumns, q.OrderBy, q.OrderDir)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Ensure GormJournalRepository implements JournalRepository
var _ ledger.JournalRepository = (*GormJournalRepository)(nil)
