package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMutationRepository implements MutationRepository using GORM
type GormMutationRepository struct {
	db *gorm.DB
}

// NewGormMutationRepository creates a new GormMutationRepository
func NewGormMutationRepository(db *gorm.DB) *GormMutationRepository {
	return &GormMutationRepository{db: db}
}

// Save inserts or updates a mutation
func (r *GormMutationRepository) Save(ctx context.Context, m *ledger.Mutation) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// SaveWithLock updates a mutation with an optimistic version check. The row
// must still carry the version the aggregate was loaded with; a zero-row
// update means another process settled the mutation first.
func (r *GormMutationRepository) SaveWithLock(ctx context.Context, m *ledger.Mutation) error {
	result := r.db.WithContext(ctx).
		Model(m).
		Where("id = ? AND version = ?", m.ID, m.Version-1).
		Updates(map[string]interface{}{
			"status":      m.Status,
			"stock":       m.Stock,
			"description": m.Description,
			"version":     m.Version,
			"updated_at":  m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a mutation by its ID
func (r *GormMutationRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Mutation, error) {
	var m ledger.Mutation
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindPendingByID finds a mutation by ID only if it is still pending
func (r *GormMutationRepository) FindPendingByID(ctx context.Context, id uuid.UUID) (*ledger.Mutation, error) {
	var m ledger.Mutation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, ledger.MutationStatusPending).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindLatestSuccessful returns the most recent success mutation for the
// (product, warehouse) pair. That row's Stock is the pair's current stock.
func (r *GormMutationRepository) FindLatestSuccessful(ctx context.Context, productID, warehouseID uuid.UUID) (*ledger.Mutation, error) {
	var m ledger.Mutation
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ? AND status = ?",
			productID, warehouseID, ledger.MutationStatusSuccess).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// HasDuplicatePending reports whether an identical pending request exists
func (r *GormMutationRepository) HasDuplicatePending(ctx context.Context, key ledger.DuplicateKey) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Mutation{}).
		Where("admin_id = ? AND warehouse_id = ? AND destination_warehouse_id = ? AND product_id = ? AND mutation_quantity = ? AND status = ?",
			key.AdminID, key.WarehouseID, key.DestinationWarehouseID, key.ProductID, key.Quantity,
			ledger.MutationStatusPending).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lists mutations matching the query and returns the total count
func (r *GormMutationRepository) FindAll(ctx context.Context, q ledger.MutationQuery) ([]ledger.Mutation, int64, error) {
	query := r.db.WithContext(ctx).Model(&ledger.Mutation{})

	if q.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *q.WarehouseID)
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

	var items []ledger.Mutation
	if err := query.
		Order(orderClause(mutationSortColumns, q.OrderBy, q.OrderDir)).
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SummarizeStock aggregates success mutations per product and warehouse.
// Additions and subtractions honor the month/year scope, but the ending
// stock of a pair is always its latest success row, resolved by a
// correlated subquery outside that scope.
func (r *GormMutationRepository) SummarizeStock(ctx context.Context, q ledger.SummaryQuery) (*ledger.StockSummary, error) {
	type row struct {
		ProductID        uuid.UUID
		WarehouseID      uuid.UUID
		TotalAddition    int64
		TotalSubtraction int64
		EndingStock      int64
	}

	query := r.db.WithContext(ctx).
		Model(&ledger.Mutation{}).
		Select(`product_id, warehouse_id,
			COALESCE(SUM(CASE WHEN mutation_type = 'add' THEN mutation_quantity ELSE 0 END), 0) AS total_addition,
			COALESCE(SUM(CASE WHEN mutation_type = 'subtract' THEN mutation_quantity ELSE 0 END), 0) AS total_subtraction,
			COALESCE((SELECT sub.stock FROM mutations sub
				WHERE sub.product_id = mutations.product_id
				AND sub.warehouse_id = mutations.warehouse_id
				AND sub.status = 'success'
				ORDER BY sub.created_at DESC LIMIT 1), 0) AS ending_stock`).
		Where("status = ?", ledger.MutationStatusSuccess)

	if q.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *q.WarehouseID)
	}
	if q.Month >= 1 && q.Month <= 12 {
		query = query.Where("EXTRACT(MONTH FROM created_at) = ?", q.Month)
	}
	if q.Year > 0 {
		query = query.Where("EXTRACT(YEAR FROM created_at) = ?", q.Year)
	}

	var rows []row
	if err := query.
		Group("product_id, warehouse_id").
		Order("product_id, warehouse_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := &ledger.StockSummary{
		Summary: make([]ledger.ProductWarehouseSummary, 0, len(rows)),
	}
	for _, r := range rows {
		summary.OverallAddition += r.TotalAddition
		summary.OverallSubtraction += r.TotalSubtraction
		summary.OverallStock += r.EndingStock
		summary.Summary = append(summary.Summary, ledger.ProductWarehouseSummary{
			ProductID:        r.ProductID,
			WarehouseID:      r.WarehouseID,
			TotalAddition:    r.TotalAddition,
			TotalSubtraction: r.TotalSubtraction,
			EndingStock:      r.EndingStock,
		})
	}
	return summary, nil
}

// Ensure GormMutationRepository implements MutationRepository
var _ ledger.MutationRepository = (*GormMutationRepository)(nil)
