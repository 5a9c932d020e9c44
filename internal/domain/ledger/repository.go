package ledger

import (
	"context"

	"github.com/google/uuid"
)

// MutationQuery carries the list filters exposed to the admin dashboard
type MutationQuery struct {
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
	Search      string     // matches product name or mutation type
	WarehouseID *uuid.UUID // source warehouse filter
	Month       int        // 1-12 within the current year, 0 disables
}

// JournalQuery carries the audit-trail list filters
type JournalQuery struct {
	Page                   int
	PageSize               int
	OrderBy                string
	OrderDir               string
	Search                 string
	WarehouseID            *uuid.UUID // matches source or destination
	DestinationWarehouseID *uuid.UUID
	Status                 MutationStatus
	Month                  int
}

// SummaryQuery scopes the stock summary aggregation
type SummaryQuery struct {
	WarehouseID *uuid.UUID
	Month       int
	Year        int
}

// ProductWarehouseSummary aggregates success mutations per (product, warehouse)
type ProductWarehouseSummary struct {
	ProductID        uuid.UUID `json:"product_id"`
	WarehouseID      uuid.UUID `json:"warehouse_id"`
	TotalAddition    int64     `json:"total_addition"`
	TotalSubtraction int64     `json:"total_subtraction"`
	EndingStock      int64     `json:"ending_stock"`
}

// StockSummary is the dashboard aggregate: overall totals plus the
// per-(product, warehouse) breakdown
type StockSummary struct {
	OverallAddition    int64                     `json:"overall_addition"`
	OverallSubtraction int64                     `json:"overall_subtraction"`
	OverallStock       int64                     `json:"overall_stock"`
	Summary            []ProductWarehouseSummary `json:"summary"`
}

// DuplicateKey identifies a potential double-submission of a transfer request:
// the same admin moving the same quantity of the same product between the same
// pair of warehouses while an earlier request is still pending.
type DuplicateKey struct {
	AdminID                uuid.UUID
	WarehouseID            uuid.UUID
	DestinationWarehouseID uuid.UUID
	ProductID              uuid.UUID
	Quantity               int64
}

// MutationRepository defines persistence for the append-only mutation ledger
type MutationRepository interface {
	// Save inserts or updates a mutation
	Save(ctx context.Context, m *Mutation) error

	// SaveWithLock updates a mutation with an optimistic version check and
	// returns shared.ErrConcurrencyConflict when the row changed underneath
	SaveWithLock(ctx context.Context, m *Mutation) error

	// FindByID finds a mutation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Mutation, error)

	// FindPendingByID finds a mutation by ID only if it is still pending
	FindPendingByID(ctx context.Context, id uuid.UUID) (*Mutation, error)

	// FindLatestSuccessful returns the most recent success mutation for the
	// (product, warehouse) pair ordered by created_at descending, or
	// shared.ErrNotFound when the pair has no ledger history
	FindLatestSuccessful(ctx context.Context, productID, warehouseID uuid.UUID) (*Mutation, error)

	// HasDuplicatePending reports whether an identical pending request exists
	HasDuplicatePending(ctx context.Context, key DuplicateKey) (bool, error)

	// FindAll lists mutations matching the query and returns the total count
	FindAll(ctx context.Context, q MutationQuery) ([]Mutation, int64, error)

	// SummarizeStock aggregates additions, subtractions and ending stock
	SummarizeStock(ctx context.Context, q SummaryQuery) (*StockSummary, error)
}

// JournalRepository defines persistence for the audit mirror
type JournalRepository interface {
	// Save inserts or updates a journal row
	Save(ctx context.Context, j *Journal) error

	// FindByMutationID finds the journal row paired with a mutation
	FindByMutationID(ctx context.Context, mutationID uuid.UUID) (*Journal, error)

	// FindAll lists journal rows matching the query and returns the total count
	FindAll(ctx context.Context, q JournalQuery) ([]Journal, int64, error)
}
