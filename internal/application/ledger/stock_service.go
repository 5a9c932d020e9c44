package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/catalog"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/partner"
	"github.com/mwshop/backend/internal/domain/shared"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// StockQueryService answers read-side questions against the mutation ledger:
// current stock, listings, and aggregates. It never writes ledger rows.
type StockQueryService struct {
	mutationRepo  ledger.MutationRepository
	journalRepo   ledger.JournalRepository
	warehouseRepo partner.WarehouseRepository
	productRepo   catalog.ProductRepository
	cache         StockCache
}

// NewStockQueryService creates a new StockQueryService
func NewStockQueryService(
	mutationRepo ledger.MutationRepository,
	journalRepo ledger.JournalRepository,
	warehouseRepo partner.WarehouseRepository,
	productRepo catalog.ProductRepository,
) *StockQueryService {
	return &StockQueryService{
		mutationRepo:  mutationRepo,
		journalRepo:   journalRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
	}
}

// SetStockCache installs an optional read-through cache for current stock
func (s *StockQueryService) SetStockCache(cache StockCache) {
	s.cache = cache
}

// CurrentStock returns the current stock of a product at a warehouse: the
// Stock value of the latest success mutation, or zero when the pair has no
// ledger history.
func (s *StockQueryService) CurrentStock(ctx context.Context, productID, warehouseID uuid.UUID) (*StockResponse, error) {
	if productID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	if s.cache != nil {
		if stock, ok, err := s.cache.Get(ctx, productID, warehouseID); err == nil && ok {
			return &StockResponse{
				WarehouseID: warehouseID,
				ProductID:   productID,
				Stock:       stock,
				AsOf:        time.Now(),
			}, nil
		}
	}

	stock, err := currentStock(ctx, s.mutationRepo, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Best effort: a failed cache write must not fail the read
		_ = s.cache.Set(ctx, productID, warehouseID, stock)
	}

	return &StockResponse{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Stock:       stock,
		AsOf:        time.Now(),
	}, nil
}

// TotalStock sums a product's current stock across all active warehouses
func (s *StockQueryService) TotalStock(ctx context.Context, productID uuid.UUID) (*TotalStockResponse, error) {
	if productID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	warehouses, err := s.warehouseRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := &TotalStockResponse{
		ProductID:  productID,
		Warehouses: make([]WarehouseStock, 0, len(warehouses)),
	}
	for i := range warehouses {
		w := &warehouses[i]
		stock, err := currentStock(ctx, s.mutationRepo, productID, w.ID)
		if err != nil {
			return nil, err
		}
		resp.TotalStock += stock
		resp.Warehouses = append(resp.Warehouses, WarehouseStock{
			WarehouseID:   w.ID,
			WarehouseName: w.Name,
			Stock:         stock,
		})
	}
	return resp, nil
}

// ListMutations lists ledger rows for the admin dashboard, newest first by
// default, with product and warehouse names joined in.
func (s *StockQueryService) ListMutations(ctx context.Context, filter MutationListFilter) (*shared.Paginated[MutationResponse], error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	items, total, err := s.mutationRepo.FindAll(ctx, ledger.MutationQuery{
		Page:        page,
		PageSize:    pageSize,
		OrderBy:     filter.OrderBy,
		OrderDir:    filter.OrderDir,
		Search:      filter.Search,
		WarehouseID: filter.WarehouseID,
		Month:       filter.Month,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]MutationResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toMutationResponse(&items[i]))
	}
	s.attachMutationNames(ctx, responses)

	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}

// ListJournal lists audit rows with the same enrichment as the mutation list
func (s *StockQueryService) ListJournal(ctx context.Context, filter JournalListFilter) (*shared.Paginated[JournalResponse], error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	status := ledger.MutationStatus(filter.Status)
	if filter.Status != "" && !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown mutation status")
	}

	items, total, err := s.journalRepo.FindAll(ctx, ledger.JournalQuery{
		Page:                   page,
		PageSize:               pageSize,
		OrderBy:                filter.OrderBy,
		OrderDir:               filter.OrderDir,
		Search:                 filter.Search,
		WarehouseID:            filter.WarehouseID,
		DestinationWarehouseID: filter.DestinationWarehouseID,
		Status:                 status,
		Month:                  filter.Month,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]JournalResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toJournalResponse(&items[i]))
	}
	s.attachJournalNames(ctx, responses)

	result := shared.NewPaginated(responses, total, page, pageSize)
	return &result, nil
}

// SummarizeStock aggregates success mutations per product and warehouse,
// optionally scoped to one warehouse, one month, and one year.
func (s *StockQueryService) SummarizeStock(ctx context.Context, filter SummaryFilter) (*StockSummaryResponse, error) {
	summary, err := s.mutationRepo.SummarizeStock(ctx, ledger.SummaryQuery{
		WarehouseID: filter.WarehouseID,
		Month:       filter.Month,
		Year:        filter.Year,
	})
	if err != nil {
		return nil, err
	}

	resp := &StockSummaryResponse{
		OverallAddition:    summary.OverallAddition,
		OverallSubtraction: summary.OverallSubtraction,
		OverallStock:       summary.OverallStock,
		Summary:            make([]ProductSummaryResponse, 0, len(summary.Summary)),
	}

	productNames := s.productNames(ctx, productIDsOfSummary(summary.Summary))
	warehouseNames := s.warehouseNames(ctx, warehouseIDsOfSummary(summary.Summary))

	for _, row := range summary.Summary {
		resp.Summary = append(resp.Summary, ProductSummaryResponse{
			ProductID:        row.ProductID,
			ProductName:      productNames[row.ProductID],
			WarehouseID:      row.WarehouseID,
			WarehouseName:    warehouseNames[row.WarehouseID],
			TotalAddition:    row.TotalAddition,
			TotalSubtraction: row.TotalSubtraction,
			EndingStock:      row.EndingStock,
		})
	}
	return resp, nil
}

// currentStock resolves the ledger-derived stock for a pair, treating an
// empty history as zero stock.
func currentStock(ctx context.Context, repo ledger.MutationRepository, productID, warehouseID uuid.UUID) (int64, error) {
	latest, err := repo.FindLatestSuccessful(ctx, productID, warehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return latest.Stock, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func (s *StockQueryService) attachMutationNames(ctx context.Context, rows []MutationResponse) {
	productIDs := make([]uuid.UUID, 0, len(rows))
	warehouseIDs := make([]uuid.UUID, 0, len(rows)*2)
	for _, r := range rows {
		productIDs = append(productIDs, r.ProductID)
		warehouseIDs = append(warehouseIDs, r.WarehouseID, r.DestinationWarehouseID)
	}
	productNames := s.productNames(ctx, productIDs)
	warehouseNames := s.warehouseNames(ctx, warehouseIDs)

	for i := range rows {
		rows[i].ProductName = productNames[rows[i].ProductID]
		rows[i].WarehouseName = warehouseNames[rows[i].WarehouseID]
		rows[i].DestinationWarehouseName = warehouseNames[rows[i].DestinationWarehouseID]
	}
}

func (s *StockQueryService) attachJournalNames(ctx context.Context, rows []JournalResponse) {
	productIDs := make([]uuid.UUID, 0, len(rows))
	warehouseIDs := make([]uuid.UUID, 0, len(rows)*2)
	for _, r := range rows {
		productIDs = append(productIDs, r.ProductID)
		warehouseIDs = append(warehouseIDs, r.WarehouseID, r.DestinationWarehouseID)
	}
	productNames := s.productNames(ctx, productIDs)
	warehouseNames := s.warehouseNames(ctx, warehouseIDs)

	for i := range rows {
		rows[i].ProductName = productNames[rows[i].ProductID]
		rows[i].WarehouseName = warehouseNames[rows[i].WarehouseID]
		rows[i].DestinationWarehouseName = warehouseNames[rows[i].DestinationWarehouseID]
	}
}

// productNames resolves display names, best effort. Listing rows for a
// deleted product is still valid; its name is simply blank.
func (s *StockQueryService) productNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if s.productRepo == nil || len(ids) == 0 {
		return names
	}
	products, err := s.productRepo.FindByIDs(ctx, dedupe(ids))
	if err != nil {
		return names
	}
	for i := range products {
		names[products[i].ID] = products[i].Name
	}
	return names
}

func (s *StockQueryService) warehouseNames(ctx context.Context, ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if s.warehouseRepo == nil {
		return names
	}
	for _, id := range dedupe(ids) {
		w, err := s.warehouseRepo.FindByID(ctx, id)
		if err != nil {
			continue
		}
		names[id] = w.Name
	}
	return names
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func productIDsOfSummary(rows []ledger.ProductWarehouseSummary) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProductID)
	}
	return ids
}

func warehouseIDsOfSummary(rows []ledger.ProductWarehouseSummary) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.WarehouseID)
	}
	return ids
}
