package partner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwshop/backend/internal/domain/partner"
	"github.com/mwshop/backend/internal/domain/shared"
)

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	AdminID   *uuid.UUID `json:"admin_id,omitempty"`
	Street    string     `json:"street,omitempty"`
	City      string     `json:"city,omitempty"`
	Province  string     `json:"province,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateWarehouseRequest represents a request to register a warehouse
type CreateWarehouseRequest struct {
	Code      string     `json:"code" binding:"required,min=1,max=50"`
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Street    string     `json:"street" binding:"max=255"`
	City      string     `json:"city" binding:"max=100"`
	Province  string     `json:"province" binding:"max=100"`
	Latitude  float64    `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64    `json:"longitude" binding:"min=-180,max=180"`
	AdminID   *uuid.UUID `json:"admin_id"`
}

// WarehouseListFilter represents filter options for the warehouse listing
type WarehouseListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WarehouseService provides warehouse management use cases
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo partner.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// GetWarehouse returns a warehouse by ID
func (s *WarehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

// ListWarehouses returns a filtered page of warehouses
func (s *WarehouseService) ListWarehouses(ctx context.Context, filter WarehouseListFilter) (*shared.Paginated[WarehouseResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Status != "" {
		repoFilter.Filters = map[string]interface{}{"status": filter.Status}
	}

	warehouses, err := s.warehouseRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.warehouseRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, toWarehouseResponse(&warehouses[i]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// CreateWarehouse registers a new warehouse
func (s *WarehouseService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	warehouse, err := partner.NewWarehouse(req.Code, req.Name, partner.WarehouseAddress{
		Street:    req.Street,
		City:      req.City,
		Province:  req.Province,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return nil, err
	}

	if req.AdminID != nil {
		if err := warehouse.AssignAdmin(*req.AdminID); err != nil {
			return nil, err
		}
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	resp := toWarehouseResponse(warehouse)
	return &resp, nil
}

func toWarehouseResponse(w *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Status:    string(w.Status),
		AdminID:   w.AdminID,
		Street:    w.Address.Street,
		City:      w.Address.City,
		Province:  w.Address.Province,
		Latitude:  w.Address.Latitude,
		Longitude: w.Address.Longitude,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
