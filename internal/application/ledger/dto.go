package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/mwshop/backend/internal/domain/ledger"
	"github.com/mwshop/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// StockResponse reports the current stock of a product at one warehouse
type StockResponse struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Stock       int64     `json:"stock"`
	AsOf        time.Time `json:"as_of"`
}

// TotalStockResponse reports a product's stock summed across all warehouses
type TotalStockResponse struct {
	ProductID  uuid.UUID        `json:"product_id"`
	TotalStock int64            `json:"total_stock"`
	Warehouses []WarehouseStock `json:"warehouses"`
}

// WarehouseStock is one warehouse's contribution to a product total
type WarehouseStock struct {
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Stock         int64     `json:"stock"`
}

// MutationResponse represents a ledger mutation in API responses
type MutationResponse struct {
	ID                       uuid.UUID  `json:"id"`
	ProductID                uuid.UUID  `json:"product_id"`
	ProductName              string     `json:"product_name,omitempty"`
	WarehouseID              uuid.UUID  `json:"warehouse_id"`
	WarehouseName            string     `json:"warehouse_name,omitempty"`
	DestinationWarehouseID   uuid.UUID  `json:"destination_warehouse_id"`
	DestinationWarehouseName string     `json:"destination_warehouse_name,omitempty"`
	MutationType             string     `json:"mutation_type"`
	MutationQuantity         int64      `json:"mutation_quantity"`
	PreviousStock            int64      `json:"previous_stock"`
	Stock                    int64      `json:"stock"`
	Status                   string     `json:"status"`
	IsManual                 bool       `json:"is_manual"`
	AdminID                  *uuid.UUID `json:"admin_id,omitempty"`
	Description              string     `json:"description,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// JournalResponse represents a journal row in API responses
type JournalResponse struct {
	ID                       uuid.UUID  `json:"id"`
	MutationID               uuid.UUID  `json:"mutation_id"`
	ProductID                uuid.UUID  `json:"product_id"`
	ProductName              string     `json:"product_name,omitempty"`
	WarehouseID              uuid.UUID  `json:"warehouse_id"`
	WarehouseName            string     `json:"warehouse_name,omitempty"`
	DestinationWarehouseID   uuid.UUID  `json:"destination_warehouse_id"`
	DestinationWarehouseName string     `json:"destination_warehouse_name,omitempty"`
	MutationType             string     `json:"mutation_type"`
	MutationQuantity         int64      `json:"mutation_quantity"`
	PreviousStock            int64      `json:"previous_stock"`
	Stock                    int64      `json:"stock"`
	Status                   string     `json:"status"`
	IsManual                 bool       `json:"is_manual"`
	AdminID                  *uuid.UUID `json:"admin_id,omitempty"`
	Description              string     `json:"description,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
}

// MutationListFilter represents filter options for the mutation listing
type MutationListFilter struct {
	Search      string     `form:"search"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Month       int        `form:"month" binding:"omitempty,min=1,max=12"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// JournalListFilter represents filter options for the journal listing
type JournalListFilter struct {
	Search                 string     `form:"search"`
	WarehouseID            *uuid.UUID `form:"warehouse_id"`
	DestinationWarehouseID *uuid.UUID `form:"destination_warehouse_id"`
	Status                 string     `form:"status"`
	Month                  int        `form:"month" binding:"omitempty,min=1,max=12"`
	Page                   int        `form:"page" binding:"omitempty,min=1"`
	PageSize               int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy                string     `form:"order_by"`
	OrderDir               string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SummaryFilter represents filter options for the monthly stock summary
type SummaryFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Month       int        `form:"month" binding:"omitempty,min=1,max=12"`
	Year        int        `form:"year" binding:"omitempty,min=2000"`
}

// StockSummaryResponse aggregates successful mutations per product/warehouse
type StockSummaryResponse struct {
	OverallAddition    int64                    `json:"overall_addition"`
	OverallSubtraction int64                    `json:"overall_subtraction"`
	OverallStock       int64                    `json:"overall_stock"`
	Summary            []ProductSummaryResponse `json:"summary"`
}

// ProductSummaryResponse is one product/warehouse row of the summary
type ProductSummaryResponse struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	WarehouseID      uuid.UUID `json:"warehouse_id"`
	WarehouseName    string    `json:"warehouse_name,omitempty"`
	TotalAddition    int64     `json:"total_addition"`
	TotalSubtraction int64     `json:"total_subtraction"`
	EndingStock      int64     `json:"ending_stock"`
}

// CreateMutationRequest represents a request to record a manual stock transfer
type CreateMutationRequest struct {
	ProductID              uuid.UUID  `json:"product_id" binding:"required"`
	WarehouseID            uuid.UUID  `json:"warehouse_id" binding:"required"`
	DestinationWarehouseID uuid.UUID  `json:"destination_warehouse_id" binding:"required"`
	Quantity               int64      `json:"quantity" binding:"required,gt=0"`
	AdminID                uuid.UUID  `json:"admin_id" binding:"required"`
	Description            string     `json:"description" binding:"max=500"`
	Date                   *time.Time `json:"date"`
}

// ProcessAction selects what to do with a pending mutation
type ProcessAction string

const (
	ProcessActionApprove ProcessAction = "process"
	ProcessActionCancel  ProcessAction = "cancel"
)

// ProcessMutationRequest represents a request to settle a pending mutation
type ProcessMutationRequest struct {
	MutationID uuid.UUID     `json:"mutation_id" binding:"required"`
	Action     ProcessAction `json:"action" binding:"required,oneof=process cancel"`
	AdminID    uuid.UUID     `json:"admin_id" binding:"required"`
}

// RequestStockRequest asks the fulfilling warehouse of an order to cover one
// product's ordered quantity, pulling the shortfall from the nearest donor
type RequestStockRequest struct {
	OrderID   uuid.UUID `json:"order_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// RequestStockResponse reports the replenishment outcome. Both mutation legs
// are nil when the fulfilling warehouse already covered the quantity.
type RequestStockResponse struct {
	OrderID          uuid.UUID         `json:"order_id"`
	ProductID        uuid.UUID         `json:"product_id"`
	RequiredQuantity int64             `json:"required_quantity"`
	DonorWarehouseID *uuid.UUID        `json:"donor_warehouse_id,omitempty"`
	DistanceKm       float64           `json:"distance_km,omitempty"`
	SourceMutation   *MutationResponse `json:"source_mutation,omitempty"`
	DonorMutation    *MutationResponse `json:"destination_mutation,omitempty"`
}

// ConfirmPaymentRequest represents an admin confirming the payment of one
// order line
type ConfirmPaymentRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	UserID        uuid.UUID       `json:"user_id"`
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ConfirmPaymentResponse reports the order transition and the stock commit
type ConfirmPaymentResponse struct {
	Order         OrderResponse     `json:"order"`
	Mutation      MutationResponse  `json:"mutation"`
	Replenishment *MutationResponse `json:"replenishment,omitempty"`
}

// toMutationResponse converts a domain mutation to its API shape
func toMutationResponse(m *ledger.Mutation) MutationResponse {
	return MutationResponse{
		ID:                     m.ID,
		ProductID:              m.ProductID,
		WarehouseID:            m.WarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		MutationType:           string(m.MutationType),
		MutationQuantity:       m.MutationQuantity,
		PreviousStock:          m.PreviousStock,
		Stock:                  m.Stock,
		Status:                 string(m.Status),
		IsManual:               m.IsManual,
		AdminID:                m.AdminID,
		Description:            m.Description,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// toOrderResponse converts a domain order to its API shape
func toOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		InvoiceNumber: o.InvoiceNumber,
		UserID:        o.UserID,
		WarehouseID:   o.WarehouseID,
		Status:        string(o.Status),
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// toJournalResponse converts a domain journal row to its API shape
func toJournalResponse(j *ledger.Journal) JournalResponse {
	return JournalResponse{
		ID:                     j.ID,
		MutationID:             j.MutationID,
		ProductID:              j.ProductID,
		WarehouseID:            j.WarehouseID,
		DestinationWarehouseID: j.DestinationWarehouseID,
		MutationType:           string(j.MutationType),
		MutationQuantity:       j.MutationQuantity,
		PreviousStock:          j.PreviousStock,
		Stock:                  j.Stock,
		Status:                 string(j.Status),
		IsManual:               j.IsManual,
		AdminID:                j.AdminID,
		Description:            j.Description,
		CreatedAt:              j.CreatedAt,
	}
}
