package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/mwshop/backend/internal/application/ledger"
)

// MutationHandler handles stock query and mutation endpoints
type MutationHandler struct {
	BaseHandler
	stockService    *ledgerapp.StockQueryService
	transferService *ledgerapp.TransferService
}

// NewMutationHandler creates a new MutationHandler
func NewMutationHandler(stockService *ledgerapp.StockQueryService, transferService *ledgerapp.TransferService) *MutationHandler {
	return &MutationHandler{
		stockService:    stockService,
		transferService: transferService,
	}
}

// RegisterRoutes registers mutation and stock routes
func (h *MutationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/warehouses/:warehouseId/products/:productId/stock", h.GetStock)
	rg.GET("/products/:productId/stock", h.GetTotalStock)

	mutations := rg.Group("/mutations")
	{
		mutations.GET("", h.ListMutations)
		mutations.GET("/summary", h.GetSummary)
		mutations.POST("", h.CreateMutation)
		mutations.POST("/process", h.ProcessMutation)
	}

	rg.GET("/journals", h.ListJournal)
}

// GetStock returns the current stock of a product at one warehouse
func (h *MutationHandler) GetStock(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("warehouseId"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	stock, err := h.stockService.CurrentStock(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Stock retrieved", stock)
}

// GetTotalStock returns a product's stock summed across active warehouses
func (h *MutationHandler) GetTotalStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	total, err := h.stockService.TotalStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Total stock retrieved", total)
}

// ListMutations returns a filtered page of the mutation ledger
func (h *MutationHandler) ListMutations(c *gin.Context) {
	var filter ledgerapp.MutationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.stockService.ListMutations(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, "Mutations retrieved", page.Items, page.Total, page.Page, page.PageSize)
}

// ListJournal returns a filtered page of the audit journal
func (h *MutationHandler) ListJournal(c *gin.Context) {
	var filter ledgerapp.JournalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	page, err := h.stockService.ListJournal(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, "Journal retrieved", page.Items, page.Total, page.Page, page.PageSize)
}

// GetSummary returns the per-product/warehouse mutation totals
func (h *MutationHandler) GetSummary(c *gin.Context) {
	var filter ledgerapp.SummaryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	summary, err := h.stockService.SummarizeStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Summary retrieved", summary)
}

// CreateMutation records a manual transfer request in pending state
func (h *MutationHandler) CreateMutation(c *gin.Context) {
	var req ledgerapp.CreateMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	mutation, err := h.transferService.CreateManualMutation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Mutation created", mutation)
}

// ProcessMutation settles a pending mutation: "process" revalidates stock
// and applies the transfer, "cancel" withdraws the request
func (h *MutationHandler) ProcessMutation(c *gin.Context) {
	var req ledgerapp.ProcessMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	mutation, err := h.transferService.ProcessMutation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Mutation processed", mutation)
}
