package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/mwshop/backend/internal/application/ledger"
)

// OrderHandler handles the order-driven stock endpoints
type OrderHandler struct {
	BaseHandler
	replenishmentService *ledgerapp.ReplenishmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(replenishmentService *ledgerapp.ReplenishmentService) *OrderHandler {
	return &OrderHandler{
		replenishmentService: replenishmentService,
	}
}

// RegisterRoutes registers order stock routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/request-stock", h.RequestStock)
		orders.POST("/:id/confirm-payment", h.ConfirmPayment)
	}
}

// RequestStock pulls an order line's shortfall into the fulfilling warehouse
// from the nearest donor warehouse
func (h *OrderHandler) RequestStock(c *gin.Context) {
	var req ledgerapp.RequestStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.replenishmentService.AutoRequestStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Stock request handled", result)
}

// ConfirmPayment confirms an order's payment and commits the stock subtraction
// for the given product line, replenishing any shortfall in the same commit
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ledgerapp.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.replenishmentService.ConfirmPaymentProof(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "Payment confirmed", result)
}
