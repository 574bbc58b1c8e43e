package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/models"
	"gold-pos/internal/observability"
	"gold-pos/internal/services"
)

type SaleHandler struct {
	sales   *services.SalesService
	metrics *observability.Metrics
}

// NewSaleHandler accepts a nil metrics.
func NewSaleHandler(sales *services.SalesService, metrics *observability.Metrics) *SaleHandler {
	return &SaleHandler{sales: sales, metrics: metrics}
}

// --- GET: /api/sales ---
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.sales.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- POST: /api/sales ---
func (h *SaleHandler) Create(c *gin.Context) {
	var sale models.Sale
	if !bindRow(c, &sale) {
		return
	}

	if err := h.sales.Create(c.Request.Context(), &sale); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

type SaleStatusRequest struct {
	Status     models.SaleStatus `json:"status" binding:"required,oneof=completed returned exchanged"`
	ReturnNote string            `json:"returnNote"`
}

// --- PUT: /api/sales/:id ---
// Only status and returnNote are written; the rest of the sale is immutable.
func (h *SaleHandler) Update(c *gin.Context) {
	var req SaleStatusRequest
	if !bindCommand(c, &req) {
		return
	}

	id := c.Param("id")
	if err := h.sales.UpdateStatus(c.Request.Context(), id, req.Status, req.ReturnNote); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status, "returnNote": req.ReturnNote})
}

// --- POST: /api/checkout ---
func (h *SaleHandler) Checkout(c *gin.Context) {
	var params services.CheckoutParams
	if !bindCommand(c, &params) {
		return
	}

	receipt, err := h.sales.Checkout(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.CheckoutCompleted()
	c.JSON(http.StatusCreated, receipt)
}

// --- POST: /api/sales/:id/return ---
func (h *SaleHandler) Return(c *gin.Context) {
	var params services.ReturnParams
	if !bindCommand(c, &params) {
		return
	}

	res, err := h.sales.Return(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	h.metrics.ReturnProcessed(string(params.Mode))
	c.JSON(http.StatusOK, res)
}
