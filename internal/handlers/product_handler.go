package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/models"
	"gold-pos/internal/services"
)

type ProductHandler struct {
	inventory *services.InventoryService
}

func NewProductHandler(inventory *services.InventoryService) *ProductHandler {
	return &ProductHandler{inventory: inventory}
}

// --- GET: /api/products ---
// Newest purchases first.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.inventory.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- POST: /api/products ---
func (h *ProductHandler) Create(c *gin.Context) {
	var p models.Product
	if !bindRow(c, &p) {
		return
	}

	if err := h.inventory.Create(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// --- PUT: /api/products/:id ---
// Full-row update; the id comes from the URL.
func (h *ProductHandler) Update(c *gin.Context) {
	var p models.Product
	if !bindRow(c, &p) {
		return
	}
	p.ID = c.Param("id")

	if err := h.inventory.Update(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// --- DELETE: /api/products/:id ---
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}

// --- GET: /api/products/lookup?code=U001&exclude=id1,id2 ---
// Checkout search. exclude lists the products already in the cart.
func (h *ProductHandler) Lookup(c *gin.Context) {
	code := c.Query("code")
	if strings.TrimSpace(code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	var cartIDs []string
	if exclude := c.Query("exclude"); exclude != "" {
		for _, id := range strings.Split(exclude, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cartIDs = append(cartIDs, id)
			}
		}
	}

	res, err := h.inventory.Lookup(c.Request.Context(), code, cartIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- GET: /api/products/check-code?code=U001 ---
func (h *ProductHandler) CheckCode(c *gin.Context) {
	code := c.Query("code")
	if strings.TrimSpace(code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	check, err := h.inventory.CheckCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}

// --- POST: /api/stock/intake ---
func (h *ProductHandler) Intake(c *gin.Context) {
	var params services.IntakeParams
	if !bindCommand(c, &params) {
		return
	}

	p, err := h.inventory.Intake(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type RepriceRequest struct {
	Type         string  `json:"type" binding:"required"`
	PricePerGram float64 `json:"pricePerGram" binding:"gt=0"`
}

// --- POST: /api/products/reprice ---
// Re-prices every in-stock item of a category and returns fresh labels.
func (h *ProductHandler) Reprice(c *gin.Context) {
	var req RepriceRequest
	if !bindCommand(c, &req) {
		return
	}

	res, err := h.inventory.Reprice(c.Request.Context(), req.Type, req.PricePerGram)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// --- GET: /api/products/:id/label ---
func (h *ProductHandler) Label(c *gin.Context) {
	l, err := h.inventory.Label(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}
