package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/models"
	"gold-pos/internal/services"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(customers *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// --- GET: /api/customers ---
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// --- POST: /api/customers ---
func (h *CustomerHandler) Create(c *gin.Context) {
	var customer models.Customer
	if !bindRow(c, &customer) {
		return
	}

	if err := h.customers.Create(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// --- PUT: /api/customers/:id ---
func (h *CustomerHandler) Update(c *gin.Context) {
	var customer models.Customer
	if !bindRow(c, &customer) {
		return
	}
	customer.ID = c.Param("id")

	if err := h.customers.Update(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// --- DELETE: /api/customers/:id ---
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}

// --- GET: /api/customers/:id/sales ---
func (h *CustomerHandler) History(c *gin.Context) {
	history, err := h.customers.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
