package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/models"
	"gold-pos/internal/services"
)

type ScrapHandler struct {
	scraps *services.ScrapService
}

func NewScrapHandler(scraps *services.ScrapService) *ScrapHandler {
	return &ScrapHandler{scraps: scraps}
}

// --- GET: /api/scraps ---
func (h *ScrapHandler) List(c *gin.Context) {
	scraps, err := h.scraps.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scraps)
}

// --- POST: /api/scraps ---
// Scrap records are written once; there is no update route.
func (h *ScrapHandler) Create(c *gin.Context) {
	var scrap models.ScrapGold
	if !bindRow(c, &scrap) {
		return
	}

	if err := h.scraps.Create(c.Request.Context(), &scrap); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scrap)
}

// --- POST: /api/scraps/intake ---
func (h *ScrapHandler) Intake(c *gin.Context) {
	var params services.ScrapIntakeParams
	if !bindCommand(c, &params) {
		return
	}

	scrap, err := h.scraps.Intake(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scrap)
}
