package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/models"
	"gold-pos/internal/services"
)

type SettingsHandler struct {
	settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// --- GET: /api/settings ---
// Answers null until the shop saves its first settings; the client then uses its defaults.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// --- POST: /api/settings ---
// The whole document is replaced.
func (h *SettingsHandler) Save(c *gin.Context) {
	var settings models.AppSettings
	if !bindRow(c, &settings) {
		return
	}

	if err := h.settings.Save(c.Request.Context(), &settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
