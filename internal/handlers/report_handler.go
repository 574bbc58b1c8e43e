package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// --- GET: /api/reports/summary ---
// Dashboard figures plus today's Z-report.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- GET: /api/reports/valuation ---
// In-stock items grouped by category, the printable stock valuation.
func (h *ReportHandler) Valuation(c *gin.Context) {
	valuation, err := h.reports.Valuation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, valuation)
}

// --- GET: /api/reports/sold?date=2025-01-31&supplier=... ---
func (h *ReportHandler) Sold(c *gin.Context) {
	report, err := h.reports.Sold(c.Request.Context(), c.Query("date"), c.Query("supplier"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
