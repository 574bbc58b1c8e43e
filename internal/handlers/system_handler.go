package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	env string
	now func() time.Time
}

func NewSystemHandler(env string) *SystemHandler {
	return &SystemHandler{env: env, now: time.Now}
}

// --- GET: /api/health ---
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
		"time":   h.now().UTC().Format(time.RFC3339Nano),
	})
}

// APINotFound answers unmatched /api routes, so they never fall through to the SPA.
func APINotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": fmt.Sprintf("API route not found: %s %s", c.Request.Method, c.Request.URL.RequestURI()),
	})
}
