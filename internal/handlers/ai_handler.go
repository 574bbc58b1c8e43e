package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Assistant interface {
	Ask(ctx context.Context, message string) (string, error)
}

type AssistantHandler struct {
	assistant Assistant
}

func NewAssistantHandler(assistant Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type AskRequest struct {
	Message string `json:"message" binding:"required"`
}

// --- POST: /api/assistant/ask ---
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.assistant.Ask(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
