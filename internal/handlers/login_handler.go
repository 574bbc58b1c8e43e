package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --- POST: /api/auth/admin ---
// Trades the admin password from settings for a bearer token.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input AdminLoginRequest
	if !bindCommand(c, &input) {
		return
	}

	token, err := h.auth.AdminLogin(c.Request.Context(), input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

type DeleteCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// --- POST: /api/auth/delete-code ---
// The client asks for the delete code before removing stock or customers.
func (h *AuthHandler) VerifyDeleteCode(c *gin.Context) {
	var input DeleteCodeRequest
	if !bindCommand(c, &input) {
		return
	}

	if err := h.auth.VerifyDeleteCode(c.Request.Context(), input.Code); err != nil {
		respondError(c, err)
		return
	}
	success(c)
}
