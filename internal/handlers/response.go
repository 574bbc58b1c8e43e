package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/assistant"
	"gold-pos/internal/services"
	"gold-pos/internal/storage"
	"gold-pos/internal/utils"
)

// statusFor maps service errors to HTTP codes. Anything unknown is a store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateCode),
		errors.Is(err, services.ErrNotInStock),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrCustomerRequired),
		errors.Is(err, storage.ErrTooLarge),
		errors.Is(err, storage.ErrTypeNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, assistant.ErrDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var dup *services.DuplicateCodeError
	if errors.As(err, &dup) {
		c.JSON(status, gin.H{"error": err.Error(), "duplicate": dup.Check})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindCommand decodes and validates a command body. It writes the 400 itself and
// reports false when the body is rejected.
func bindCommand(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if details := utils.GetValidationErrors(err); details != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return false
	}
	return true
}

// bindRow decodes a raw entity row. Rows are stored as sent, so there is nothing to validate.
func bindRow(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return false
	}
	return true
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
