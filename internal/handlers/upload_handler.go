package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gold-pos/internal/storage"
)

type UploadHandler struct {
	storage *storage.Service
}

func NewUploadHandler(store *storage.Service) *UploadHandler {
	return &UploadHandler{storage: store}
}

var uploadFolders = map[string]bool{"products": true, "scraps": true}

// --- POST: /api/uploads ---
// Multipart form: "file" plus an optional "folder" (products or scraps).
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	folder := c.DefaultPostForm("folder", "products")
	if !uploadFolders[folder] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "folder must be products or scraps"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	res, err := h.storage.Upload(c.Request.Context(), folder, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
