// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/services"
	"github.com/shopyangu/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{storageService: storageService}
}

// POST /upload
//
// Multipart form: "file" is the image, "folder" is an optional grouping hint
// for the object key.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, apperrors.New(apperrors.InvalidInput, "No file uploaded"))
		return
	}

	folder := c.PostForm("folder")

	file, err := fileHeader.Open()
	if err != nil {
		utils.ErrorResponse(c, apperrors.Wrap(apperrors.UploadFailed, "failed to open uploaded file", err))
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, fileHeader, folder)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"message": "success",
		"imgUrl":  result.URL,
	})
}
