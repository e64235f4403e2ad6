package handler

import (
	"github.com/labstack/echo/v4"

	"freelancehub/internal/infrastructure/storage"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/response"
)

var allowedFolders = map[string]bool{
	"gigs":       true,
	"deliveries": true,
	"avatars":    true,
	"messages":   true,
}

type FileHandler struct {
	fileStorage storage.FileStorage
}

func NewFileHandler(fileStorage storage.FileStorage) *FileHandler {
	return &FileHandler{
		fileStorage: fileStorage,
	}
}

// Upload stores a multipart file under a whitelisted folder and returns its
// public URL.
func (h *FileHandler) Upload(c echo.Context) error {
	folder := c.FormValue("folder")
	if !allowedFolders[folder] {
		return response.Error(c, errors.BadRequest("Invalid upload folder", nil))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	const maxFileSize = 10 << 20
	if fileHeader.Size > maxFileSize {
		return response.Error(c, errors.BadRequest("File exceeds the 10MB limit", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.fileStorage.UploadFile(c.Request().Context(), file, folder, fileHeader.Filename, contentType)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{"url": url})
}
