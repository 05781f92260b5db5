package handler

import (
	"bytes"
	"io"
	"path"

	"github.com/labstack/echo/v4"

	"lokapasar/internal/infrastructure/storage"
	"lokapasar/pkg/errors"
	"lokapasar/pkg/logger"
	"lokapasar/pkg/response"
)

type FileHandler struct {
	storageClient  *storage.CloudStorageClient
	fallbackUpload *storage.FallbackUploader
}

func NewFileHandler(storageClient *storage.CloudStorageClient, fallbackUpload *storage.FallbackUploader) *FileHandler {
	return &FileHandler{
		storageClient:  storageClient,
		fallbackUpload: fallbackUpload,
	}
}

// UploadListingImages stores listing photos and returns their public
// URLs for the subsequent create call. If the bucket write fails and a
// fallback image host is configured, the fallback is tried before giving
// up.
func (h *FileHandler) UploadListingImages(c echo.Context) error {
	userID := c.Get("uid").(string)

	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Image files are required", err))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("Image files are required", nil))
	}
	if len(files) > 10 {
		return response.Error(c, errors.BadRequest("A maximum of 10 images is allowed", nil))
	}

	folder := "listings/" + userID

	urls := make([]string, 0, len(files))
	for i, fileHeader := range files {
		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read image file", err))
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read image file", err))
		}

		ext := path.Ext(fileHeader.Filename)
		url, err := h.storageClient.UploadListingImage(c.Request().Context(), bytes.NewReader(data), folder, i, ext)
		if err != nil {
			logger.Warn("Bucket upload failed for listing image %d: %v", i, err)
			if !h.fallbackUpload.Enabled() {
				return response.Error(c, errors.Internal("Failed to upload image", err))
			}
			url, err = h.fallbackUpload.Upload(c.Request().Context(), bytes.NewReader(data), fileHeader.Filename)
			if err != nil {
				return response.Error(c, errors.Internal("Failed to upload image", err))
			}
		}

		urls = append(urls, url)
	}

	return response.Created(c, map[string]interface{}{
		"urls": urls,
	})
}
