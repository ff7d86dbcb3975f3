package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

type UploadHandler struct {
	registry        *wizard.Registry
	storageClient   *supabase.StorageClient
	watermarkClient *supabase.StorageClient
	realtimeClient  *supabase.RealtimeClient
}

func NewUploadHandler(registry *wizard.Registry, storageClient, watermarkClient *supabase.StorageClient, realtimeClient *supabase.RealtimeClient) *UploadHandler {
	return &UploadHandler{
		registry:        registry,
		storageClient:   storageClient,
		watermarkClient: watermarkClient,
		realtimeClient:  realtimeClient,
	}
}

func detectMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".heic"):
		return "image/heic"
	case strings.HasSuffix(lower, ".cr2"):
		return "image/x-canon-cr2"
	case strings.HasSuffix(lower, ".nef"):
		return "image/x-nikon-nef"
	case strings.HasSuffix(lower, ".dng"):
		return "image/x-adobe-dng"
	default:
		return "image/jpeg"
	}
}

func formFiles(form *multipart.Form) []*multipart.FileHeader {
	for _, fieldName := range []string{"images", "image", "files", "file", "photos", "photo"} {
		if f := form.File[fieldName]; len(f) > 0 {
			return f
		}
	}
	return nil
}

// Upload godoc
// @Summary     Upload images to the order draft
// @Description Uploads the wizard's image files to storage and attaches them to
// @Description the draft. Files are processed sequentially; when some fail only
// @Description the aggregate count is reported back.
// @Tags        order-flow
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       images formData file true "Image files (multiple allowed)"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /order-flow/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// 32MB in-memory cap for the multipart form
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form"})
		return
	}

	files := formFiles(form)
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files uploaded"})
		return
	}

	sess := h.registry.Get(userID)

	h.realtimeClient.PublishUserEvent(userID, "upload_started",
		supabase.UploadStartedPayload(userID, len(files)))

	uploaded := make([]models.DraftFileInfo, 0, len(files))
	failed := 0
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			failed++
			logger.Log.Warn("failed to open uploaded file", zap.String("filename", file.Filename), zap.Error(err))
			continue
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			failed++
			logger.Log.Warn("failed to read uploaded file", zap.String("filename", file.Filename), zap.Error(err))
			continue
		}

		mimeType := detectMimeType(file.Filename)
		storagePath, storageURL, err := h.storageClient.UploadOrderFile(userID, sess.ID, file.Filename, mimeType, data)
		if err != nil {
			failed++
			logger.Log.Warn("failed to store uploaded file", zap.String("filename", file.Filename), zap.Error(err))
			continue
		}

		sess.Draft.AddFile(wizard.FileRef{
			Filename:    file.Filename,
			Size:        file.Size,
			MimeType:    mimeType,
			StoragePath: storagePath,
			StorageURL:  storageURL,
		})
		uploaded = append(uploaded, models.DraftFileInfo{
			Filename: file.Filename,
			Size:     file.Size,
			MimeType: mimeType,
		})
	}

	if len(uploaded) == 0 {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to upload files",
			Message: fmt.Sprintf("none of the %d files could be uploaded", len(files)),
		})
		return
	}

	h.realtimeClient.PublishUserEvent(userID, "upload_completed",
		supabase.UploadCompletedPayload(userID, len(uploaded)))

	c.JSON(http.StatusOK, models.UploadResponse{
		Files:  uploaded,
		Failed: failed,
		Status: "uploaded",
	})
}

// UploadWatermark stores a single watermark file in the watermark bucket and
// attaches it to the draft.
func (h *UploadHandler) UploadWatermark(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("watermark")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no watermark file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open watermark file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read watermark file"})
		return
	}

	sess := h.registry.Get(userID)
	mimeType := detectMimeType(file.Filename)
	storagePath, storageURL, err := h.watermarkClient.UploadOrderFile(userID, sess.ID, file.Filename, mimeType, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to store watermark",
			Message: err.Error(),
		})
		return
	}

	sess.Draft.SetWatermark(wizard.FileRef{
		Filename:    file.Filename,
		Size:        file.Size,
		MimeType:    mimeType,
		StoragePath: storagePath,
		StorageURL:  storageURL,
	})

	c.JSON(http.StatusOK, gin.H{"status": "uploaded", "filename": file.Filename})
}
