package attachment

import (
	"io"
	"net/http"
	"strings"

	attachmenterrors "leavedesk/internal/attachment/errors"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attachment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachment.handler")
	}
	return &Handler{store: store, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attachment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing file field", err.Error())
		return
	}

	if fileHeader.Size == 0 {
		h.writeServiceError(c, attachmenterrors.ErrEmptyFile)
		return
	}
	if fileHeader.Size > MaxUploadSize {
		h.writeServiceError(c, attachmenterrors.ErrFileTooLarge)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	mimeType := sniffMIME(data, fileHeader.Header.Get("Content-Type"))
	if !IsAllowedImageMIME(mimeType) {
		h.writeServiceError(c, attachmenterrors.ErrUnsupportedFileType)
		return
	}

	result, err := h.store.Upload(c.Request.Context(), data, fileHeader.Filename, mimeType)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result, nil)
}

// Delete removes a stored object. A missing object still reports success so
// retried cleanups stay silent.
func (h *Handler) Delete(c *gin.Context) {
	fileID := strings.TrimPrefix(c.Param("file_id"), "/")
	if fileID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing file id", nil)
		return
	}

	if err := h.store.Delete(c.Request.Context(), fileID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// Usage walks every stored object and reports the aggregate footprint.
func (h *Handler) Usage(c *gin.Context) {
	var (
		totalBytes int64
		count      int
		cursor     string
	)

	for {
		objects, next, err := h.store.List(c.Request.Context(), cursor, 1000)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		for _, obj := range objects {
			totalBytes += obj.SizeBytes
			count++
		}
		if next == "" {
			break
		}
		cursor = next
	}

	response.Success(c, http.StatusOK, gin.H{
		"file_count":  count,
		"total_bytes": totalBytes,
	}, nil)
}

// sniffMIME trusts the bytes over the declared header. DetectContentType
// never errors and falls back to application/octet-stream.
func sniffMIME(data []byte, declared string) string {
	detected := http.DetectContentType(data)
	if detected == "application/octet-stream" && declared != "" {
		return declared
	}
	// Strip any ;charset suffix.
	if idx := strings.Index(detected, ";"); idx > 0 {
		detected = detected[:idx]
	}
	return detected
}
