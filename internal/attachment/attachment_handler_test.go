package attachment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavedesk/internal/attachment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	uploadFn func(ctx context.Context, data []byte, filename, mimeType string) (*attachment.UploadResult, error)
	deleteFn func(ctx context.Context, fileID string) error
	listFn   func(ctx context.Context, cursor string, limit int) ([]attachment.StoredObject, string, error)
}

func (f *fakeStore) Upload(ctx context.Context, data []byte, filename, mimeType string) (*attachment.UploadResult, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, data, filename, mimeType)
	}
	return &attachment.UploadResult{FileID: "folder/abc-" + filename, FileName: filename}, nil
}

func (f *fakeStore) Delete(ctx context.Context, fileID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, fileID)
	}
	return nil
}

func (f *fakeStore) List(ctx context.Context, cursor string, limit int) ([]attachment.StoredObject, string, error) {
	if f.listFn != nil {
		return f.listFn(ctx, cursor, limit)
	}
	return nil, "", nil
}

func newUploadRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="file"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/attachments", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func setupRouter(store attachment.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := attachment.NewHandler(store)
	r.POST("/attachments", handler.Upload)
	r.DELETE("/attachments/*file_id", handler.Delete)
	r.GET("/attachments/usage", handler.Usage)
	return r
}

// Minimal valid PNG header so content sniffing classifies it as image/png.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestAttachmentHandler_Upload_PNG(t *testing.T) {
	var gotMIME string
	store := &fakeStore{
		uploadFn: func(ctx context.Context, data []byte, filename, mimeType string) (*attachment.UploadResult, error) {
			gotMIME = mimeType
			return &attachment.UploadResult{FileID: "folder/x-" + filename, FileName: filename, ViewURL: "https://example/x"}, nil
		},
	}
	router := setupRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newUploadRequest(t, "note.png", "image/png", pngBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "image/png", gotMIME)
}

func TestAttachmentHandler_Upload_RejectsNonImage(t *testing.T) {
	uploaded := false
	store := &fakeStore{
		uploadFn: func(ctx context.Context, data []byte, filename, mimeType string) (*attachment.UploadResult, error) {
			uploaded = true
			return nil, nil
		},
	}
	router := setupRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newUploadRequest(t, "report.pdf", "application/pdf", []byte("%PDF-1.4 fake document body")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, uploaded, "rejected upload must never reach the store")
}

func TestAttachmentHandler_Upload_RejectsEmptyFile(t *testing.T) {
	router := setupRouter(&fakeStore{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newUploadRequest(t, "empty.png", "image/png", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttachmentHandler_Delete_AbsentObjectIsSuccess(t *testing.T) {
	store := &fakeStore{
		deleteFn: func(ctx context.Context, fileID string) error {
			// Store already reports absent objects as success.
			return nil
		},
	}
	router := setupRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/attachments/folder/does-not-exist.png", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAttachmentHandler_Usage_SumsAcrossPages(t *testing.T) {
	calls := 0
	store := &fakeStore{
		listFn: func(ctx context.Context, cursor string, limit int) ([]attachment.StoredObject, string, error) {
			calls++
			if cursor == "" {
				return []attachment.StoredObject{
					{ID: "a", Name: "a.png", SizeBytes: 100},
					{ID: "b", Name: "b.png", SizeBytes: 200},
				}, "page2", nil
			}
			return []attachment.StoredObject{
				{ID: "c", Name: "c.png", SizeBytes: 300},
			}, "", nil
		},
	}
	router := setupRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attachments/usage", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, calls)

	var envelope struct {
		Data struct {
			FileCount  int   `json:"file_count"`
			TotalBytes int64 `json:"total_bytes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 3, envelope.Data.FileCount)
	assert.Equal(t, int64(600), envelope.Data.TotalBytes)
}
