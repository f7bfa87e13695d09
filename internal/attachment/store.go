package attachment

import "context"

// MaxUploadSize is a light guard applied before any upload call.
const MaxUploadSize = int64(5 * 1024 * 1024)

var allowedImageMIMEs = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// IsAllowedImageMIME reports whether the declared content type is one of the
// image formats accepted for leave-request attachments.
func IsAllowedImageMIME(mimeType string) bool {
	_, ok := allowedImageMIMEs[mimeType]
	return ok
}

type UploadResult struct {
	FileID      string `json:"file_id"`
	FileName    string `json:"file_name"`
	ViewURL     string `json:"view_url"`
	DownloadURL string `json:"download_url"`
}

type StoredObject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

//go:generate mockgen -source=store.go -destination=mock/store_mock.go -package=mock
type Store interface {
	// Upload stores the object publicly readable and returns its id and URLs.
	Upload(ctx context.Context, data []byte, filename, mimeType string) (*UploadResult, error)
	// Delete is idempotent. Deleting an absent object is success.
	Delete(ctx context.Context, fileID string) error
	// List pages through stored objects. An empty cursor starts from the
	// beginning; the returned cursor is empty on the last page.
	List(ctx context.Context, cursor string, limit int) ([]StoredObject, string, error)
}
