package attachmenterrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment must be an image (png, jpg, jpeg, gif or webp)",
		http.StatusBadRequest,
	)

	ErrEmptyFile = apperror.New(
		apperror.CodeInvalidInput,
		"Attachment file is empty",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodePayloadTooLarge,
		"Attachment exceeds the maximum allowed size",
		http.StatusRequestEntityTooLarge,
	)

	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Attachment storage is unavailable",
		http.StatusServiceUnavailable,
	)
)
