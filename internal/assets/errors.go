package assets

import (
	"errors"
	"net/http"

	"github.com/shellac-studio/shellac/internal/classifier"
)

// Domain errors for artifact operations.
var (
	ErrNotFound        = errors.New("asset not found")
	ErrDuplicate       = errors.New("asset already exists")
	ErrNoFile          = errors.New("no file provided")
	ErrEmptyFile       = errors.New("file is empty")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrMalformedUpload = errors.New("malformed multipart upload")
	ErrInvalidID       = errors.New("invalid asset id")
	ErrInvalidState    = errors.New("asset status does not allow this transition")
)

// MapHTTPStatus maps asset domain errors to HTTP status codes,
// delegating classifier failures to the classifier taxonomy.
func MapHTTPStatus(err error) int {
	if errors.Is(err, classifier.ErrFailed) || errors.Is(err, classifier.ErrTimedOut) {
		return classifier.MapHTTPStatus(err)
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrInvalidState) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrMalformedUpload) ||
		errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
