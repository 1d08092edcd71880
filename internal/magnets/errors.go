package magnets

import (
	"errors"
	"net/http"
)

// Domain errors for session event operations.
var (
	ErrNotFound        = errors.New("session event not found")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrInvalidState    = errors.New("asset is not in an anchorable state")
	ErrAlreadyAnchored = errors.New("asset is already anchored to a session event")
	ErrMissingAsset    = errors.New("asset id is required")
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingDate     = errors.New("date is required")
	ErrInvalidDate     = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidID       = errors.New("invalid session event id")
)

// MapHTTPStatus maps session event domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAssetNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrAlreadyAnchored) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingAsset) ||
		errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
