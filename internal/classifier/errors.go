package classifier

import (
	"errors"
	"net/http"
)

// Classification failures. The model call is the only long-latency external
// dependency in the ingest path, so timeouts are surfaced distinctly from
// other failures.
var (
	ErrFailed   = errors.New("classification failed")
	ErrTimedOut = errors.New("classification timed out")
)

// MapHTTPStatus maps classifier errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrTimedOut) {
		return http.StatusGatewayTimeout
	}
	if errors.Is(err, ErrFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
