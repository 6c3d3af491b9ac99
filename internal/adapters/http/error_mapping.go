package httpadapter

import (
	"net/http"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

// Caller-supplied input problems (bad upload, unreadable or empty
// document) map to 4xx; collaborator and internal failures to 5xx.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrEmptyContent):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrExtraction):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
