package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"

	"google.golang.org/genai"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/resilience"
)

func classifyGenAIError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{Retryable: false, RecordFailure: false}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if isRetryableStatus(apiErr.Code) {
			return resilience.Classification{Retryable: true, RecordFailure: true}
		}
		return resilience.Classification{Retryable: false, RecordFailure: false}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Classification{Retryable: true, RecordFailure: true}
	}

	return resilience.Classification{Retryable: false, RecordFailure: true}
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// wrapGenAIError tags transient failures as temporary so the HTTP
// layer can answer 503 instead of 500.
func wrapGenAIError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if classifyGenAIError(err).Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return domain.WrapError(domain.ErrExternal, operation, err)
}
