package ports

import (
	"context"
	"io"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

// DocumentAnalyzer runs the full four-stage pipeline over one upload.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, filename string, content io.Reader, query string) (*domain.AnalysisReport, error)
}

// DocumentVerifier runs only the extraction + verification stage.
type DocumentVerifier interface {
	Verify(ctx context.Context, filename string, content io.Reader) (*domain.Verification, error)
}
