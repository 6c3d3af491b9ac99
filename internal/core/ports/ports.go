package ports

import (
	"context"
	"io"
)

// TextExtractor pulls plain text out of a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, storageKey string) (string, error)
}

// ObjectStorage holds uploaded documents for the duration of one
// request. Remove must be called on every exit path.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// Recommender produces the free-text recommendation narrative.
// Backed by an LLM; treated as opaque.
type Recommender interface {
	Recommend(ctx context.Context, req RecommendationRequest) (string, error)
}

// RecommendationRequest carries everything the narrative needs: the
// user query, a document excerpt, the insight statements already
// derived, and optional web search snippets.
type RecommendationRequest struct {
	Query           string
	DocumentExcerpt string
	Insights        []string
	SearchSnippets  []string
}

// SearchProvider returns ranked result snippets for a query. Used as
// supplementary evidence only; callers must tolerate failure.
type SearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

type SearchResult struct {
	Title   string
	Link    string
	Snippet string
}
