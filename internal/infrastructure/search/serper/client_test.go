package serper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/resilience"
)

func testExecutor() *resilience.Executor {
	return resilience.NewExecutor(resilience.Policy{
		MaxAttempts:    2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		BreakerEnabled: false,
	})
}

func TestSearchParsesOrganicResults(t *testing.T) {
	var gotKey, gotPath string
	var gotReq searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "Q2 earnings", "link": "https://example.com/q2", "snippet": "revenue grew"},
				{"title": "Analyst note", "link": "https://example.com/note", "snippet": "debt concerns"},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "test-key", testExecutor())
	results, err := client.Search(context.Background(), "acme earnings", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotKey != "test-key" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if gotPath != "/search" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotReq.Query != "acme earnings" || gotReq.Num != 3 {
		t.Fatalf("unexpected request payload: %+v", gotReq)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Q2 earnings" || results[1].Snippet != "debt concerns" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "a"}, {"title": "b"}, {"title": "c"}, {"title": "d"},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL, "k", testExecutor())
	results, err := client.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	client := New("http://unused", "k", testExecutor())
	_, err := client.Search(context.Background(), "  ", 3)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{{"title": "ok"}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "k", testExecutor())
	results, err := client.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
	if len(results) != 1 || results[0].Title != "ok" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestSearchClientErrorIsExternal(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, "k", testExecutor())
	_, err := client.Search(context.Background(), "q", 1)
	if !domain.IsKind(err, domain.ErrExternal) {
		t.Fatalf("expected external error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("401 must not be retried, got %d attempts", calls.Load())
	}
}

func TestSearchExhaustedRetriesAreTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := New(server.URL, "k", testExecutor())
	_, err := client.Search(context.Background(), "q", 1)
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestStatusErrorIncludesBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Status:     "429 Too Many Requests",
		Body:       http.NoBody,
	}
	err := newStatusError(resp)
	var statusErr *statusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected statusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status code = %d", statusErr.StatusCode)
	}
}
