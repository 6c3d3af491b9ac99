// Package serper queries the serper.dev web search API for
// supplementary evidence snippets.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://google.serper.dev"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	exec       *resilience.Executor
}

func New(baseURL, apiKey string, exec *resilience.Executor) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		exec:       exec,
	}
}

type searchRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]ports.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search", fmt.Errorf("empty query"))
	}

	var response searchResponse
	err := c.exec.Execute(ctx, "serper_search", classifySearchError, func(ctx context.Context) error {
		return c.postJSON(ctx, "/search", searchRequest{Query: query, Num: limit}, &response)
	})
	if err != nil {
		return nil, wrapSearchError("serper search", err)
	}

	results := make([]ports.SearchResult, 0, len(response.Organic))
	for _, item := range response.Organic {
		results = append(results, ports.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("serper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newStatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode search response: %w", err)
	}
	return nil
}

type statusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *statusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("serper status: %s", e.Status)
	}
	return fmt.Sprintf("serper status: %s: %s", e.Status, strings.TrimSpace(e.Body))
}

func newStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &statusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}
