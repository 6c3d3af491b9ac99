// Package pdftext extracts plain text from stored PDF uploads.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
)

var repeatedNewlines = regexp.MustCompile(`\n{2,}`)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

// Extract concatenates per-page text in page order, joined by
// newline, with runs of blank lines collapsed. It fails with
// ErrNotFound when the key is gone, ErrEmptyContent when the document
// yields no text, and ErrExtraction for parser failures. One attempt,
// no retries; the caller decides what to do with a failure.
func (e *Extractor) Extract(ctx context.Context, storageKey string) (string, error) {
	reader, err := e.storage.Open(ctx, storageKey)
	if err != nil {
		if domain.IsKind(err, domain.ErrNotFound) {
			return "", err
		}
		return "", domain.WrapError(domain.ErrExtraction, "open document", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "read document", err)
	}

	text, err := pagesText(raw)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse pdf", err)
	}

	text = normalize(text)
	if text == "" {
		return "", domain.WrapError(domain.ErrEmptyContent, "extract text", fmt.Errorf("document %s has no extractable text", storageKey))
	}
	return text, nil
}

// pagesText shields callers from panics inside the pdf library, which
// are how it reports some malformed files.
func pagesText(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	parsed, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", err
	}

	var pages []string
	for num := 1; num <= parsed.NumPage(); num++ {
		page := parsed.Page(num)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", num, err)
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

func normalize(text string) string {
	return strings.TrimSpace(repeatedNewlines.ReplaceAllString(text, "\n"))
}
