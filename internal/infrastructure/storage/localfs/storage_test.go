package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

func TestSaveOpenRemoveRoundTrip(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	ctx := context.Background()

	if err := storage.Save(ctx, "doc.pdf", strings.NewReader("%PDF content")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !storage.Exists("doc.pdf") {
		t.Fatal("saved key must exist")
	}

	rc, err := storage.Open(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	raw, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "%PDF content" {
		t.Fatalf("content = %q", raw)
	}

	if err := storage.Remove(ctx, "doc.pdf"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if storage.Exists("doc.pdf") {
		t.Fatal("removed key must not exist")
	}
}

func TestOpenMissingKeyIsNotFound(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}

	_, err = storage.Open(context.Background(), "missing.pdf")
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveMissingKeyIsNoop(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}

	if err := storage.Remove(context.Background(), "missing.pdf"); err != nil {
		t.Fatalf("remove of absent key must succeed: %v", err)
	}
}

func TestSaveOverwritesExistingKey(t *testing.T) {
	storage, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	ctx := context.Background()

	if err := storage.Save(ctx, "doc.pdf", strings.NewReader("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := storage.Save(ctx, "doc.pdf", strings.NewReader("second")); err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := storage.Open(ctx, "doc.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	raw, _ := io.ReadAll(rc)
	if string(raw) != "second" {
		t.Fatalf("content = %q", raw)
	}
}

func TestKeysCannotEscapeBaseDir(t *testing.T) {
	dir := t.TempDir()
	storage, err := New(dir)
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}

	if err := storage.Save(context.Background(), "../escape.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "escape.pdf")); err != nil {
		t.Fatalf("file must land inside the base dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.pdf")); err == nil {
		t.Fatal("file must not escape the base dir")
	}
}

func TestNewCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := New(dir); err != nil {
		t.Fatalf("init storage: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s, err %v", dir, err)
	}
}
