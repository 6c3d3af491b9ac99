package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
	"github.com/kirillkom/findoc-analyzer/internal/core/usecase"
	"github.com/kirillkom/findoc-analyzer/internal/observability/metrics"
)

const (
	serviceName    = "financial-document-analyzer"
	serviceVersion = "1.0.0"
)

type Router struct {
	analyzer       ports.DocumentAnalyzer
	verifier       ports.DocumentVerifier
	metrics        *metrics.Metrics
	uploadMaxBytes int64
}

func NewRouter(
	analyzer ports.DocumentAnalyzer,
	verifier ports.DocumentVerifier,
	m *metrics.Metrics,
	uploadMaxBytes int64,
) *Router {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = 25 << 20
	}
	return &Router{
		analyzer:       analyzer,
		verifier:       verifier,
		metrics:        m,
		uploadMaxBytes: uploadMaxBytes,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/health", rt.health)
	mux.HandleFunc("/analyze", rt.analyze)
	mux.HandleFunc("/verify-only", rt.verifyOnly)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Financial Document Analyzer API is running"})
}

func (rt *Router) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	filename, content, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		query = usecase.DefaultQuery
	}

	report, err := rt.analyzer.Analyze(r.Context(), filename, bytes.NewReader(content), query)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"query":    query,
		"filename": filename,
		"analysis": report,
		"message":  "Financial document analysis completed successfully",
	})
}

func (rt *Router) verifyOnly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	filename, content, ok := rt.readUpload(w, r)
	if !ok {
		return
	}

	verification, err := rt.verifier.Verify(r.Context(), filename, bytes.NewReader(content))
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "success",
		"filename":            filename,
		"verification_result": verification,
	})
}

// readUpload validates the multipart upload without touching disk:
// extension and size checks reject bad requests before any file is
// written. On failure it writes the response and returns ok=false.
func (rt *Router) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.uploadMaxBytes)

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "uploaded file is too large"})
			return "", nil, false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return "", nil, false
	}
	defer file.Close()

	filename := fileHeader.Filename
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Only PDF files are supported"})
		return "", nil, false
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "could not read uploaded file"})
		return "", nil, false
	}
	if len(content) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Empty file uploaded"})
		return "", nil, false
	}
	return filename, content, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
