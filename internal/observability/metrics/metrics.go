package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the service-wide prometheus registry: HTTP server
// metrics plus pipeline-stage and collaborator metrics.
type Metrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	analysesTotal      *prometheus.CounterVec
	stageDuration      *prometheus.HistogramVec
	stageFailuresTotal *prometheus.CounterVec
	llmTokensTotal     *prometheus.CounterVec
	searchTotal        *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fda",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fda",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "fda",
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)
	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fda",
			Subsystem: "pipeline",
			Name:      "analyses_total",
			Help:      "Completed document analyses by outcome.",
		},
		[]string{"service", "status"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fda",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	stageFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fda",
			Subsystem: "pipeline",
			Name:      "stage_failures_total",
			Help:      "Pipeline stage failures.",
		},
		[]string{"service", "stage"},
	)
	llmTokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fda",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Token usage reported by the LLM, by direction.",
		},
		[]string{"service", "direction", "model"},
	)
	searchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fda",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Supplementary web search calls by outcome.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		analysesTotal,
		stageDuration,
		stageFailuresTotal,
		llmTokensTotal,
		searchTotal,
	)

	return &Metrics{
		registry:           registry,
		service:            service,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		analysesTotal:      analysesTotal,
		stageDuration:      stageDuration,
		stageFailuresTotal: stageFailuresTotal,
		llmTokensTotal:     llmTokensTotal,
		searchTotal:        searchTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(m.service, r.Method, r.URL.Path, strconv.Itoa(recorder.statusCode)).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(m.service, stage).Observe(duration.Seconds())
}

func (m *Metrics) RecordStageFailure(stage string) {
	m.stageFailuresTotal.WithLabelValues(m.service, stage).Inc()
}

func (m *Metrics) RecordAnalysis(status string) {
	if status == "" {
		status = "unknown"
	}
	m.analysesTotal.WithLabelValues(m.service, status).Inc()
}

func (m *Metrics) RecordSearch(status string) {
	if status == "" {
		status = "unknown"
	}
	m.searchTotal.WithLabelValues(m.service, status).Inc()
}

func (m *Metrics) RecordTokenUsage(model string, promptTokens, completionTokens int) {
	if model == "" {
		model = "unknown"
	}
	if promptTokens > 0 {
		m.llmTokensTotal.WithLabelValues(m.service, "in", model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		m.llmTokensTotal.WithLabelValues(m.service, "out", model).Add(float64(completionTokens))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
