package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/findoc-analyzer/internal/core/analysis"
	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
)

// DefaultQuery is used when the caller submits a blank query.
const DefaultQuery = "Analyze this financial document for comprehensive insights"

const (
	StageExtract   = "extract"
	StageVerify    = "verify"
	StageAnalyze   = "analyze"
	StageRecommend = "recommend"
	StageRisk      = "risk"
)

// Observer receives stage-level measurements. Implemented by the
// prometheus metrics registry; nil-safe via NopObserver.
type Observer interface {
	ObserveStage(stage string, duration time.Duration)
	RecordStageFailure(stage string)
	RecordAnalysis(status string)
	RecordSearch(status string)
}

type NopObserver struct{}

func (NopObserver) ObserveStage(string, time.Duration) {}
func (NopObserver) RecordStageFailure(string)          {}
func (NopObserver) RecordAnalysis(string)              {}
func (NopObserver) RecordSearch(string)                {}

// AnalyzeUseCase runs the four-stage pipeline: verify, analyze,
// recommend, assess risk. Stages are strictly sequential; stage one
// failure aborts the run, later stage failures degrade to error notes
// on the report so earlier results survive.
type AnalyzeUseCase struct {
	storage     ports.ObjectStorage
	extractor   ports.TextExtractor
	recommender ports.Recommender
	search      ports.SearchProvider
	observer    Observer
	searchMax   int
}

func NewAnalyzeUseCase(
	storage ports.ObjectStorage,
	extractor ports.TextExtractor,
	recommender ports.Recommender,
	search ports.SearchProvider,
	observer Observer,
	searchMax int,
) *AnalyzeUseCase {
	if observer == nil {
		observer = NopObserver{}
	}
	if searchMax <= 0 {
		searchMax = 3
	}
	return &AnalyzeUseCase{
		storage:     storage,
		extractor:   extractor,
		recommender: recommender,
		search:      search,
		observer:    observer,
		searchMax:   searchMax,
	}
}

// Analyze stores the upload under a fresh key, runs the pipeline and
// removes the upload on every exit path.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, filename string, content io.Reader, query string) (*domain.AnalysisReport, error) {
	if query == "" {
		query = DefaultQuery
	}

	key := storageKey("financial_document")
	if err := uc.storage.Save(ctx, key, content); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer uc.removeUpload(key, filename)

	text, err := uc.extract(ctx, key)
	if err != nil {
		uc.observer.RecordAnalysis("failed")
		return nil, err
	}

	report := &domain.AnalysisReport{}

	uc.timed(StageVerify, func() {
		report.Verification = analysis.VerifyDocument(text)
	})

	uc.timed(StageAnalyze, func() {
		report.Metrics = analysis.ExtractMetrics(text)
		report.Insights = analysis.GenerateInsights(report.Metrics)
	})

	uc.recommend(ctx, query, text, report)

	uc.timed(StageRisk, func() {
		report.Risks = analysis.EvaluateRisks(text, report.Metrics)
	})

	if len(report.Errors) > 0 {
		uc.observer.RecordAnalysis("partial")
	} else {
		uc.observer.RecordAnalysis("success")
	}
	return report, nil
}

// Verify runs only extraction and the verification heuristic.
func (uc *AnalyzeUseCase) Verify(ctx context.Context, filename string, content io.Reader) (*domain.Verification, error) {
	key := storageKey("verify")
	if err := uc.storage.Save(ctx, key, content); err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer uc.removeUpload(key, filename)

	text, err := uc.extract(ctx, key)
	if err != nil {
		return nil, err
	}

	var verification domain.Verification
	uc.timed(StageVerify, func() {
		verification = analysis.VerifyDocument(text)
	})
	return &verification, nil
}

func (uc *AnalyzeUseCase) extract(ctx context.Context, key string) (string, error) {
	start := time.Now()
	text, err := uc.extractor.Extract(ctx, key)
	uc.observer.ObserveStage(StageExtract, time.Since(start))
	if err != nil {
		uc.observer.RecordStageFailure(StageExtract)
		return "", err
	}
	return text, nil
}

// recommend delegates the narrative to the LLM, optionally grounded
// with web search snippets. Neither collaborator failure is fatal:
// search degrades to an ungrounded prompt, LLM failure becomes an
// error note on the report.
func (uc *AnalyzeUseCase) recommend(ctx context.Context, query, text string, report *domain.AnalysisReport) {
	start := time.Now()
	defer func() {
		uc.observer.ObserveStage(StageRecommend, time.Since(start))
	}()

	var snippets []string
	if uc.search != nil {
		results, err := uc.search.Search(ctx, query, uc.searchMax)
		if err != nil {
			uc.observer.RecordSearch("error")
			slog.Warn("supplementary search failed", "error", err)
			report.Errors = append(report.Errors, fmt.Sprintf("search: %v", err))
		} else {
			uc.observer.RecordSearch("success")
		}
		for _, result := range results {
			snippets = append(snippets, fmt.Sprintf("%s: %s", result.Title, result.Snippet))
		}
	}

	recommendation, err := uc.recommender.Recommend(ctx, ports.RecommendationRequest{
		Query:           query,
		DocumentExcerpt: text,
		Insights:        report.Insights,
		SearchSnippets:  snippets,
	})
	if err != nil {
		uc.observer.RecordStageFailure(StageRecommend)
		slog.Error("recommendation stage failed", "error", err)
		report.Errors = append(report.Errors, fmt.Sprintf("recommend: %v", err))
		return
	}
	report.Recommendation = recommendation
}

func (uc *AnalyzeUseCase) timed(stage string, fn func()) {
	start := time.Now()
	fn()
	uc.observer.ObserveStage(stage, time.Since(start))
}

// removeUpload runs on every exit path. Removal failure is logged,
// never propagated, so it cannot mask the pipeline result.
func (uc *AnalyzeUseCase) removeUpload(key, filename string) {
	if err := uc.storage.Remove(context.Background(), key); err != nil {
		slog.Warn("could not remove temporary upload", "key", key, "filename", filename, "error", err)
	}
}

func storageKey(prefix string) string {
	return fmt.Sprintf("%s_%s.pdf", prefix, uuid.NewString())
}
