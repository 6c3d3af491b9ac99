package bootstrap

import (
	"fmt"

	"github.com/kirillkom/findoc-analyzer/internal/config"
	"github.com/kirillkom/findoc-analyzer/internal/core/agent"
	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
	"github.com/kirillkom/findoc-analyzer/internal/core/usecase"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/resilience"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/search/serper"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/findoc-analyzer/internal/observability/metrics"
)

// The recommendation narrative is delegated to this agent's
// definition: its role/goal/backstory become the system prompt and
// its max_rpm caps LLM calls.
const recommendationAgent = "investment_advisor"

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	AnalyzeUC *usecase.AnalyzeUseCase
}

func New(cfg config.Config) (*App, error) {
	catalog, err := agent.LoadCatalog(cfg.AgentConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load agent catalog: %w", err)
	}
	advisor, err := catalog.Get(recommendationAgent)
	if err != nil {
		return nil, fmt.Errorf("resolve recommendation agent: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	m := metrics.New("financial-document-analyzer")
	executor := resilience.NewExecutor(resilience.DefaultPolicy())

	recommender := gemini.New(gemini.Config{
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.GeminiModel,
		SystemPrompt: advisor.SystemPrompt(),
		MaxRPM:       advisor.MaxRPM,
	}, executor, m)

	var search ports.SearchProvider
	if cfg.SearchEnabled && cfg.SerperAPIKey != "" {
		search = serper.New(cfg.SerperURL, cfg.SerperAPIKey, executor)
	}

	extractor := pdftext.NewExtractor(storage)
	analyzeUC := usecase.NewAnalyzeUseCase(storage, extractor, recommender, search, m, cfg.SearchMaxResults)

	return &App{
		Config:    cfg,
		Metrics:   m,
		AnalyzeUC: analyzeUC,
	}, nil
}
