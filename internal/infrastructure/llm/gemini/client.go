// Package gemini delegates the recommendation narrative to Google's
// Gemini models through the official GenAI SDK.
package gemini

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
	"github.com/kirillkom/findoc-analyzer/internal/infrastructure/resilience"
)

// UsageRecorder receives token counts per call. Implemented by the
// metrics registry.
type UsageRecorder interface {
	RecordTokenUsage(model string, promptTokens, completionTokens int)
}

type Config struct {
	APIKey       string
	Model        string
	SystemPrompt string
	TaskPreamble string
	// MaxRPM caps calls per minute, taken from the delegated agent's
	// definition.
	MaxRPM int
}

type Client struct {
	cfg     Config
	limiter *rate.Limiter
	exec    *resilience.Executor
	usage   UsageRecorder
}

func New(cfg Config, exec *resilience.Executor, usage UsageRecorder) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	rpm := cfg.MaxRPM
	if rpm <= 0 {
		rpm = 5
	}
	return &Client{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		exec:    exec,
		usage:   usage,
	}
}

// Recommend produces the recommendation narrative. Transient upstream
// failures surface as ErrTemporary, everything else as ErrExternal.
func (c *Client) Recommend(ctx context.Context, req ports.RecommendationRequest) (string, error) {
	if c.cfg.APIKey == "" {
		return "", domain.WrapError(domain.ErrExternal, "gemini recommend", fmt.Errorf("no API key configured"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	prompt := buildRecommendationPrompt(c.cfg.TaskPreamble, req)

	var text string
	err := c.exec.Execute(ctx, "gemini_generate", classifyGenAIError, func(ctx context.Context) error {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("create genai client: %w", err)
		}

		config := &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.7)),
		}
		if c.cfg.SystemPrompt != "" {
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: c.cfg.SystemPrompt}},
			}
		}

		result, err := client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), config)
		if err != nil {
			return fmt.Errorf("gemini generation: %w", err)
		}

		text = result.Text()
		if c.usage != nil && result.UsageMetadata != nil {
			c.usage.RecordTokenUsage(
				c.cfg.Model,
				int(result.UsageMetadata.PromptTokenCount),
				int(result.UsageMetadata.CandidatesTokenCount),
			)
		}
		return nil
	})
	if err != nil {
		return "", wrapGenAIError("gemini recommend", err)
	}
	if text == "" {
		return "", domain.WrapError(domain.ErrExternal, "gemini recommend", fmt.Errorf("empty completion"))
	}
	return text, nil
}
