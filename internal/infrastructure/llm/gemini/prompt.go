package gemini

import (
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
)

const maxExcerpt = 6000

const defaultTaskPreamble = "Review the financial data and provide investment recommendations " +
	"based on company performance and market conditions. Return actionable insights with " +
	"reasoning grounded in the financial metrics, including a clear buy/sell/hold stance."

func buildRecommendationPrompt(preamble string, req ports.RecommendationRequest) string {
	if preamble == "" {
		preamble = defaultTaskPreamble
	}

	excerpt := req.DocumentExcerpt
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt]
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\nUser query:\n")
	b.WriteString(req.Query)

	if len(req.Insights) > 0 {
		b.WriteString("\n\nDerived insights:\n")
		for _, insight := range req.Insights {
			b.WriteString("- ")
			b.WriteString(insight)
			b.WriteString("\n")
		}
	}

	if len(req.SearchSnippets) > 0 {
		b.WriteString("\nSupplementary web context:\n")
		for _, snippet := range req.SearchSnippets {
			b.WriteString("- ")
			b.WriteString(snippet)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nDocument excerpt:\n")
	b.WriteString(excerpt)
	return b.String()
}
