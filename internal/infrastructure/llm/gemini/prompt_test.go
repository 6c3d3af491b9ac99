package gemini

import (
	"strings"
	"testing"

	"github.com/kirillkom/findoc-analyzer/internal/core/ports"
)

func TestPromptIncludesAllSections(t *testing.T) {
	prompt := buildRecommendationPrompt("Advise the investor.", ports.RecommendationRequest{
		Query:           "should I hold?",
		DocumentExcerpt: "Revenue: $1,000",
		Insights:        []string{"Profit margin is 30.00%.", "Total debt is $200.00."},
		SearchSnippets:  []string{"Q2 earnings: revenue grew"},
	})

	for _, want := range []string{
		"Advise the investor.",
		"User query:\nshould I hold?",
		"Derived insights:",
		"- Profit margin is 30.00%.",
		"Supplementary web context:",
		"- Q2 earnings: revenue grew",
		"Document excerpt:\nRevenue: $1,000",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestPromptOmitsEmptySections(t *testing.T) {
	prompt := buildRecommendationPrompt("", ports.RecommendationRequest{
		Query:           "q",
		DocumentExcerpt: "text",
	})

	if strings.Contains(prompt, "Derived insights:") {
		t.Error("insights section must be absent")
	}
	if strings.Contains(prompt, "Supplementary web context:") {
		t.Error("web context section must be absent")
	}
	if !strings.Contains(prompt, defaultTaskPreamble) {
		t.Error("empty preamble must fall back to the default")
	}
}

func TestPromptCapsExcerpt(t *testing.T) {
	long := strings.Repeat("a", maxExcerpt+500)
	prompt := buildRecommendationPrompt("p", ports.RecommendationRequest{
		Query:           "q",
		DocumentExcerpt: long,
	})

	idx := strings.Index(prompt, "Document excerpt:\n")
	if idx < 0 {
		t.Fatal("excerpt section missing")
	}
	excerpt := prompt[idx+len("Document excerpt:\n"):]
	if len(excerpt) != maxExcerpt {
		t.Fatalf("excerpt length = %d, want %d", len(excerpt), maxExcerpt)
	}
}
