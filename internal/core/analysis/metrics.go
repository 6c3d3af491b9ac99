// Package analysis is the deterministic rules engine of the service:
// regex metric extraction, derived insight statements, keyword-based
// risk scoring and the document verification heuristic. Everything
// here is a pure function over extracted document text.
package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

// Patterns are tried in declared order; the first pattern that matches
// anywhere in the text wins for its metric and the rest are skipped.
var (
	revenuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brevenue[:\s]+\$?\s*([\d,.]+)`),
		regexp.MustCompile(`(?i)\btotal\s+revenue[:\s]+\$?\s*([\d,.]+)`),
		regexp.MustCompile(`(?i)\bnet\s+revenue[:\s]+\$?\s*([\d,.]+)`),
	}
	profitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bprofit[:\s]+\$?\s*([\d,.]+)`),
		regexp.MustCompile(`(?i)\bnet\s+income[:\s]+\$?\s*([\d,.]+)`),
		regexp.MustCompile(`(?i)\bearnings[:\s]+\$?\s*([\d,.]+)`),
	}
	debtPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bdebt[:\s]+\$?\s*([\d,.]+)`),
		regexp.MustCompile(`(?i)\btotal\s+liabilities[:\s]+\$?\s*([\d,.]+)`),
	}
)

// ExtractMetrics recognizes revenue, profit and debt figures in raw
// document text. A metric with no matching pattern stays nil, which
// is distinct from a reported zero.
func ExtractMetrics(text string) domain.FinancialMetrics {
	return domain.FinancialMetrics{
		Revenue: firstMatch(revenuePatterns, text),
		Profit:  firstMatch(profitPatterns, text),
		Debt:    firstMatch(debtPatterns, text),
	}
}

func firstMatch(patterns []*regexp.Regexp, text string) *float64 {
	for _, pattern := range patterns {
		groups := pattern.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		value, err := parseAmount(groups[1])
		if err != nil {
			continue
		}
		return &value
	}
	return nil
}

// parseAmount strips thousands separators before parsing, so
// "1,234.56" becomes 1234.56.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimRight(cleaned, ".")
	return strconv.ParseFloat(cleaned, 64)
}
