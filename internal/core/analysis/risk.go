package analysis

import (
	"fmt"
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

var (
	marketKeywords      = []string{"loss", "decline", "drop", "downturn", "volatility", "market risk"}
	operationalKeywords = []string{"recall", "lawsuit", "litigation", "regulatory", "compliance", "investigation"}
	liquidityKeywords   = []string{"cash flow", "liquidity", "working capital", "current assets", "current liabilities"}
)

// EvaluateRisks scores the four risk categories over the document
// text. It always returns exactly one record per category, in the
// order market, credit, operational, liquidity. The debt figure comes
// from the shared metric extraction rather than a second regex pass,
// so the credit tier can never drift from the reported metrics.
func EvaluateRisks(text string, metrics domain.FinancialMetrics) []domain.RiskRecord {
	lower := strings.ToLower(text)
	return []domain.RiskRecord{
		marketRisk(lower),
		creditRisk(metrics.Debt),
		operationalRisk(lower),
		liquidityRisk(lower),
	}
}

// marketRisk counts keyword presence, not token frequency: a keyword
// repeated ten times still counts once.
func marketRisk(lower string) domain.RiskRecord {
	count := 0
	for _, keyword := range marketKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}

	record := domain.RiskRecord{
		Category: domain.RiskMarket,
		Evidence: fmt.Sprintf("%d of %d market stress keywords present in the document.", count, len(marketKeywords)),
	}
	switch {
	case count >= 3:
		record.Likelihood = domain.RiskHigh
		record.Impact = domain.RiskHigh
		record.Mitigation = "Diversify exposure and monitor market trends closely."
	case count >= 1:
		record.Likelihood = domain.RiskMedium
		record.Impact = domain.RiskMedium
		record.Mitigation = "Monitor revenue and profit trends regularly."
	default:
		record.Likelihood = domain.RiskLow
		record.Impact = domain.RiskLow
		record.Mitigation = "Maintain the current monitoring cadence."
	}
	return record
}

func creditRisk(debt *float64) domain.RiskRecord {
	record := domain.RiskRecord{
		Category:   domain.RiskCredit,
		Mitigation: "Maintain conservative debt exposure and monitor leverage ratios.",
	}

	if debt == nil {
		record.Likelihood = domain.RiskLow
		record.Impact = domain.RiskLow
		record.Evidence = "Total debt not reported."
		return record
	}

	record.Evidence = fmt.Sprintf("Total debt reported: $%s.", formatAmount(*debt))
	switch {
	case *debt > 5_000_000_000:
		record.Likelihood = domain.RiskHigh
		record.Impact = domain.RiskHigh
	case *debt > 1_000_000_000:
		record.Likelihood = domain.RiskMedium
		record.Impact = domain.RiskHigh
	case *debt > 0:
		record.Likelihood = domain.RiskLow
		record.Impact = domain.RiskMedium
	default:
		record.Likelihood = domain.RiskLow
		record.Impact = domain.RiskLow
	}
	return record
}

func operationalRisk(lower string) domain.RiskRecord {
	var matched []string
	for _, keyword := range operationalKeywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}

	if len(matched) > 0 {
		return domain.RiskRecord{
			Category:   domain.RiskOperational,
			Likelihood: domain.RiskHigh,
			Impact:     domain.RiskHigh,
			Evidence:   fmt.Sprintf("Mentions of %s in the document.", strings.Join(matched, ", ")),
			Mitigation: "Review operational processes and legal compliance.",
		}
	}
	return domain.RiskRecord{
		Category:   domain.RiskOperational,
		Likelihood: domain.RiskLow,
		Impact:     domain.RiskMedium,
		Evidence:   "No operational issues detected.",
		Mitigation: "Maintain regular audits and monitoring.",
	}
}

func liquidityRisk(lower string) domain.RiskRecord {
	if strings.Contains(lower, "cash flow") &&
		(strings.Contains(lower, "negative") || strings.Contains(lower, "deficit")) {
		return domain.RiskRecord{
			Category:   domain.RiskLiquidity,
			Likelihood: domain.RiskHigh,
			Impact:     domain.RiskHigh,
			Evidence:   "Negative or deficit cash flow language present.",
			Mitigation: "Secure committed credit lines and tighten working capital management.",
		}
	}

	count := 0
	for _, keyword := range liquidityKeywords {
		if strings.Contains(lower, keyword) {
			count++
		}
	}
	if count > 0 {
		return domain.RiskRecord{
			Category:   domain.RiskLiquidity,
			Likelihood: domain.RiskMedium,
			Impact:     domain.RiskMedium,
			Evidence:   fmt.Sprintf("%d liquidity-related keywords present in the document.", count),
			Mitigation: "Track liquidity ratios and the cash conversion cycle.",
		}
	}
	return domain.RiskRecord{
		Category:   domain.RiskLiquidity,
		Likelihood: domain.RiskLow,
		Impact:     domain.RiskMedium,
		Evidence:   "Limited liquidity information available.",
		Mitigation: "Request cash flow statements for a complete view.",
	}
}
