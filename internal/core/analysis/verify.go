package analysis

import (
	"fmt"
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

var financialIndicators = []string{
	"revenue",
	"profit",
	"net income",
	"balance sheet",
	"income statement",
	"cash flow",
	"earnings",
	"fiscal",
	"quarter",
	"total assets",
	"liabilities",
	"ebitda",
}

const minIndicators = 3

// VerifyDocument decides whether the text looks like a financial
// document. The verdict is advisory only; downstream stages run
// regardless.
func VerifyDocument(text string) domain.Verification {
	lower := strings.ToLower(text)

	var matched []string
	for _, indicator := range financialIndicators {
		if strings.Contains(lower, indicator) {
			matched = append(matched, indicator)
		}
	}

	if len(matched) >= minIndicators {
		return domain.Verification{
			Verdict:    domain.VerdictValid,
			Rationale:  fmt.Sprintf("Document contains %d financial indicators: %s.", len(matched), strings.Join(matched, ", ")),
			Indicators: matched,
		}
	}
	return domain.Verification{
		Verdict:    domain.VerdictInvalid,
		Rationale:  fmt.Sprintf("Only %d of the expected financial indicators found; the document does not look like a financial report.", len(matched)),
		Indicators: matched,
	}
}
