package analysis

import (
	"fmt"
	"strings"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

const highDebtThreshold = 1_000_000_000

// GenerateInsights derives qualitative statements from the extracted
// metrics. Statements accumulate in fixed order: profit margin block,
// debt-to-revenue block, absolute debt block. A block whose inputs
// are absent is skipped entirely.
func GenerateInsights(metrics domain.FinancialMetrics) []string {
	var insights []string

	if metrics.Profit != nil && metrics.Revenue != nil && *metrics.Revenue != 0 {
		margin := 100 * *metrics.Profit / *metrics.Revenue
		insights = append(insights, fmt.Sprintf("Profit margin is %.2f%%.", margin))
		switch {
		case margin > 20:
			insights = append(insights, "The company shows strong profitability; fundamentals lean toward BUY.")
		case margin >= 10:
			insights = append(insights, "Profitability is moderate; HOLD territory.")
		default:
			insights = append(insights, "Profitability is low; caution is warranted.")
		}
	}

	if metrics.Debt != nil && metrics.Revenue != nil && *metrics.Revenue != 0 {
		ratio := 100 * *metrics.Debt / *metrics.Revenue
		insights = append(insights, fmt.Sprintf("Debt-to-revenue ratio is %.2f%%.", ratio))
		if ratio > 100 {
			insights = append(insights, "Total debt exceeds annual revenue; the debt burden is high.")
		}
	}

	if metrics.Debt != nil {
		insights = append(insights, fmt.Sprintf("Total debt is $%s.", formatAmount(*metrics.Debt)))
		if *metrics.Debt > highDebtThreshold {
			insights = append(insights, "The company carries high debt. Be cautious!")
		}
	}

	return insights
}

// formatAmount renders a figure with thousands separators and two
// decimals, e.g. 1234567.5 -> "1,234,567.50".
func formatAmount(value float64) string {
	negative := value < 0
	if negative {
		value = -value
	}

	plain := fmt.Sprintf("%.2f", value)
	whole, frac, _ := strings.Cut(plain, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
