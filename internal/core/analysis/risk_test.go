package analysis

import (
	"strings"
	"testing"

	"github.com/kirillkom/findoc-analyzer/internal/core/domain"
)

func riskByCategory(t *testing.T, records []domain.RiskRecord, category domain.RiskCategory) domain.RiskRecord {
	t.Helper()
	for _, record := range records {
		if record.Category == category {
			return record
		}
	}
	t.Fatalf("no record for category %s", category)
	return domain.RiskRecord{}
}

func TestEvaluateRisksAlwaysFourRecordsInOrder(t *testing.T) {
	records := EvaluateRisks("nothing relevant here", domain.FinancialMetrics{})

	if len(records) != 4 {
		t.Fatalf("expected exactly 4 records, got %d", len(records))
	}
	wantOrder := []domain.RiskCategory{
		domain.RiskMarket,
		domain.RiskCredit,
		domain.RiskOperational,
		domain.RiskLiquidity,
	}
	for i, category := range wantOrder {
		if records[i].Category != category {
			t.Fatalf("position %d: expected %s, got %s", i, category, records[i].Category)
		}
	}
}

func TestMarketRiskHighWithThreeKeywords(t *testing.T) {
	text := "A loss this quarter, a decline in sales and unusual volatility."
	record := riskByCategory(t, EvaluateRisks(text, domain.FinancialMetrics{}), domain.RiskMarket)

	if record.Likelihood != domain.RiskHigh || record.Impact != domain.RiskHigh {
		t.Fatalf("expected High/High, got %s/%s", record.Likelihood, record.Impact)
	}
	if !strings.Contains(record.Evidence, "3 of") {
		t.Fatalf("evidence must report the count, got %q", record.Evidence)
	}
}

func TestMarketRiskMediumWithOneKeyword(t *testing.T) {
	record := riskByCategory(t, EvaluateRisks("a modest decline in revenue", domain.FinancialMetrics{}), domain.RiskMarket)
	if record.Likelihood != domain.RiskMedium || record.Impact != domain.RiskMedium {
		t.Fatalf("expected Medium/Medium, got %s/%s", record.Likelihood, record.Impact)
	}
}

func TestMarketRiskLowWithNoKeywords(t *testing.T) {
	record := riskByCategory(t, EvaluateRisks("steady growth across all segments", domain.FinancialMetrics{}), domain.RiskMarket)
	if record.Likelihood != domain.RiskLow || record.Impact != domain.RiskLow {
		t.Fatalf("expected Low/Low, got %s/%s", record.Likelihood, record.Impact)
	}
}

func TestMarketRiskCountsPresenceNotFrequency(t *testing.T) {
	// One keyword repeated many times still counts once.
	text := strings.Repeat("loss ", 10)
	record := riskByCategory(t, EvaluateRisks(text, domain.FinancialMetrics{}), domain.RiskMarket)
	if record.Likelihood != domain.RiskMedium {
		t.Fatalf("expected Medium from a single keyword type, got %s", record.Likelihood)
	}
}

func TestCreditRiskTiers(t *testing.T) {
	cases := []struct {
		name           string
		debt           *float64
		wantLikelihood domain.RiskLevel
		wantImpact     domain.RiskLevel
	}{
		{"absent", nil, domain.RiskLow, domain.RiskLow},
		{"zero", ptr(0), domain.RiskLow, domain.RiskLow},
		{"small", ptr(500_000_000), domain.RiskLow, domain.RiskMedium},
		{"at one billion", ptr(1_000_000_000), domain.RiskLow, domain.RiskMedium},
		{"above one billion", ptr(1_000_000_001), domain.RiskMedium, domain.RiskHigh},
		{"at five billion", ptr(5_000_000_000), domain.RiskMedium, domain.RiskHigh},
		{"above five billion", ptr(5_000_000_001), domain.RiskHigh, domain.RiskHigh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := riskByCategory(t, EvaluateRisks("", domain.FinancialMetrics{Debt: tc.debt}), domain.RiskCredit)
			if record.Likelihood != tc.wantLikelihood || record.Impact != tc.wantImpact {
				t.Fatalf("expected %s/%s, got %s/%s", tc.wantLikelihood, tc.wantImpact, record.Likelihood, record.Impact)
			}
		})
	}
}

func TestCreditRiskEvidence(t *testing.T) {
	reported := riskByCategory(t, EvaluateRisks("", domain.FinancialMetrics{Debt: ptr(2_500_000_000)}), domain.RiskCredit)
	if !strings.Contains(reported.Evidence, "$2,500,000,000.00") {
		t.Fatalf("expected formatted debt figure, got %q", reported.Evidence)
	}

	absent := riskByCategory(t, EvaluateRisks("", domain.FinancialMetrics{}), domain.RiskCredit)
	if !strings.Contains(absent.Evidence, "not reported") {
		t.Fatalf("expected not reported evidence, got %q", absent.Evidence)
	}
}

func TestOperationalRiskListsMatchedKeywords(t *testing.T) {
	text := "An ongoing lawsuit and a product recall were disclosed."
	record := riskByCategory(t, EvaluateRisks(text, domain.FinancialMetrics{}), domain.RiskOperational)

	if record.Likelihood != domain.RiskHigh || record.Impact != domain.RiskHigh {
		t.Fatalf("expected High/High, got %s/%s", record.Likelihood, record.Impact)
	}
	if !strings.Contains(record.Evidence, "recall") || !strings.Contains(record.Evidence, "lawsuit") {
		t.Fatalf("evidence must list matched keywords, got %q", record.Evidence)
	}
}

func TestOperationalRiskLowWithoutKeywords(t *testing.T) {
	record := riskByCategory(t, EvaluateRisks("smooth operations all year", domain.FinancialMetrics{}), domain.RiskOperational)
	if record.Likelihood != domain.RiskLow || record.Impact != domain.RiskMedium {
		t.Fatalf("expected Low/Medium, got %s/%s", record.Likelihood, record.Impact)
	}
}

func TestLiquidityRiskHighOnNegativeCashFlow(t *testing.T) {
	text := "The company reported negative cash flow from operations."
	record := riskByCategory(t, EvaluateRisks(text, domain.FinancialMetrics{}), domain.RiskLiquidity)
	if record.Likelihood != domain.RiskHigh || record.Impact != domain.RiskHigh {
		t.Fatalf("expected High/High, got %s/%s", record.Likelihood, record.Impact)
	}
}

func TestLiquidityRiskMediumOnKeywords(t *testing.T) {
	text := "Working capital and current assets grew this year."
	record := riskByCategory(t, EvaluateRisks(text, domain.FinancialMetrics{}), domain.RiskLiquidity)

	if record.Likelihood != domain.RiskMedium || record.Impact != domain.RiskMedium {
		t.Fatalf("expected Medium/Medium, got %s/%s", record.Likelihood, record.Impact)
	}
	if !strings.Contains(record.Evidence, "2") {
		t.Fatalf("evidence must report the keyword count, got %q", record.Evidence)
	}
}

func TestLiquidityRiskLowWithoutInformation(t *testing.T) {
	record := riskByCategory(t, EvaluateRisks("no relevant terms", domain.FinancialMetrics{}), domain.RiskLiquidity)
	if record.Likelihood != domain.RiskLow || record.Impact != domain.RiskMedium {
		t.Fatalf("expected Low/Medium, got %s/%s", record.Likelihood, record.Impact)
	}
	if !strings.Contains(record.Evidence, "Limited liquidity information") {
		t.Fatalf("unexpected evidence: %q", record.Evidence)
	}
}
