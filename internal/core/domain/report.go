package domain

// Verdict is the outcome of the document verification stage.
type Verdict string

const (
	VerdictValid   Verdict = "valid"
	VerdictInvalid Verdict = "invalid"
)

// Verification is advisory: an invalid verdict does not stop the
// remaining pipeline stages.
type Verification struct {
	Verdict    Verdict  `json:"verdict"`
	Rationale  string   `json:"rationale"`
	Indicators []string `json:"indicators,omitempty"`
}

// FinancialMetrics holds the figures recognized in the document text.
// A nil value means the metric was not reported, which is distinct
// from a reported zero.
type FinancialMetrics struct {
	Revenue *float64 `json:"revenue"`
	Profit  *float64 `json:"profit"`
	Debt    *float64 `json:"debt"`
}

type RiskCategory string

const (
	RiskMarket      RiskCategory = "market"
	RiskCredit      RiskCategory = "credit"
	RiskOperational RiskCategory = "operational"
	RiskLiquidity   RiskCategory = "liquidity"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type RiskRecord struct {
	Category   RiskCategory `json:"category"`
	Likelihood RiskLevel    `json:"likelihood"`
	Impact     RiskLevel    `json:"impact"`
	Evidence   string       `json:"evidence"`
	Mitigation string       `json:"mitigation"`
}

// AnalysisReport is the aggregate response of one pipeline run. It is
// assembled once and returned directly; it is never persisted.
// Errors collects per-stage failure notes when a stage after
// extraction failed but earlier results were kept.
type AnalysisReport struct {
	Verification   Verification     `json:"verification"`
	Metrics        FinancialMetrics `json:"metrics"`
	Insights       []string         `json:"insights"`
	Recommendation string           `json:"recommendation,omitempty"`
	Risks          []RiskRecord     `json:"risks"`
	Errors         []string         `json:"errors,omitempty"`
}
