package models

// TrendDirection classifies the expense trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "UP"
	TrendDown   TrendDirection = "DOWN"
	TrendStable TrendDirection = "STABLE"
)

// Forecast methods.
const (
	MethodSimpleProjection  = "SIMPLE_PROJECTION"
	MethodHistoricalTrend   = "HISTORICAL_TREND"
	MethodBlendedProjection = "BLENDED_PROJECTION"
)

// ForecastResponse is the income/expense projection for the current month.
type ForecastResponse struct {
	ProjectedIncome   float64        `json:"projected_income"`
	ProjectedExpense  float64        `json:"projected_expense"`
	ProjectedSavings  float64        `json:"projected_savings"`
	Trend             TrendDirection `json:"trend"`
	ChangePercent     float64        `json:"change_percent"`
	AvgMonthlyIncome  float64        `json:"avg_monthly_income"`
	AvgMonthlyExpense float64        `json:"avg_monthly_expense"`
	SavingsRate       float64        `json:"savings_rate"`
	ConfidenceScore   float64        `json:"confidence_score"`
	ForecastMethod    string         `json:"forecast_method"`
	Insights          []string       `json:"insights"`
}
