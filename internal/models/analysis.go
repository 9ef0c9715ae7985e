package models

import "github.com/google/uuid"

// CategorySpending is the spending breakdown for a single category.
type CategorySpending struct {
	Category         string   `json:"category"`
	TotalAmount      float64  `json:"total_amount"`
	TransactionCount int      `json:"transaction_count"`
	PercentOfTotal   float64  `json:"percent_of_total"`
	PercentOfIncome  *float64 `json:"percent_of_income,omitempty"`
	AvgTransaction   float64  `json:"avg_transaction"`
	Trend            string   `json:"trend,omitempty"`
}

// MonthlySpending summarizes one calendar month of activity.
type MonthlySpending struct {
	Month        string  `json:"month"` // YYYY-MM
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	NetSavings   float64 `json:"net_savings"`
	SavingsRate  float64 `json:"savings_rate"`
}

// SpendingAnalysisResponse is the full spending analysis for a period.
type SpendingAnalysisResponse struct {
	ProfileID                  uuid.UUID          `json:"profile_id"`
	AnalysisPeriodStart        string             `json:"analysis_period_start"` // YYYY-MM-DD
	AnalysisPeriodEnd          string             `json:"analysis_period_end"`   // YYYY-MM-DD
	TotalIncome                float64            `json:"total_income"`
	TotalExpenses              float64            `json:"total_expenses"`
	NetSavings                 float64            `json:"net_savings"`
	AvgMonthlyIncome           float64            `json:"avg_monthly_income"`
	AvgMonthlyExpense          float64            `json:"avg_monthly_expense"`
	AvgMonthlySavings          float64            `json:"avg_monthly_savings"`
	SavingsRate                float64            `json:"savings_rate"`
	CategoryBreakdown          []CategorySpending `json:"category_breakdown"`
	MonthlyTrend               []MonthlySpending  `json:"monthly_trend"`
	TopSpendingCategories      []string           `json:"top_spending_categories"`
	PotentialSavingsCategories []CategorySpending `json:"potential_savings_categories"`
}
