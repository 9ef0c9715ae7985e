package models

import "github.com/google/uuid"

// Insight is a single rule-based financial insight.
type Insight struct {
	InsightType string  `json:"insight_type"`
	Title       string  `json:"title"`
	Message     string  `json:"message"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount,omitempty"`
	ActionType  string  `json:"action_type,omitempty"`
	Priority    string  `json:"priority"` // HIGH, MEDIUM, LOW
}

// InsightsResponse is the rule-based insights payload.
type InsightsResponse struct {
	ProfileID   uuid.UUID `json:"profile_id"`
	GeneratedAt string    `json:"generated_at"` // YYYY-MM-DD
	Insights    []Insight `json:"insights"`
	Summary     string    `json:"summary"`
}

// AIRecommendation is one recommendation from the advisor, AI-generated
// or produced by the rule-based fallback.
type AIRecommendation struct {
	Title            string   `json:"title"`
	Message          string   `json:"message"`
	Priority         string   `json:"priority"`
	ActionType       string   `json:"action_type"`
	Category         string   `json:"category,omitempty"`
	PotentialSavings *float64 `json:"potential_savings,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// AIInsightResponse is the advisor's full assessment.
type AIInsightResponse struct {
	Summary              string             `json:"summary"`
	Recommendations      []AIRecommendation `json:"recommendations"`
	PersonalizedTips     []string           `json:"personalized_tips"`
	FinancialHealthScore int                `json:"financial_health_score"` // 0-100
}

// GoalAdviceResponse bundles AI goal advice with the standard recommendation.
type GoalAdviceResponse struct {
	GoalID         uuid.UUID                  `json:"goal_id"`
	GoalName       string                     `json:"goal_name"`
	AIAdvice       string                     `json:"ai_advice"`
	Recommendation GoalRecommendationResponse `json:"recommendation"`
	AIAvailable    bool                       `json:"ai_available"`
}
