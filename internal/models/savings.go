package models

import "github.com/google/uuid"

// RecommendationType tags a goal recommendation.
type RecommendationType string

const (
	RecommendationMonthlySaving   RecommendationType = "MONTHLY_SAVING"
	RecommendationGoalAdjustment  RecommendationType = "GOAL_ADJUSTMENT"
	RecommendationSpendingCut     RecommendationType = "SPENDING_CUT"
	RecommendationGoalPriority    RecommendationType = "GOAL_PRIORITY"
	RecommendationDeadlineWarning RecommendationType = "DEADLINE_WARNING"
)

// SavingsCapacityResponse describes how much a user can save per month.
type SavingsCapacityResponse struct {
	ProfileID                       uuid.UUID `json:"profile_id"`
	AvgMonthlyIncome                float64   `json:"avg_monthly_income"`
	AvgMonthlyEssentialExpenses     float64   `json:"avg_monthly_essential_expenses"`
	AvgMonthlyDiscretionaryExpenses float64   `json:"avg_monthly_discretionary_expenses"`
	CurrentSavingsRate              float64   `json:"current_savings_rate"`
	SafeMonthlySavings              float64   `json:"safe_monthly_savings"`
	AggressiveMonthlySavings        float64   `json:"aggressive_monthly_savings"`
	RecommendedMonthlySavings       float64   `json:"recommended_monthly_savings"`
	ConfidenceScore                 float64   `json:"confidence_score"`
	Explanation                     string    `json:"explanation"`
}

// GoalRecommendationRequest describes a savings goal to evaluate.
type GoalRecommendationRequest struct {
	GoalID        uuid.UUID `json:"goal_id"`
	GoalName      string    `json:"goal_name"`
	GoalType      string    `json:"goal_type"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      string    `json:"deadline,omitempty"` // YYYY-MM-DD
	Priority      string    `json:"priority,omitempty"`
}

// GoalRecommendationResponse is the feasibility verdict for a goal.
type GoalRecommendationResponse struct {
	GoalID                 uuid.UUID          `json:"goal_id"`
	RecommendationType     RecommendationType `json:"recommendation_type"`
	Message                string             `json:"message"`
	SuggestedMonthlySaving float64            `json:"suggested_monthly_saving"`
	IsAchievable           bool               `json:"is_achievable"`
	AdjustedDeadline       string             `json:"adjusted_deadline,omitempty"` // YYYY-MM-DD
	ConfidenceScore        float64            `json:"confidence_score"`
	Tips                   []string           `json:"tips"`
}
