package advisor

import (
	"fmt"
	"strings"

	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

// FallbackInsights produces rule-based advice from the analysis and
// capacity results. It needs no network and never fails; the AI path
// degrades to it on any error.
func FallbackInsights(analysis models.SpendingAnalysisResponse, capacity models.SavingsCapacityResponse) models.AIInsightResponse {
	var recommendations []models.AIRecommendation
	var tips []string
	score := 50

	switch {
	case analysis.SavingsRate >= 30:
		score += 25
		tips = append(tips, "Excellent savings rate! Consider investing surplus in SIPs for long-term growth.")
	case analysis.SavingsRate >= 20:
		score += 15
		tips = append(tips, "Good savings habit! Try to increase by 5% for faster goal achievement.")
	case analysis.SavingsRate >= 10:
		score += 5
		recommendations = append(recommendations, models.AIRecommendation{
			Title:      "Boost Your Savings",
			Message:    fmt.Sprintf("Your savings rate is %.0f%%. Aim for 20%% by reducing discretionary spending.", analysis.SavingsRate),
			Priority:   "HIGH",
			ActionType: "INCREASE_SAVINGS",
			Confidence: 0.8,
		})
	default:
		recommendations = append(recommendations, models.AIRecommendation{
			Title:      "Critical: Low Savings",
			Message:    "Your savings rate is below 10%. Review expenses and create a strict budget.",
			Priority:   "HIGH",
			ActionType: "BUDGET",
			Confidence: 0.8,
		})
	}

	for i, cat := range analysis.PotentialSavingsCategories {
		if i == 2 {
			break
		}
		if cat.PercentOfTotal > 15 {
			potential := cat.TotalAmount * 0.2
			recommendations = append(recommendations, models.AIRecommendation{
				Title: fmt.Sprintf("Reduce %s Spending", titleCase(cat.Category)),
				Message: fmt.Sprintf("You spent %s on %s. Reducing by 20%% saves %s.",
					utils.FormatINR(cat.TotalAmount), strings.ToLower(cat.Category), utils.FormatINR(potential)),
				Priority:         "MEDIUM",
				ActionType:       "REDUCE_SPENDING",
				Category:         cat.Category,
				PotentialSavings: &potential,
				Confidence:       0.8,
			})
		}
	}

	if capacity.AvgMonthlyEssentialExpenses > 0 {
		emergencyTarget := capacity.AvgMonthlyEssentialExpenses * 6
		tips = append(tips, fmt.Sprintf("Build an emergency fund of %s (6 months of essentials).", utils.FormatINR(emergencyTarget)))
	}

	if analysis.SavingsRate >= 15 {
		tips = append(tips, "Consider starting a SIP in index funds for long-term wealth creation.")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	summary := fmt.Sprintf("Your financial health score is %d/100. ", score)
	switch {
	case score >= 70:
		summary += "You're doing well! Focus on optimizing and growing your wealth."
	case score >= 50:
		summary += "There's room for improvement. Small changes can make a big difference."
	default:
		summary += "Your finances need attention. Let's work on building better habits."
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	if len(tips) > 5 {
		tips = tips[:5]
	}

	return models.AIInsightResponse{
		Summary:              summary,
		Recommendations:      recommendations,
		PersonalizedTips:     tips,
		FinancialHealthScore: score,
	}
}

// FallbackGoalAdvice produces rule-based goal advice.
func FallbackGoalAdvice(goal models.GoalRecommendationRequest, capacity models.SavingsCapacityResponse) string {
	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining <= 0 {
		return fmt.Sprintf("Congratulations! You've achieved your %s goal! Consider setting a new target.", goal.GoalName)
	}

	if capacity.SafeMonthlySavings > 0 && remaining <= capacity.SafeMonthlySavings {
		return fmt.Sprintf("Great news! You can complete your %s goal in just one month with your current savings capacity.", goal.GoalName)
	}

	if capacity.SafeMonthlySavings > 0 {
		monthsNeeded := int(remaining/capacity.SafeMonthlySavings) + 1
		return fmt.Sprintf("To achieve your %s goal, save %s monthly. You'll reach your target in about %d months.",
			goal.GoalName, utils.FormatINR(capacity.RecommendedMonthlySavings), monthsNeeded)
	}

	suggestedMonthly := remaining / 12
	return fmt.Sprintf("To achieve your %s goal of %s, consider saving %s monthly. "+
		"Upload your bank statements to get personalized recommendations.",
		goal.GoalName, utils.FormatINR(goal.TargetAmount), utils.FormatINR(suggestedMonthly))
}

// titleCase turns "PERSONAL_CARE" into "Personal Care".
func titleCase(label string) string {
	words := strings.Split(strings.ToLower(strings.ReplaceAll(label, "_", " ")), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
