package savings

import (
	"fmt"
	"math"
	"time"

	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

// RecommendForGoal evaluates whether a savings goal is achievable given
// the user's capacity. A nil deadline defaults the horizon to 12 months.
// Confidence is inherited from the capacity estimate.
func (r *Recommender) RecommendForGoal(req models.GoalRecommendationRequest, deadline *time.Time, capacity models.SavingsCapacityResponse, now time.Time) models.GoalRecommendationResponse {
	remaining := req.TargetAmount - req.CurrentAmount

	if remaining <= 0 {
		return models.GoalRecommendationResponse{
			GoalID:                 req.GoalID,
			RecommendationType:     models.RecommendationMonthlySaving,
			Message:                fmt.Sprintf("Congratulations! You've achieved your %s goal!", req.GoalName),
			SuggestedMonthlySaving: 0,
			IsAchievable:           true,
			ConfidenceScore:        1.0,
			Tips:                   []string{"Consider setting a new goal to keep the momentum!"},
		}
	}

	monthsRemaining := 12
	if deadline != nil {
		monthsRemaining = utils.MonthsBetween(now, *deadline)
		if monthsRemaining < 1 {
			monthsRemaining = 1
		}
	}
	requiredMonthly := remaining / float64(monthsRemaining)

	isAchievable := requiredMonthly <= capacity.SafeMonthlySavings

	var (
		recType          models.RecommendationType
		message          string
		tips             []string
		adjustedDeadline string
	)
	if isAchievable {
		recType = models.RecommendationMonthlySaving
		message = fmt.Sprintf("You can easily save %s per month for your %s.",
			utils.FormatINR(requiredMonthly), req.GoalName)
		tips = []string{
			fmt.Sprintf("Set up an automatic transfer of %s on salary day", utils.FormatINR(requiredMonthly)),
			"Track your progress weekly to stay motivated",
		}
	} else {
		realisticMonths := 24
		if capacity.RecommendedMonthlySavings > 0 {
			realisticMonths = int(remaining/capacity.RecommendedMonthlySavings) + 1
		}
		adjusted := now.AddDate(0, 0, realisticMonths*30)
		adjustedDeadline = adjusted.Format("2006-01-02")

		gap := requiredMonthly - capacity.SafeMonthlySavings
		recType = models.RecommendationGoalAdjustment
		message = fmt.Sprintf("To meet your %s goal on time, you'd need to save %s/month. "+
			"Consider increasing savings by %s or extending deadline to %s.",
			req.GoalName, utils.FormatINR(requiredMonthly), utils.FormatINR(gap),
			adjusted.Format("January 2006"))
		tips = []string{
			"Review discretionary spending for potential cuts",
			"Consider a side income to boost savings",
			fmt.Sprintf("Realistic monthly saving: %s", utils.FormatINR(capacity.RecommendedMonthlySavings)),
		}
	}

	return models.GoalRecommendationResponse{
		GoalID:                 req.GoalID,
		RecommendationType:     recType,
		Message:                message,
		SuggestedMonthlySaving: utils.Round2(math.Min(requiredMonthly, capacity.SafeMonthlySavings)),
		IsAchievable:           isAchievable,
		AdjustedDeadline:       adjustedDeadline,
		ConfidenceScore:        capacity.ConfidenceScore,
		Tips:                   tips,
	}
}
