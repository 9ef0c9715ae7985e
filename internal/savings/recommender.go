// Package savings derives safe, aggressive and recommended monthly
// savings figures from recent transaction history, and evaluates
// savings goals against that capacity.
package savings

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/category"
	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

// recentWindowDays is the capacity calculation lookback.
const recentWindowDays = 90

// Recommender computes savings capacity and goal recommendations.
type Recommender struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewRecommender initializes a new recommender.
func NewRecommender(cfg *config.Config, log *logrus.Logger) *Recommender {
	return &Recommender{cfg: cfg, log: log}
}

// CalculateCapacity estimates how much the user can save each month.
//
// Only the last 90 days are considered unless that leaves too few
// transactions, in which case the full history is used. The monthly
// divisor is the number of distinct months with data, floored at 1.
func (r *Recommender) CalculateCapacity(txns []models.Transaction, profileID uuid.UUID, now time.Time) models.SavingsCapacityResponse {
	cutoff := now.AddDate(0, 0, -recentWindowDays)
	recent := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Date.Before(cutoff) {
			recent = append(recent, t)
		}
	}
	if len(recent) < r.cfg.MinTransactionsForAnalysis {
		recent = txns
	}

	monthSet := make(map[string]struct{})
	for _, t := range recent {
		monthSet[utils.MonthKey(t.Date)] = struct{}{}
	}
	months := float64(len(monthSet))
	if months < 1 {
		months = 1
	}

	var income, expenses, essential, discretionary float64
	for _, t := range recent {
		if t.Direction == models.DirectionCredit {
			income += t.Amount
			continue
		}
		expenses += t.Amount
		switch category.Classify(t.Category) {
		case category.Essential:
			essential += t.Amount
		case category.Discretionary:
			discretionary += t.Amount
		}
	}

	avgIncome := income / months
	avgExpense := expenses / months
	essentialExpense := essential / months
	discretionaryExpense := discretionary / months
	// May go negative when categorization coverage is incomplete.
	otherExpense := avgExpense - essentialExpense - discretionaryExpense

	currentSavings := avgIncome - avgExpense
	currentRate := 0.0
	if avgIncome > 0 {
		currentRate = currentSavings / avgIncome * 100
	}

	// Safe: keep essentials and half of discretionary as buffer.
	safe := avgIncome - essentialExpense - discretionaryExpense*0.5 - otherExpense
	safe = math.Max(0, safe)

	// Aggressive: tighter belt on discretionary and other spend.
	aggressive := avgIncome - essentialExpense - discretionaryExpense*0.2 - otherExpense*0.5
	aggressive = math.Max(0, aggressive)

	// Ease the user toward the safe figure based on current habits.
	var recommended float64
	switch {
	case currentRate < 10:
		recommended = safe * 0.7
	case currentRate < 20:
		recommended = safe * 0.85
	default:
		recommended = safe
	}

	confidence := math.Min(0.95, 0.5+float64(len(recent))/100*0.45)

	explanation := capacityExplanation(discretionaryExpense, safe, currentRate)

	r.log.Debugf("Capacity for profile %s: safe=%.2f aggressive=%.2f over %d months",
		profileID, safe, aggressive, int(months))

	return models.SavingsCapacityResponse{
		ProfileID:                       profileID,
		AvgMonthlyIncome:                utils.Round2(avgIncome),
		AvgMonthlyEssentialExpenses:     utils.Round2(essentialExpense),
		AvgMonthlyDiscretionaryExpenses: utils.Round2(discretionaryExpense),
		CurrentSavingsRate:              utils.Round2(currentRate),
		SafeMonthlySavings:              utils.Round2(safe),
		AggressiveMonthlySavings:        utils.Round2(aggressive),
		RecommendedMonthlySavings:       utils.Round2(recommended),
		ConfidenceScore:                 utils.Round2(confidence),
		Explanation:                     explanation,
	}
}

func capacityExplanation(discretionary, safe, currentRate float64) string {
	switch {
	case currentRate >= 20:
		return fmt.Sprintf("Great job! You're already saving %.0f%% of your income. "+
			"You can comfortably save up to %s per month.", currentRate, utils.FormatINR(safe))
	case currentRate >= 10:
		return fmt.Sprintf("You're saving %.0f%% of your income. "+
			"With some adjustments, you could save %s per month.", currentRate, utils.FormatINR(safe))
	case currentRate > 0:
		return fmt.Sprintf("Your current savings rate is %.0f%%. "+
			"By optimizing discretionary spending, you could save %s per month.", currentRate, utils.FormatINR(safe))
	case safe > 0:
		return fmt.Sprintf("You're currently spending more than you earn (savings rate: %.0f%%). "+
			"By reducing discretionary spending, you could potentially save %s per month.", currentRate, utils.FormatINR(safe))
	default:
		return fmt.Sprintf("Your expenses currently exceed your income (savings rate: %.0f%%). "+
			"Consider reviewing your spending - cutting discretionary expenses by 50%% could free up %s per month. "+
			"Focus on reducing non-essential expenses first.", currentRate, utils.FormatINR(discretionary*0.5))
	}
}
