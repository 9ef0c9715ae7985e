// Package forecast projects current-month income and expenses from a
// weighted average of historical months blended with a partial-month
// extrapolation, and classifies the expense trend.
package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

// Weights for the moving average, most recent month first. Months past
// the sixth are ignored; with fewer months only the matching prefix is
// applied and the result renormalized by the weight mass actually used.
var movingAverageWeights = [6]float64{0.35, 0.25, 0.20, 0.10, 0.05, 0.05}

type monthTotals struct {
	income  float64
	expense float64
}

// Service generates financial forecasts. Stateless after construction.
type Service struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewService initializes a new forecast service.
func NewService(cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

// GenerateForecast projects income, expense and savings for the month
// containing now. With fewer than 2 fully recorded historical months it
// degrades to a simple day-of-month extrapolation.
func (s *Service) GenerateForecast(txns []models.Transaction, profileID uuid.UUID, now time.Time) models.ForecastResponse {
	monthly := bucketByMonth(txns)

	currentKey := utils.MonthKey(now)
	current := monthTotals{}
	if m, ok := monthly[currentKey]; ok {
		current = *m
	}

	historical := make(map[string]monthTotals)
	for key, m := range monthly {
		if key != currentKey {
			historical[key] = *m
		}
	}

	if len(historical) < 2 {
		s.log.Debugf("Forecast for profile %s: only %d historical months, using simple projection",
			profileID, len(historical))
		return simpleProjection(current, now)
	}

	avgIncome, avgExpense := weightedMovingAverage(historical)
	trend, trendFactor := calculateTrend(historical)

	daysInMonth := utils.DaysInMonth(now)
	daysElapsed := now.Day()

	var (
		projectedIncome  float64
		projectedExpense float64
		confidence       float64
		method           string
	)
	if current.income > 0 {
		// Blend the day-of-month extrapolation with the historical
		// average: 70% current, 30% historical.
		factor := float64(daysInMonth) / float64(daysElapsed)
		projectedIncome = current.income*factor*0.7 + avgIncome*0.3
		projectedExpense = current.expense*factor*0.7 + avgExpense*0.3
		confidence = math.Min(0.9, 0.5+float64(daysElapsed)/float64(daysInMonth)*0.4)
		method = models.MethodBlendedProjection
	} else {
		projectedIncome = avgIncome * (1 + trendFactor*0.5)
		projectedExpense = avgExpense * (1 + trendFactor*0.5)
		confidence = 0.6
		method = models.MethodHistoricalTrend
	}

	projectedSavings := projectedIncome - projectedExpense
	savingsRate := 0.0
	if projectedIncome > 0 {
		savingsRate = projectedSavings / projectedIncome * 100
	}

	changePercent := 0.0
	if avgExpense > 0 {
		changePercent = (projectedExpense - avgExpense) / avgExpense * 100
	}

	insights := generateInsights(projectedIncome, projectedExpense, avgIncome, avgExpense, trend, savingsRate)

	return models.ForecastResponse{
		ProjectedIncome:   utils.Round2(projectedIncome),
		ProjectedExpense:  utils.Round2(projectedExpense),
		ProjectedSavings:  utils.Round2(projectedSavings),
		Trend:             trend,
		ChangePercent:     utils.Round1(changePercent),
		AvgMonthlyIncome:  utils.Round2(avgIncome),
		AvgMonthlyExpense: utils.Round2(avgExpense),
		SavingsRate:       utils.Round1(savingsRate),
		ConfidenceScore:   utils.Round2(confidence),
		ForecastMethod:    method,
		Insights:          insights,
	}
}

func bucketByMonth(txns []models.Transaction) map[string]*monthTotals {
	monthly := make(map[string]*monthTotals)
	for _, t := range txns {
		key := utils.MonthKey(t.Date)
		m, ok := monthly[key]
		if !ok {
			m = &monthTotals{}
			monthly[key] = m
		}
		if t.Direction == models.DirectionCredit {
			m.income += t.Amount
		} else {
			m.expense += t.Amount
		}
	}
	return monthly
}

// weightedMovingAverage averages the 6 most recent historical months
// with recency-biased weights.
func weightedMovingAverage(historical map[string]monthTotals) (avgIncome, avgExpense float64) {
	keys := sortedKeys(historical)
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var totalWeight, income, expense float64
	for i, key := range keys {
		if i >= len(movingAverageWeights) {
			break
		}
		w := movingAverageWeights[i]
		income += historical[key].income * w
		expense += historical[key].expense * w
		totalWeight += w
	}
	if totalWeight > 0 {
		return income / totalWeight, expense / totalWeight
	}
	return 0, 0
}

// calculateTrend compares the mean expense of the 2 most recent
// historical months against the 2 before them (or the earliest 2 when
// fewer than 4 exist).
func calculateTrend(historical map[string]monthTotals) (models.TrendDirection, float64) {
	keys := sortedKeys(historical)
	sort.Strings(keys)

	if len(keys) < 2 {
		return models.TrendStable, 0
	}

	recent := keys[len(keys)-2:]
	var older []string
	if len(keys) >= 4 {
		older = keys[len(keys)-4 : len(keys)-2]
	} else {
		older = keys[:2]
	}

	recentExpense := meanExpense(historical, recent)
	olderExpense := meanExpense(historical, older)

	if olderExpense == 0 {
		return models.TrendStable, 0
	}

	change := (recentExpense - olderExpense) / olderExpense
	switch {
	case change > 0.1:
		return models.TrendUp, change
	case change < -0.1:
		return models.TrendDown, change
	default:
		return models.TrendStable, change
	}
}

func meanExpense(historical map[string]monthTotals, keys []string) float64 {
	var sum float64
	for _, k := range keys {
		sum += historical[k].expense
	}
	return sum / float64(len(keys))
}

func sortedKeys(historical map[string]monthTotals) []string {
	keys := make([]string, 0, len(historical))
	for k := range historical {
		keys = append(keys, k)
	}
	return keys
}

// simpleProjection scales the partial current month to a full month.
func simpleProjection(current monthTotals, now time.Time) models.ForecastResponse {
	daysInMonth := utils.DaysInMonth(now)
	daysElapsed := now.Day()
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	factor := float64(daysInMonth) / float64(daysElapsed)

	projectedIncome := current.income * factor
	projectedExpense := current.expense * factor
	projectedSavings := projectedIncome - projectedExpense
	savingsRate := 0.0
	if projectedIncome > 0 {
		savingsRate = projectedSavings / projectedIncome * 100
	}

	return models.ForecastResponse{
		ProjectedIncome:   utils.Round2(projectedIncome),
		ProjectedExpense:  utils.Round2(projectedExpense),
		ProjectedSavings:  utils.Round2(projectedSavings),
		Trend:             models.TrendStable,
		ChangePercent:     0,
		AvgMonthlyIncome:  utils.Round2(projectedIncome),
		AvgMonthlyExpense: utils.Round2(projectedExpense),
		SavingsRate:       utils.Round1(savingsRate),
		ConfidenceScore:   0.4,
		ForecastMethod:    models.MethodSimpleProjection,
		Insights:          []string{"Not enough historical data for accurate forecast. Showing simple projection."},
	}
}

func generateInsights(projectedIncome, projectedExpense, avgIncome, avgExpense float64, trend models.TrendDirection, savingsRate float64) []string {
	insights := make([]string, 0, 3)

	switch trend {
	case models.TrendUp:
		change := 0.0
		if avgExpense > 0 {
			change = (projectedExpense - avgExpense) / avgExpense * 100
		}
		insights = append(insights, fmt.Sprintf("Expenses trending up by %.1f%% compared to average.", math.Abs(change)))
	case models.TrendDown:
		change := 0.0
		if avgExpense > 0 {
			change = (avgExpense - projectedExpense) / avgExpense * 100
		}
		insights = append(insights, fmt.Sprintf("Great! Expenses trending down by %.1f%%.", math.Abs(change)))
	}

	switch {
	case savingsRate < 0:
		insights = append(insights, "Projected to spend more than income this month.")
	case savingsRate < 10:
		insights = append(insights, "Savings rate is low. Consider reducing discretionary spending.")
	case savingsRate >= 30:
		insights = append(insights, "Excellent savings rate! You're on track for your goals.")
	}

	if projectedIncome > avgIncome*1.1 {
		insights = append(insights, "Income looking higher than usual this month.")
	} else if projectedIncome < avgIncome*0.9 {
		insights = append(insights, "Income may be lower than usual. Plan expenses accordingly.")
	}

	return insights
}
