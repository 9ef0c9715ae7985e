// Package analyzer aggregates transaction history into a categorized
// spending breakdown and a monthly income/expense trend.
package analyzer

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/category"
	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

// Analyzer computes spending analyses. Stateless after construction.
type Analyzer struct {
	cfg *config.Config
	log *logrus.Logger
}

// NewAnalyzer initializes a new analyzer.
func NewAnalyzer(cfg *config.Config, log *logrus.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log}
}

// Analyze performs a full spending analysis over the given period.
//
// The monthly divisor is the calendar length of the period, not the
// number of months that actually carry data; sparse data therefore
// dilutes the averages. The capacity calculator uses the data-month
// count instead.
func (a *Analyzer) Analyze(txns []models.Transaction, profileID uuid.UUID, start, end time.Time) models.SpendingAnalysisResponse {
	var totalIncome, totalExpenses float64
	var expenses []models.Transaction
	for _, t := range txns {
		if t.Direction == models.DirectionCredit {
			totalIncome += t.Amount
		} else {
			totalExpenses += t.Amount
			expenses = append(expenses, t)
		}
	}
	netSavings := totalIncome - totalExpenses

	months := utils.MonthsBetween(start, end)
	if months < 1 {
		months = 1
	}

	savingsRate := 0.0
	if totalIncome > 0 {
		savingsRate = netSavings / totalIncome * 100
	}

	breakdown := a.categoryBreakdown(expenses, totalExpenses, totalIncome)
	trend := monthlyTrend(txns)

	topCategories := make([]string, 0, 5)
	for i, c := range breakdown {
		if i == 5 {
			break
		}
		topCategories = append(topCategories, c.Category)
	}

	potential := make([]models.CategorySpending, 0)
	for _, c := range breakdown {
		if category.Classify(c.Category) == category.Discretionary &&
			c.PercentOfTotal > a.cfg.SavingsPotentialThresholdPercent {
			potential = append(potential, c)
		}
	}

	a.log.Debugf("Analyzed %d transactions for profile %s over %d months", len(txns), profileID, months)

	return models.SpendingAnalysisResponse{
		ProfileID:                  profileID,
		AnalysisPeriodStart:        start.Format("2006-01-02"),
		AnalysisPeriodEnd:          end.Format("2006-01-02"),
		TotalIncome:                utils.Round2(totalIncome),
		TotalExpenses:              utils.Round2(totalExpenses),
		NetSavings:                 utils.Round2(netSavings),
		AvgMonthlyIncome:           utils.Round2(totalIncome / float64(months)),
		AvgMonthlyExpense:          utils.Round2(totalExpenses / float64(months)),
		AvgMonthlySavings:          utils.Round2(netSavings / float64(months)),
		SavingsRate:                utils.Round2(savingsRate),
		CategoryBreakdown:          breakdown,
		MonthlyTrend:               trend,
		TopSpendingCategories:      topCategories,
		PotentialSavingsCategories: potential,
	}
}

// categoryBreakdown groups DEBIT transactions by category, descending by
// total amount.
func (a *Analyzer) categoryBreakdown(expenses []models.Transaction, totalExpenses, totalIncome float64) []models.CategorySpending {
	type group struct {
		total float64
		count int
	}
	groups := make(map[string]*group)
	for _, t := range expenses {
		label := category.Normalize(t.Category)
		g, ok := groups[label]
		if !ok {
			g = &group{}
			groups[label] = g
		}
		g.total += t.Amount
		g.count++
	}

	result := make([]models.CategorySpending, 0, len(groups))
	for label, g := range groups {
		entry := models.CategorySpending{
			Category:         label,
			TotalAmount:      utils.Round2(g.total),
			TransactionCount: g.count,
			AvgTransaction:   utils.Round2(g.total / float64(g.count)),
		}
		if totalExpenses > 0 {
			entry.PercentOfTotal = utils.Round2(g.total / totalExpenses * 100)
		}
		if totalIncome > 0 {
			pct := utils.Round2(g.total / totalIncome * 100)
			entry.PercentOfIncome = &pct
		}
		result = append(result, entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalAmount != result[j].TotalAmount {
			return result[i].TotalAmount > result[j].TotalAmount
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// monthlyTrend buckets all transactions by calendar month, ascending.
func monthlyTrend(txns []models.Transaction) []models.MonthlySpending {
	type totals struct {
		income  float64
		expense float64
	}
	monthly := make(map[string]*totals)
	for _, t := range txns {
		key := utils.MonthKey(t.Date)
		m, ok := monthly[key]
		if !ok {
			m = &totals{}
			monthly[key] = m
		}
		if t.Direction == models.DirectionCredit {
			m.income += t.Amount
		} else {
			m.expense += t.Amount
		}
	}

	keys := make([]string, 0, len(monthly))
	for k := range monthly {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]models.MonthlySpending, 0, len(keys))
	for _, key := range keys {
		m := monthly[key]
		savings := m.income - m.expense
		rate := 0.0
		if m.income > 0 {
			rate = savings / m.income * 100
		}
		result = append(result, models.MonthlySpending{
			Month:        key,
			TotalIncome:  utils.Round2(m.income),
			TotalExpense: utils.Round2(m.expense),
			NetSavings:   utils.Round2(savings),
			SavingsRate:  utils.Round2(rate),
		})
	}
	return result
}
