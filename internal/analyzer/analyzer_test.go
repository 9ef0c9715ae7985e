package analyzer

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
)

func newTestAnalyzer() *Analyzer {
	cfg := &config.Config{
		SavingsPotentialThresholdPercent: 10.0,
	}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAnalyzer(cfg, log)
}

func txn(date time.Time, amount float64, direction, category string) models.Transaction {
	return models.Transaction{
		ID:        uuid.New(),
		Date:      date,
		Amount:    amount,
		Direction: direction,
		Category:  category,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Six months of salary 100000 against 60000 of spending per month.
func sixMonthHistory() []models.Transaction {
	var txns []models.Transaction
	for m := time.January; m <= time.June; m++ {
		txns = append(txns,
			txn(date(2025, m, 1), 100000, models.DirectionCredit, "SALARY"),
			txn(date(2025, m, 5), 25000, models.DirectionDebit, "RENT"),
			txn(date(2025, m, 10), 15000, models.DirectionDebit, "GROCERIES"),
			txn(date(2025, m, 15), 12000, models.DirectionDebit, "FOOD"),
			txn(date(2025, m, 20), 8000, models.DirectionDebit, "SHOPPING"),
		)
	}
	return txns
}

func TestAnalyzeTotals(t *testing.T) {
	a := newTestAnalyzer()
	resp := a.Analyze(sixMonthHistory(), uuid.New(), date(2025, 1, 1), date(2025, 7, 1))

	if resp.TotalIncome != 600000 {
		t.Errorf("TotalIncome = %v, want 600000", resp.TotalIncome)
	}
	if resp.TotalExpenses != 360000 {
		t.Errorf("TotalExpenses = %v, want 360000", resp.TotalExpenses)
	}
	if got := resp.TotalIncome - resp.TotalExpenses; math.Abs(resp.NetSavings-got) > 0.01 {
		t.Errorf("NetSavings = %v, want income-expenses = %v", resp.NetSavings, got)
	}
	if math.Abs(resp.SavingsRate-40) > 0.01 {
		t.Errorf("SavingsRate = %v, want 40", resp.SavingsRate)
	}
	if resp.AvgMonthlyIncome != 100000 {
		t.Errorf("AvgMonthlyIncome = %v, want 100000", resp.AvgMonthlyIncome)
	}
}

func TestAnalyzePeriodDivisor(t *testing.T) {
	// The divisor is the calendar length of the period, not the number
	// of months that actually have transactions.
	a := newTestAnalyzer()
	txns := []models.Transaction{
		txn(date(2025, 1, 15), 60000, models.DirectionCredit, "SALARY"),
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 1, 1), date(2025, 7, 1))

	if resp.AvgMonthlyIncome != 10000 {
		t.Errorf("AvgMonthlyIncome = %v, want 10000 (60000 over a 6-month period)", resp.AvgMonthlyIncome)
	}
}

func TestAnalyzeZeroIncome(t *testing.T) {
	a := newTestAnalyzer()
	txns := []models.Transaction{
		txn(date(2025, 5, 1), 5000, models.DirectionDebit, "FOOD"),
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 5, 1), date(2025, 6, 1))

	if resp.SavingsRate != 0 {
		t.Errorf("SavingsRate = %v, want 0 when income is 0", resp.SavingsRate)
	}
	if resp.CategoryBreakdown[0].PercentOfIncome != nil {
		t.Error("PercentOfIncome should be nil when income is 0")
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newTestAnalyzer()
	resp := a.Analyze(nil, uuid.New(), date(2025, 1, 1), date(2025, 7, 1))

	if resp.TotalIncome != 0 || resp.TotalExpenses != 0 || resp.SavingsRate != 0 {
		t.Errorf("empty input should produce zero totals, got %+v", resp)
	}
	if len(resp.CategoryBreakdown) != 0 || len(resp.MonthlyTrend) != 0 {
		t.Error("empty input should produce empty breakdown and trend")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	a := newTestAnalyzer()
	resp := a.Analyze(sixMonthHistory(), uuid.New(), date(2025, 1, 1), date(2025, 7, 1))

	if len(resp.CategoryBreakdown) != 4 {
		t.Fatalf("breakdown has %d categories, want 4", len(resp.CategoryBreakdown))
	}
	if resp.CategoryBreakdown[0].Category != "RENT" {
		t.Errorf("largest category = %s, want RENT", resp.CategoryBreakdown[0].Category)
	}

	var pctSum float64
	for _, c := range resp.CategoryBreakdown {
		pctSum += c.PercentOfTotal
	}
	if math.Abs(pctSum-100) > 0.1 {
		t.Errorf("percent_of_total sums to %v, want 100", pctSum)
	}

	rent := resp.CategoryBreakdown[0]
	if rent.TransactionCount != 6 {
		t.Errorf("RENT count = %d, want 6", rent.TransactionCount)
	}
	if math.Abs(rent.AvgTransaction-25000) > 0.01 {
		t.Errorf("RENT avg = %v, want 25000", rent.AvgTransaction)
	}
}

func TestDefaultsMissingCategoryToOther(t *testing.T) {
	a := newTestAnalyzer()
	txns := []models.Transaction{
		txn(date(2025, 5, 3), 3000, models.DirectionDebit, ""),
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 5, 1), date(2025, 6, 1))

	if resp.CategoryBreakdown[0].Category != "OTHER" {
		t.Errorf("category = %s, want OTHER", resp.CategoryBreakdown[0].Category)
	}
}

func TestPotentialSavingsCategories(t *testing.T) {
	a := newTestAnalyzer()
	// GROCERIES takes 80% of expenses but is essential; FOOD takes 20%
	// and is discretionary.
	txns := []models.Transaction{
		txn(date(2025, 5, 1), 100000, models.DirectionCredit, "SALARY"),
		txn(date(2025, 5, 5), 40000, models.DirectionDebit, "GROCERIES"),
		txn(date(2025, 5, 10), 10000, models.DirectionDebit, "FOOD"),
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 5, 1), date(2025, 6, 1))

	groceries := resp.CategoryBreakdown[0]
	if groceries.Category != "GROCERIES" {
		t.Fatalf("largest category = %s, want GROCERIES", groceries.Category)
	}
	if math.Abs(groceries.PercentOfTotal-80) > 0.01 {
		t.Errorf("GROCERIES percent_of_total = %v, want 80", groceries.PercentOfTotal)
	}

	for _, c := range resp.PotentialSavingsCategories {
		if c.Category == "GROCERIES" {
			t.Error("essential GROCERIES must not appear in potential_savings_categories")
		}
	}
	if len(resp.PotentialSavingsCategories) != 1 || resp.PotentialSavingsCategories[0].Category != "FOOD" {
		t.Errorf("potential_savings_categories = %+v, want [FOOD]", resp.PotentialSavingsCategories)
	}
}

func TestTopSpendingCategories(t *testing.T) {
	a := newTestAnalyzer()
	var txns []models.Transaction
	categories := []string{"RENT", "GROCERIES", "FOOD", "SHOPPING", "TRAVEL", "GIFTS", "ENTERTAINMENT"}
	for i, c := range categories {
		txns = append(txns, txn(date(2025, 5, 1+i), float64(7000-i*1000), models.DirectionDebit, c))
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 5, 1), date(2025, 6, 1))

	if len(resp.TopSpendingCategories) != 5 {
		t.Fatalf("top categories = %d, want 5", len(resp.TopSpendingCategories))
	}
	if resp.TopSpendingCategories[0] != "RENT" {
		t.Errorf("top category = %s, want RENT", resp.TopSpendingCategories[0])
	}
}

func TestMonthlyTrend(t *testing.T) {
	a := newTestAnalyzer()
	txns := []models.Transaction{
		txn(date(2025, 3, 1), 50000, models.DirectionCredit, "SALARY"),
		txn(date(2025, 3, 10), 20000, models.DirectionDebit, "RENT"),
		txn(date(2025, 1, 1), 50000, models.DirectionCredit, "SALARY"),
		txn(date(2025, 1, 10), 30000, models.DirectionDebit, "RENT"),
	}
	resp := a.Analyze(txns, uuid.New(), date(2025, 1, 1), date(2025, 4, 1))

	if len(resp.MonthlyTrend) != 2 {
		t.Fatalf("trend has %d months, want 2", len(resp.MonthlyTrend))
	}
	if resp.MonthlyTrend[0].Month != "2025-01" || resp.MonthlyTrend[1].Month != "2025-03" {
		t.Errorf("trend months not chronological: %+v", resp.MonthlyTrend)
	}
	jan := resp.MonthlyTrend[0]
	if jan.NetSavings != 20000 || math.Abs(jan.SavingsRate-40) > 0.01 {
		t.Errorf("january trend = %+v, want net 20000 rate 40", jan)
	}
}
