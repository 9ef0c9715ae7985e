// Package handler exposes the advisor computation API over HTTP.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/advisor"
	"github.com/ametsa/advisor-service/internal/analyzer"
	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/forecast"
	"github.com/ametsa/advisor-service/internal/integrations/transactions"
	"github.com/ametsa/advisor-service/internal/middleware"
	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/savings"
	"github.com/ametsa/advisor-service/internal/utils"
)

// Handler wires the engines to the HTTP surface.
type Handler struct {
	cfg      *config.Config
	log      *logrus.Logger
	feed     *transactions.Client
	analyzer *analyzer.Analyzer
	savings  *savings.Recommender
	forecast *forecast.Service
	advisor  *advisor.Advisor
}

// NewHandler initializes a new handler.
func NewHandler(cfg *config.Config, log *logrus.Logger, feed *transactions.Client,
	an *analyzer.Analyzer, rec *savings.Recommender, fc *forecast.Service, adv *advisor.Advisor) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		feed:     feed,
		analyzer: an,
		savings:  rec,
		forecast: fc,
		advisor:  adv,
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "ai-advisor-service",
	})
}

// SpendingAnalysis handles GET /api/advisor/spending-analysis?months=N.
func (h *Handler) SpendingAnalysis(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	months := h.cfg.DefaultAnalysisMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			h.badRequest(w, r, "months must be an integer between 1 and 24")
			return
		}
		months = n
	}

	end := time.Now()
	start := end.AddDate(0, 0, -months*30)

	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, start, end)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.analyzer.Analyze(txns, principal.ProfileID, start, end))
}

// SavingsCapacity handles GET /api/advisor/savings-capacity.
func (h *Handler) SavingsCapacity(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	now := time.Now()
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, now.AddDate(0, 0, -180), now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.savings.CalculateCapacity(txns, principal.ProfileID, now))
}

// GoalRecommendation handles POST /api/advisor/goal-recommendation.
func (h *Handler) GoalRecommendation(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	req, deadline, ok := h.decodeGoalRequest(w, r)
	if !ok {
		return
	}

	now := time.Now()
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, now.AddDate(0, 0, -180), now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	capacity := h.savings.CalculateCapacity(txns, principal.ProfileID, now)
	respondJSON(w, http.StatusOK, h.savings.RecommendForGoal(req, deadline, capacity, now))
}

// Forecast handles GET /api/advisor/forecast.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	now := time.Now()
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, now.AddDate(0, 0, -180), now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.forecast.GenerateForecast(txns, principal.ProfileID, now))
}

// AIInsights handles GET /api/advisor/ai-insights. OpenAI failures are
// absorbed by the advisor's fallback and never reach the caller.
func (h *Handler) AIInsights(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -180)
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, start, now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	analysis := h.analyzer.Analyze(txns, principal.ProfileID, start, now)
	capacity := h.savings.CalculateCapacity(txns, principal.ProfileID, now)

	respondJSON(w, http.StatusOK, h.advisor.GenerateInsights(r.Context(), analysis, capacity))
}

// AIGoalAdvice handles POST /api/advisor/ai-goal-advice.
func (h *Handler) AIGoalAdvice(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	req, deadline, ok := h.decodeGoalRequest(w, r)
	if !ok {
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -180)
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, start, now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	analysis := h.analyzer.Analyze(txns, principal.ProfileID, start, now)
	capacity := h.savings.CalculateCapacity(txns, principal.ProfileID, now)

	respondJSON(w, http.StatusOK, models.GoalAdviceResponse{
		GoalID:         req.GoalID,
		GoalName:       req.GoalName,
		AIAdvice:       h.advisor.GenerateGoalAdvice(r.Context(), req, deadline, capacity, analysis, now),
		Recommendation: h.savings.RecommendForGoal(req, deadline, capacity, now),
		AIAvailable:    h.advisor.Available(),
	})
}

// Insights handles GET /api/advisor/insights: deterministic rule-based
// insights derived from the spending analysis.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		h.unauthorized(w, r)
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -90)
	txns, err := h.feed.GetTransactions(r.Context(), principal.Token, start, now)
	if err != nil {
		h.feedError(w, r, err)
		return
	}

	analysis := h.analyzer.Analyze(txns, principal.ProfileID, start, now)
	insights := h.buildInsights(analysis)

	var summary string
	switch {
	case len(insights) == 0:
		summary = "Your finances look healthy! Keep up the good work."
	case hasHighPriority(insights):
		summary = "There are some areas that need attention. Review the insights below."
	default:
		summary = "A few optimization opportunities found. Small changes can make a big difference!"
	}

	respondJSON(w, http.StatusOK, models.InsightsResponse{
		ProfileID:   principal.ProfileID,
		GeneratedAt: now.Format("2006-01-02"),
		Insights:    insights,
		Summary:     summary,
	})
}

func (h *Handler) buildInsights(analysis models.SpendingAnalysisResponse) []models.Insight {
	insights := make([]models.Insight, 0, 4)

	if analysis.SavingsRate < 10 {
		insights = append(insights, models.Insight{
			InsightType: "SAVINGS_RATE",
			Title:       "Low Savings Rate",
			Message: fmt.Sprintf("Your savings rate is %.1f%%. "+
				"Aim for at least 20%% to build a healthy financial cushion.", analysis.SavingsRate),
			Priority:   "HIGH",
			ActionType: "INCREASE_SAVINGS",
		})
	} else if analysis.SavingsRate >= 30 {
		insights = append(insights, models.Insight{
			InsightType: "SAVINGS_RATE",
			Title:       "Excellent Savings!",
			Message: fmt.Sprintf("You're saving %.1f%% of your income. "+
				"Consider investing the surplus for better returns.", analysis.SavingsRate),
			Priority:   "LOW",
			ActionType: "INVEST",
		})
	}

	for i, cat := range analysis.PotentialSavingsCategories {
		if i == 2 {
			break
		}
		if cat.PercentOfIncome != nil && *cat.PercentOfIncome > h.cfg.HighSpendingThresholdPercent {
			insights = append(insights, models.Insight{
				InsightType: "HIGH_SPENDING",
				Title:       fmt.Sprintf("High %s Spending", titleCase(cat.Category)),
				Message: fmt.Sprintf("You spent %s on %s (%.1f%% of income). "+
					"Reducing by 20%% could save %s.",
					utils.FormatINR(cat.TotalAmount), strings.ToLower(cat.Category),
					*cat.PercentOfIncome, utils.FormatINR(cat.TotalAmount*0.2)),
				Category:   cat.Category,
				Amount:     utils.Round2(cat.TotalAmount * 0.2),
				Priority:   "MEDIUM",
				ActionType: "REDUCE_SPENDING",
			})
		}
	}

	if n := len(analysis.MonthlyTrend); n >= 2 {
		recent := analysis.MonthlyTrend[n-1]
		previous := analysis.MonthlyTrend[n-2]
		expenseChange := 0.0
		if previous.TotalExpense > 0 {
			expenseChange = (recent.TotalExpense - previous.TotalExpense) / previous.TotalExpense * 100
		}
		if expenseChange > 20 {
			insights = append(insights, models.Insight{
				InsightType: "EXPENSE_TREND",
				Title:       "Spending Increased",
				Message: fmt.Sprintf("Your expenses increased by %.0f%% compared to last month. "+
					"Review recent transactions to identify the cause.", expenseChange),
				Amount:     utils.Round2(recent.TotalExpense - previous.TotalExpense),
				Priority:   "MEDIUM",
				ActionType: "REVIEW_SPENDING",
			})
		}
	}

	return insights
}

func hasHighPriority(insights []models.Insight) bool {
	for _, i := range insights {
		if i.Priority == "HIGH" {
			return true
		}
	}
	return false
}

// decodeGoalRequest parses and validates the goal request body. The
// second return is the parsed deadline, nil when unset.
func (h *Handler) decodeGoalRequest(w http.ResponseWriter, r *http.Request) (models.GoalRecommendationRequest, *time.Time, bool) {
	var req models.GoalRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, "invalid request body: "+err.Error())
		return req, nil, false
	}
	if req.TargetAmount < 0 || req.CurrentAmount < 0 {
		h.badRequest(w, r, "goal amounts must be non-negative")
		return req, nil, false
	}

	var deadline *time.Time
	if req.Deadline != "" {
		d, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			h.badRequest(w, r, "deadline must be formatted as YYYY-MM-DD")
			return req, nil, false
		}
		deadline = &d
	}
	return req, deadline, true
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusUnauthorized, models.NewAPIError(models.CodeUnauthorized,
		http.StatusUnauthorized, "Authentication required. Please log in.", "", r.URL.Path))
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, detail string) {
	respondJSON(w, http.StatusBadRequest, models.NewAPIError(models.CodeBadRequest,
		http.StatusBadRequest, "Bad request.", detail, r.URL.Path))
}

func (h *Handler) feedError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Errorf("Failed to fetch transactions: %v", err)
	respondJSON(w, http.StatusBadGateway, models.NewAPIError(models.CodeInternalError,
		http.StatusBadGateway, "Could not fetch transaction data. Please try again later.", "", r.URL.Path))
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// titleCase turns "PERSONAL_CARE" into "Personal Care".
func titleCase(label string) string {
	words := strings.Split(strings.ToLower(strings.ReplaceAll(label, "_", " ")), " ")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
