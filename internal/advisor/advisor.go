// Package advisor generates personalized financial advice, using OpenAI
// when configured and a deterministic rule-based fallback otherwise.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/ametsa/advisor-service/internal/config"
	"github.com/ametsa/advisor-service/internal/models"
	"github.com/ametsa/advisor-service/internal/utils"
)

const insightsSystemPrompt = "You are an expert Indian financial advisor with deep knowledge of personal finance, " +
	"Indian tax laws, and investment instruments like SIPs, FDs, PPF, NPS, and mutual funds. " +
	"Provide accurate, actionable advice. Always respond with valid JSON."

const goalSystemPrompt = "You are an expert Indian financial advisor. Provide accurate, personalized advice " +
	"considering Indian financial instruments (SIPs, FDs, RDs, PPF). Be concise and encouraging."

// Advisor calls the OpenAI API for personalized insights. When no API
// key is configured, or any call fails, every method falls back to the
// rule-based generator instead of returning an error.
type Advisor struct {
	client *openai.Client
	cfg    *config.Config
	log    *logrus.Logger
}

// New initializes a new advisor. The OpenAI client is only constructed
// when an API key is present.
func New(cfg *config.Config, log *logrus.Logger) *Advisor {
	a := &Advisor{cfg: cfg, log: log}
	if cfg.OpenAIAPIKey != "" {
		a.client = openai.NewClient(cfg.OpenAIAPIKey)
	}
	return a
}

// Available reports whether the OpenAI integration is configured.
func (a *Advisor) Available() bool {
	return a.client != nil
}

// aiInsightPayload is the JSON shape requested from the model.
type aiInsightPayload struct {
	Summary         string `json:"summary"`
	Recommendations []struct {
		Title            string   `json:"title"`
		Message          string   `json:"message"`
		Priority         string   `json:"priority"`
		ActionType       string   `json:"action_type"`
		Category         string   `json:"category"`
		PotentialSavings *float64 `json:"potential_savings"`
	} `json:"recommendations"`
	PersonalizedTips     []string `json:"personalized_tips"`
	FinancialHealthScore int      `json:"financial_health_score"`
}

// GenerateInsights produces a full financial assessment.
func (a *Advisor) GenerateInsights(ctx context.Context, analysis models.SpendingAnalysisResponse, capacity models.SavingsCapacityResponse) models.AIInsightResponse {
	if !a.Available() {
		return FallbackInsights(analysis, capacity)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.cfg.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: insightsSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: insightsPrompt(analysis, capacity)},
		},
		Temperature: float32(a.cfg.OpenAITemperature),
		MaxTokens:   1200,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		a.log.Warnf("OpenAI insights call failed, using fallback: %v", err)
		return FallbackInsights(analysis, capacity)
	}
	if len(resp.Choices) == 0 {
		a.log.Warn("OpenAI insights call returned no choices, using fallback")
		return FallbackInsights(analysis, capacity)
	}

	var payload aiInsightPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		a.log.Warnf("OpenAI insights response is not valid JSON, using fallback: %v", err)
		return FallbackInsights(analysis, capacity)
	}

	recommendations := make([]models.AIRecommendation, 0, len(payload.Recommendations))
	for _, r := range payload.Recommendations {
		rec := models.AIRecommendation{
			Title:            r.Title,
			Message:          r.Message,
			Priority:         r.Priority,
			ActionType:       r.ActionType,
			Category:         r.Category,
			PotentialSavings: r.PotentialSavings,
			Confidence:       0.85,
		}
		if rec.Title == "" {
			rec.Title = "Recommendation"
		}
		if rec.Priority == "" {
			rec.Priority = "MEDIUM"
		}
		if rec.ActionType == "" {
			rec.ActionType = "BUDGET"
		}
		recommendations = append(recommendations, rec)
	}

	score := payload.FinancialHealthScore
	if score == 0 {
		score = 50
	}

	return models.AIInsightResponse{
		Summary:              payload.Summary,
		Recommendations:      recommendations,
		PersonalizedTips:     payload.PersonalizedTips,
		FinancialHealthScore: score,
	}
}

// GenerateGoalAdvice produces a short free-text advice paragraph for a
// specific goal.
func (a *Advisor) GenerateGoalAdvice(ctx context.Context, goal models.GoalRecommendationRequest, deadline *time.Time, capacity models.SavingsCapacityResponse, analysis models.SpendingAnalysisResponse, now time.Time) string {
	if !a.Available() {
		return FallbackGoalAdvice(goal, capacity)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.cfg.OpenAIModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: goalSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: goalPrompt(goal, deadline, capacity, analysis, now)},
		},
		Temperature: float32(a.cfg.OpenAITemperature),
		MaxTokens:   250,
	})
	if err != nil {
		a.log.Warnf("OpenAI goal advice call failed, using fallback: %v", err)
		return FallbackGoalAdvice(goal, capacity)
	}
	if len(resp.Choices) == 0 {
		return FallbackGoalAdvice(goal, capacity)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func insightsPrompt(analysis models.SpendingAnalysisResponse, capacity models.SavingsCapacityResponse) string {
	var categories strings.Builder
	for i, cat := range analysis.CategoryBreakdown {
		if i == 8 {
			break
		}
		fmt.Fprintf(&categories, "- %s: %s (%.1f%% of expenses)\n",
			cat.Category, utils.FormatINR(cat.TotalAmount), cat.PercentOfTotal)
	}

	return fmt.Sprintf(`You are a friendly Indian financial advisor helping a user manage their money better.
Analyze this spending data and provide personalized, actionable advice in a warm, encouraging tone.

SPENDING SUMMARY (Last %d months):
- Total Income: %s
- Total Expenses: %s
- Net Savings: %s
- Savings Rate: %.1f%%
- Monthly Average Income: %s
- Monthly Average Expense: %s

TOP SPENDING CATEGORIES:
%s
SAVINGS CAPACITY:
- Safe Monthly Savings: %s
- Current Savings Rate: %.1f%%
- Essential Expenses: %s
- Discretionary Expenses: %s

Provide your response as JSON with this structure:
{
    "summary": "2-3 sentence overall assessment",
    "recommendations": [
        {
            "title": "Short title",
            "message": "Detailed actionable advice (2-3 sentences)",
            "priority": "HIGH/MEDIUM/LOW",
            "action_type": "REDUCE_SPENDING/INCREASE_SAVINGS/INVEST/BUDGET/EMERGENCY_FUND",
            "category": "category if applicable",
            "potential_savings": amount if applicable
        }
    ],
    "personalized_tips": ["tip1", "tip2", "tip3"],
    "financial_health_score": 0-100
}

Focus on:
1. Specific categories where spending can be reduced
2. Realistic savings targets based on their income
3. Indian context (mention UPI, SIPs, FDs, etc. where relevant)
4. Encouraging tone - celebrate what they're doing well
`,
		len(analysis.MonthlyTrend),
		utils.FormatINR(analysis.TotalIncome),
		utils.FormatINR(analysis.TotalExpenses),
		utils.FormatINR(analysis.NetSavings),
		analysis.SavingsRate,
		utils.FormatINR(analysis.AvgMonthlyIncome),
		utils.FormatINR(analysis.AvgMonthlyExpense),
		categories.String(),
		utils.FormatINR(capacity.SafeMonthlySavings),
		capacity.CurrentSavingsRate,
		utils.FormatINR(capacity.AvgMonthlyEssentialExpenses),
		utils.FormatINR(capacity.AvgMonthlyDiscretionaryExpenses),
	)
}

func goalPrompt(goal models.GoalRecommendationRequest, deadline *time.Time, capacity models.SavingsCapacityResponse, analysis models.SpendingAnalysisResponse, now time.Time) string {
	remaining := goal.TargetAmount - goal.CurrentAmount

	monthsToDeadline := 12
	deadlineText := "Not set"
	if deadline != nil {
		monthsToDeadline = utils.MonthsBetween(now, *deadline)
		if monthsToDeadline < 1 {
			monthsToDeadline = 1
		}
		deadlineText = deadline.Format("2006-01-02")
	}

	return fmt.Sprintf(`As a friendly Indian financial advisor, give brief personalized advice for this savings goal:

GOAL: %s
Type: %s
Target: %s
Saved so far: %s
Remaining: %s
Deadline: %s
Months remaining: %d

USER'S FINANCIAL SITUATION:
- Monthly Income: %s
- Safe Monthly Savings Capacity: %s
- Current Savings Rate: %.1f%%

Required monthly saving: %s

Provide 2-3 sentences of encouraging, actionable advice specific to this goal.
Consider Indian context (mention relevant savings instruments if applicable).
`,
		goal.GoalName,
		goal.GoalType,
		utils.FormatINR(goal.TargetAmount),
		utils.FormatINR(goal.CurrentAmount),
		utils.FormatINR(remaining),
		deadlineText,
		monthsToDeadline,
		utils.FormatINR(analysis.AvgMonthlyIncome),
		utils.FormatINR(capacity.SafeMonthlySavings),
		capacity.CurrentSavingsRate,
		utils.FormatINR(remaining/float64(monthsToDeadline)),
	)
}
