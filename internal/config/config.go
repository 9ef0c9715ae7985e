package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration. Read-only after startup.
type Config struct {
	Port           string
	LogLevel       string
	CoreServiceURL string

	// JWT validation (must match the UAM service issuer).
	JWTSecret string
	JWTIssuer string

	// Optional OpenAI integration for AI-generated advice.
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float64

	// Analysis thresholds.
	DefaultAnalysisMonths            int
	MinTransactionsForAnalysis       int
	HighSpendingThresholdPercent     float64
	SavingsPotentialThresholdPercent float64
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                             getEnv("PORT", "8082"),
		LogLevel:                         getEnv("LOG_LEVEL", "INFO"),
		CoreServiceURL:                   getEnv("CORE_SERVICE_URL", "http://localhost:8080"),
		JWTSecret:                        getEnv("JWT_SECRET", ""),
		JWTIssuer:                        getEnv("JWT_ISSUER", "smart-bachat"),
		OpenAIAPIKey:                     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:                      getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAITemperature:                getEnvFloat("OPENAI_TEMPERATURE", 0.3),
		DefaultAnalysisMonths:            getEnvInt("DEFAULT_ANALYSIS_MONTHS", 6),
		MinTransactionsForAnalysis:       getEnvInt("MIN_TRANSACTIONS_FOR_ANALYSIS", 10),
		HighSpendingThresholdPercent:     getEnvFloat("HIGH_SPENDING_THRESHOLD_PERCENT", 30.0),
		SavingsPotentialThresholdPercent: getEnvFloat("SAVINGS_POTENTIAL_THRESHOLD_PERCENT", 10.0),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CoreServiceURL == "" {
		return nil, fmt.Errorf("CORE_SERVICE_URL is required")
	}
	if cfg.DefaultAnalysisMonths < 1 || cfg.DefaultAnalysisMonths > 24 {
		return nil, fmt.Errorf("DEFAULT_ANALYSIS_MONTHS must be between 1 and 24")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
