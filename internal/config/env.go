package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultFreeDailyLimit     = 6000
	defaultRewardExchangeRate = 50
	defaultResetTimezone      = "Asia/Tokyo"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have a .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	deepseekKey := os.Getenv("DEEPSEEK_API_KEY")
	adminToken := os.Getenv("ADMIN_TOKEN")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if supabaseURL == "" {
		return nil, fmt.Errorf("SUPABASE_URL environment variable is required")
	}

	if supabaseKey == "" {
		return nil, fmt.Errorf("SUPABASE_KEY environment variable is required")
	}

	if deepseekKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY environment variable is required")
	}

	if adminToken == "" {
		return nil, fmt.Errorf("ADMIN_TOKEN environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	tzName := os.Getenv("RESET_TIMEZONE")
	if tzName == "" {
		tzName = defaultResetTimezone
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_TIMEZONE %q: %w", tzName, err)
	}

	quota, err := loadQuotaConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:    databaseURL,
		SupabaseURL:    supabaseURL,
		SupabaseKey:    supabaseKey,
		DeepSeekAPIKey: deepseekKey,
		AdminToken:     adminToken,
		Environment:    environment,
		ResetLocation:  loc,
		Quota:          quota,
	}, nil
}

func loadQuotaConfig() (QuotaConfig, error) {
	quota := QuotaConfig{
		FreeDailyLimit:     defaultFreeDailyLimit,
		RewardExchangeRate: defaultRewardExchangeRate,
	}

	if v := os.Getenv("FREE_DAILY_TOKEN_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return quota, fmt.Errorf("invalid FREE_DAILY_TOKEN_LIMIT %q", v)
		}
		quota.FreeDailyLimit = limit
	}

	// unset means premium is uncapped
	if v := os.Getenv("PREMIUM_DAILY_TOKEN_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return quota, fmt.Errorf("invalid PREMIUM_DAILY_TOKEN_LIMIT %q", v)
		}
		quota.PremiumDailyLimit = &limit
	}

	if v := os.Getenv("REWARD_EXCHANGE_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil || rate <= 0 {
			return quota, fmt.Errorf("invalid REWARD_EXCHANGE_RATE %q", v)
		}
		quota.RewardExchangeRate = rate
	}

	return quota, nil
}
