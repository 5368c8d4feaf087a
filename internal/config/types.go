package config

import "time"

type Config struct {
	DatabaseURL    string
	SupabaseURL    string
	SupabaseKey    string
	DeepSeekAPIKey string
	AdminToken     string
	Environment    string

	// fixed reference timezone for the daily token reset
	ResetLocation *time.Location

	Quota QuotaConfig
}

// daily token budget settings
type QuotaConfig struct {
	// full daily allowance for free accounts, also the lazy-provision
	// starting balance
	FreeDailyLimit int

	// nil means premium accounts have no daily cap
	PremiumDailyLimit *int

	// tokens granted per raw ad-watch reward unit
	RewardExchangeRate int
}
