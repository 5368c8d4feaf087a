package tokens

import "time"

// account plans
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Account is one row of the user_tokens table: the per-user daily token
// budget and its lifetime counters.
type Account struct {
	UserID          string    `json:"user_id"`
	TokensRemaining int       `json:"tokens_remaining"`
	DailyUsed       int       `json:"daily_used"`
	DailyRewarded   int       `json:"daily_rewarded"`
	TotalUsed       int       `json:"total_used"`
	TotalRewarded   int       `json:"total_rewarded"`
	Plan            string    `json:"plan"`
	LastResetDate   time.Time `json:"last_reset_date"`
}

// Config controls the daily budget amounts.
type Config struct {
	// full daily allowance for free accounts, also the starting balance
	// for lazily provisioned accounts
	FreeDailyLimit int

	// nil means premium accounts have no daily cap; reset and bulk reset
	// leave their balance untouched
	PremiumDailyLimit *int
}

// returns the daily cap for a plan, nil when uncapped
func (c Config) dailyLimitFor(plan string) *int {
	if plan == PlanPremium {
		return c.PremiumDailyLimit
	}

	limit := c.FreeDailyLimit

	return &limit
}
