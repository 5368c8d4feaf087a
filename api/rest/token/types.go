package token

// StatusResponse is returned by GET /token_status.
type StatusResponse struct {
	Remaining     int    `json:"remaining"`
	Used          int    `json:"used"`
	AdRewardCount int    `json:"ad_reward_count"`
	Plan          string `json:"plan"`
	Limit         int    `json:"limit"`
	LastResetDate string `json:"last_reset_date"`
}
