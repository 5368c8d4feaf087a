package tokens

import (
	"context"
	"fmt"
)

// the reward-granting subset of the ledger
type RewardLedger interface {
	GrantReward(ctx context.Context, userID string, amount int) error
}

// RewardAdjustor converts raw ad-watch reward units into token credit.
// Duplicate delivery of the same external callback grants twice;
// deduplication belongs to the callback sender.
type RewardAdjustor struct {
	ledger       RewardLedger
	exchangeRate int
}

// creates a reward adjustor with the given tokens-per-unit exchange rate
func NewRewardAdjustor(ledger RewardLedger, exchangeRate int) *RewardAdjustor {
	return &RewardAdjustor{
		ledger:       ledger,
		exchangeRate: exchangeRate,
	}
}

// Apply validates the reward signal and credits rawUnits * rate tokens.
// Returns the number of tokens granted.
func (a *RewardAdjustor) Apply(ctx context.Context, userID string, rawUnits int) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("reward requires a user id")
	}

	if rawUnits <= 0 {
		return 0, fmt.Errorf("reward amount must be positive, got %d", rawUnits)
	}

	granted := rawUnits * a.exchangeRate

	if err := a.ledger.GrantReward(ctx, userID, granted); err != nil {
		return 0, fmt.Errorf("failed to credit reward: %w", err)
	}

	return granted, nil
}
