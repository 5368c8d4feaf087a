package tokens

import (
	"context"
	"errors"
	"testing"
)

// implements RewardLedger for testing
type mockRewardLedger struct {
	grantFunc func(ctx context.Context, userID string, amount int) error
	granted   []int
}

func (m *mockRewardLedger) GrantReward(ctx context.Context, userID string, amount int) error {
	m.granted = append(m.granted, amount)

	if m.grantFunc != nil {
		return m.grantFunc(ctx, userID, amount)
	}

	return nil
}

func TestRewardAdjustor_Apply(t *testing.T) {
	ledger := &mockRewardLedger{}
	adjustor := NewRewardAdjustor(ledger, 50)

	granted, err := adjustor.Apply(context.Background(), "user-1", 10)

	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if granted != 500 {
		t.Errorf("granted = %d, want 500", granted)
	}

	if len(ledger.granted) != 1 || ledger.granted[0] != 500 {
		t.Errorf("ledger credited %v, want [500]", ledger.granted)
	}
}

func TestRewardAdjustor_RejectsMissingUser(t *testing.T) {
	ledger := &mockRewardLedger{}
	adjustor := NewRewardAdjustor(ledger, 50)

	_, err := adjustor.Apply(context.Background(), "", 10)

	if err == nil {
		t.Fatal("expected error for missing user id")
	}

	if len(ledger.granted) != 0 {
		t.Errorf("ledger should not be touched on validation failure")
	}
}

func TestRewardAdjustor_RejectsNonPositiveUnits(t *testing.T) {
	ledger := &mockRewardLedger{}
	adjustor := NewRewardAdjustor(ledger, 50)

	for _, units := range []int{0, -5} {
		if _, err := adjustor.Apply(context.Background(), "user-1", units); err == nil {
			t.Errorf("expected error for %d units", units)
		}
	}

	if len(ledger.granted) != 0 {
		t.Errorf("ledger should not be touched on validation failure")
	}
}

func TestRewardAdjustor_PropagatesLedgerError(t *testing.T) {
	ledger := &mockRewardLedger{
		grantFunc: func(_ context.Context, _ string, _ int) error {
			return errors.New("database unavailable")
		},
	}
	adjustor := NewRewardAdjustor(ledger, 50)

	if _, err := adjustor.Apply(context.Background(), "user-1", 1); err == nil {
		t.Fatal("expected ledger error to propagate")
	}
}
