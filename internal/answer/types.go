package answer

import (
	"context"
	"errors"

	"github.com/aibutsu/server/aibutsu/conversations"
)

// returned when the question is empty or whitespace-only; nothing is
// charged and nothing is persisted
var ErrEmptyQuestion = errors.New("question is empty")

// the consumption-side subset of the quota ledger
type Ledger interface {
	TryConsume(ctx context.Context, userID string, amount int) (bool, error)
	Refund(ctx context.Context, userID string, amount int) error
}

// turn persistence and history reads
type TurnStore interface {
	CreateRoot(ctx context.Context, userID, question, answer string) (string, error)
	Append(ctx context.Context, chatID, userID, question, answer string) (string, error)
	ListByChat(ctx context.Context, chatID string) ([]conversations.Turn, error)
}

// best-effort blob log of each exchange
type ChatLogger interface {
	AppendPair(ctx context.Context, chatID, userMessage, assistantMessage string) error
}

// Result is the outcome of one orchestrated turn. Limited marks a turn
// that ran into the budget: either refused up front (no answer was
// generated) or flagged after reconciliation (the answer is still
// delivered).
type Result struct {
	ChatID  string
	Answer  string
	Limited bool
}
