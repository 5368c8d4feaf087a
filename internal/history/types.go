package history

import "context"

// Summarizer condenses one past turn into a short note. Implementations
// may call a cheap secondary model; failures are recovered inside the
// compressor, never surfaced.
type Summarizer interface {
	Summarize(ctx context.Context, question, answer string) (string, error)
}

// WeightFunc estimates the token weight of a text. This estimate shapes
// the prompt only; it is separate from the billing estimate the quota
// ledger uses.
type WeightFunc func(text string) int
