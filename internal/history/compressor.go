package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/internal/llm"
)

const (
	// most recent turns included verbatim as user/assistant pairs
	fullPairLimit = 2

	// older turns included as one-line summaries, at most
	summaryPairMax = 6

	// estimated token weight allowed for the history portion of the
	// prompt (current question + verbatim pairs + summaries)
	historyTokenBudget = 900

	// total prompt entries never exceed this many roles
	roleCeiling = 25

	summaryMaxRunes    = 50
	fallbackSliceRunes = 25
)

// Compressor converts a thread's full history into a bounded prompt:
// the newest turns verbatim, older turns as short summary notes, and a
// hard ceiling on total entries.
type Compressor struct {
	summarizer Summarizer
	weight     WeightFunc
}

// creates a compressor; a nil weight falls back to DefaultWeight
func NewCompressor(summarizer Summarizer, weight WeightFunc) *Compressor {
	if weight == nil {
		weight = DefaultWeight
	}

	return &Compressor{
		summarizer: summarizer,
		weight:     weight,
	}
}

// Build assembles the prompt for one turn: prefix (system instruction
// and exemplars), summary notes oldest-first, verbatim recent pairs
// oldest-first, then the current question.
func (c *Compressor) Build(ctx context.Context, prefix []llm.Message, turns []conversations.Turn, question string) []llm.Message {
	verbatim := turns
	if len(verbatim) > fullPairLimit {
		verbatim = verbatim[len(verbatim)-fullPairLimit:]
	}

	older := turns[:len(turns)-len(verbatim)]

	// running weight of the history portion: the current question and
	// the verbatim pairs are committed up front, summaries compete for
	// what remains
	budget := c.weight(question)
	for _, t := range verbatim {
		budget += c.weight(t.Question) + c.weight(t.Answer)
	}

	summaries := c.collectSummaries(ctx, older, budget)

	messages := make([]llm.Message, 0, len(prefix)+len(summaries)+len(verbatim)*2+1)
	messages = append(messages, prefix...)

	for _, s := range summaries {
		messages = append(messages, llm.Message{
			Role:    llm.RoleAssistant,
			Content: fmt.Sprintf("【これまでの記録】%s", s),
		})
	}

	for _, t := range verbatim {
		messages = append(messages,
			llm.Message{Role: llm.RoleUser, Content: t.Question},
			llm.Message{Role: llm.RoleAssistant, Content: t.Answer},
		)
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	return c.enforceCeiling(messages, len(prefix))
}

// walks older turns newest-first, accepting summaries until either the
// count cap or the weight budget is hit; the first breach stops the
// scan. Returned summaries are re-ordered oldest-first.
func (c *Compressor) collectSummaries(ctx context.Context, older []conversations.Turn, budget int) []string {
	var collected []string

	for i := len(older) - 1; i >= 0; i-- {
		if len(collected) == summaryPairMax {
			break
		}

		summary := c.summarize(ctx, older[i])

		weight := c.weight(summary)
		if budget+weight > historyTokenBudget {
			break
		}

		budget += weight
		collected = append(collected, summary)
	}

	// newest was collected first; flip to chronological order
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}

	return collected
}

// produces a short summary of one turn, degrading to a deterministic
// truncation when the summarizer fails
func (c *Compressor) summarize(ctx context.Context, turn conversations.Turn) string {
	if c.summarizer != nil {
		summary, err := c.summarizer.Summarize(ctx, turn.Question, turn.Answer)
		if err == nil && strings.TrimSpace(summary) != "" {
			return truncateRunes(strings.TrimSpace(summary), summaryMaxRunes)
		}
	}

	fallback := truncateRunes(turn.Question, fallbackSliceRunes) + truncateRunes(turn.Answer, fallbackSliceRunes)

	return truncateRunes(fallback, summaryMaxRunes)
}

// drops oldest non-exempt entries when the total exceeds the role
// ceiling; the prefix entries are exempt and the newest entries keep
// their slots
func (c *Compressor) enforceCeiling(messages []llm.Message, exempt int) []llm.Message {
	if len(messages) <= roleCeiling {
		return messages
	}

	keep := roleCeiling - exempt

	trimmed := make([]llm.Message, 0, roleCeiling)
	trimmed = append(trimmed, messages[:exempt]...)
	trimmed = append(trimmed, messages[len(messages)-keep:]...)

	return trimmed
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
