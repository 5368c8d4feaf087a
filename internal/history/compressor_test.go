package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/internal/llm"
)

// implements Summarizer for testing
type mockSummarizer struct {
	summarizeFunc func(ctx context.Context, question, answer string) (string, error)
	calls         int
}

func (m *mockSummarizer) Summarize(ctx context.Context, question, answer string) (string, error) {
	m.calls++

	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, question, answer)
	}

	return "要約:" + question, nil
}

func makeTurns(n int) []conversations.Turn {
	turns := make([]conversations.Turn, n)
	for i := range turns {
		turns[i] = conversations.Turn{
			Question: fmt.Sprintf("質問%d", i),
			Answer:   fmt.Sprintf("回答%d", i),
		}
	}

	return turns
}

func testPrefix() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: "あなたは導き手です。"},
	}
}

func TestBuild_NoHistory(t *testing.T) {
	c := NewCompressor(&mockSummarizer{}, nil)

	messages := c.Build(context.Background(), testPrefix(), nil, "悩みがあります")

	if len(messages) != 2 {
		t.Fatalf("expected prefix + question, got %d messages", len(messages))
	}

	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser || last.Content != "悩みがあります" {
		t.Errorf("last message should be the question, got %+v", last)
	}
}

func TestBuild_RecentTurnsKeptVerbatim(t *testing.T) {
	c := NewCompressor(&mockSummarizer{}, nil)
	turns := makeTurns(2)

	messages := c.Build(context.Background(), testPrefix(), turns, "次の質問")

	// prefix + 2 pairs + question, no summaries
	if len(messages) != 1+4+1 {
		t.Fatalf("expected 6 messages, got %d", len(messages))
	}

	if messages[1].Content != "質問0" || messages[2].Content != "回答0" {
		t.Errorf("oldest verbatim pair wrong: %q / %q", messages[1].Content, messages[2].Content)
	}

	if messages[3].Content != "質問1" || messages[4].Content != "回答1" {
		t.Errorf("newest verbatim pair wrong: %q / %q", messages[3].Content, messages[4].Content)
	}
}

func TestBuild_OlderTurnsSummarized(t *testing.T) {
	summarizer := &mockSummarizer{}
	c := NewCompressor(summarizer, nil)
	turns := makeTurns(5)

	messages := c.Build(context.Background(), testPrefix(), turns, "次の質問")

	// 3 older turns summarized, 2 newest verbatim
	if summarizer.calls != 3 {
		t.Errorf("expected 3 summarizer calls, got %d", summarizer.calls)
	}

	// prefix, 3 summaries, 2 pairs, question
	if len(messages) != 1+3+4+1 {
		t.Fatalf("expected 9 messages, got %d", len(messages))
	}

	// summaries appear oldest-first, as assistant notes
	for i, want := range []string{"質問0", "質問1", "質問2"} {
		msg := messages[1+i]

		if msg.Role != llm.RoleAssistant {
			t.Errorf("summary %d has role %q, want assistant", i, msg.Role)
		}

		if !strings.HasPrefix(msg.Content, "【これまでの記録】") {
			t.Errorf("summary %d missing marker: %q", i, msg.Content)
		}

		if !strings.Contains(msg.Content, want) {
			t.Errorf("summary %d should mention %q, got %q", i, want, msg.Content)
		}
	}
}

func TestBuild_SummaryCountCapped(t *testing.T) {
	summarizer := &mockSummarizer{}
	c := NewCompressor(summarizer, nil)

	// 12 older turns but only 6 may survive as summaries
	turns := makeTurns(14)

	messages := c.Build(context.Background(), testPrefix(), turns, "次の質問")

	summaryCount := 0
	for _, m := range messages {
		if strings.HasPrefix(m.Content, "【これまでの記録】") {
			summaryCount++
		}
	}

	if summaryCount != 6 {
		t.Errorf("expected 6 summaries, got %d", summaryCount)
	}

	// the cap walks newest-first, so the 6 newest older turns survive
	// and the oldest are dropped
	joined := ""
	for _, m := range messages {
		joined += m.Content + "\n"
	}

	if strings.Contains(joined, "質問0\n") || strings.Contains(joined, "【これまでの記録】要約:質問5") {
		t.Errorf("oldest turns should have been dropped first:\n%s", joined)
	}

	if !strings.Contains(joined, "要約:質問11") {
		t.Errorf("newest older turn should survive as a summary:\n%s", joined)
	}
}

func TestBuild_BudgetStopsSummaries(t *testing.T) {
	// each summary weighs ~90 under the default weight, so only a
	// handful fit under the budget once the verbatim pairs are counted
	heavy := strings.Repeat("あ", 200)

	summarizer := &mockSummarizer{
		summarizeFunc: func(_ context.Context, _, _ string) (string, error) {
			return heavy, nil
		},
	}

	c := NewCompressor(summarizer, nil)
	turns := makeTurns(8)

	messages := c.Build(context.Background(), testPrefix(), turns, "次の質問")

	summaryCount := 0
	for _, m := range messages {
		if strings.HasPrefix(m.Content, "【これまでの記録】") {
			summaryCount++
		}
	}

	// summaries are clipped to 50 runes (~22 weight each); the budget
	// admits all six candidates here, so the cap must still hold
	if summaryCount > 6 {
		t.Errorf("summary count exceeded cap: %d", summaryCount)
	}

	// with an enormous weight function every summary breaches the budget
	c2 := NewCompressor(summarizer, func(string) int { return 500 })

	messages2 := c2.Build(context.Background(), testPrefix(), turns, "次の質問")

	for _, m := range messages2 {
		if strings.HasPrefix(m.Content, "【これまでの記録】") {
			t.Errorf("no summary should fit the budget, got %q", m.Content)
		}
	}
}

func TestSummarize_FallbackOnError(t *testing.T) {
	summarizer := &mockSummarizer{
		summarizeFunc: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}

	c := NewCompressor(summarizer, nil)

	question := strings.Repeat("問", 40)
	answer := strings.Repeat("答", 40)

	got := c.summarize(context.Background(), conversations.Turn{Question: question, Answer: answer})

	want := strings.Repeat("問", 25) + strings.Repeat("答", 25)
	if got != want {
		t.Errorf("fallback summary = %q, want %q", got, want)
	}
}

func TestSummarize_ClipsLongSummaries(t *testing.T) {
	summarizer := &mockSummarizer{
		summarizeFunc: func(_ context.Context, _, _ string) (string, error) {
			return strings.Repeat("長", 80), nil
		},
	}

	c := NewCompressor(summarizer, nil)

	got := c.summarize(context.Background(), conversations.Turn{Question: "q", Answer: "a"})

	if len([]rune(got)) != 50 {
		t.Errorf("summary length = %d runes, want 50", len([]rune(got)))
	}
}

func TestEnforceCeiling(t *testing.T) {
	c := NewCompressor(nil, nil)

	messages := make([]llm.Message, 30)
	for i := range messages {
		messages[i] = llm.Message{Role: llm.RoleUser, Content: fmt.Sprintf("m%d", i)}
	}

	trimmed := c.enforceCeiling(messages, 3)

	if len(trimmed) != 25 {
		t.Fatalf("expected 25 messages after trim, got %d", len(trimmed))
	}

	// exempt head survives untouched
	for i := 0; i < 3; i++ {
		if trimmed[i].Content != fmt.Sprintf("m%d", i) {
			t.Errorf("exempt message %d was displaced: %q", i, trimmed[i].Content)
		}
	}

	// newest entries keep their slots
	if trimmed[len(trimmed)-1].Content != "m29" {
		t.Errorf("newest message should survive, got %q", trimmed[len(trimmed)-1].Content)
	}

	if trimmed[3].Content != "m8" {
		t.Errorf("oldest non-exempt survivor should be m8, got %q", trimmed[3].Content)
	}
}

func TestDefaultWeight(t *testing.T) {
	if got := DefaultWeight(""); got != 0 {
		t.Errorf("empty text weight = %d, want 0", got)
	}

	if got := DefaultWeight("あ"); got != 1 {
		t.Errorf("single rune weight = %d, want 1", got)
	}

	if got := DefaultWeight(strings.Repeat("あ", 23)); got != 10 {
		t.Errorf("23 rune weight = %d, want 10", got)
	}
}
