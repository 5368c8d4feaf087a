package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/internal/history"
	"github.com/aibutsu/server/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements Ledger for testing
type mockLedger struct {
	tryConsumeFunc func(ctx context.Context, userID string, amount int) (bool, error)
	refundFunc     func(ctx context.Context, userID string, amount int) error

	consumeCalls []int
	refundCalls  []int
}

func (m *mockLedger) TryConsume(ctx context.Context, userID string, amount int) (bool, error) {
	m.consumeCalls = append(m.consumeCalls, amount)

	if m.tryConsumeFunc != nil {
		return m.tryConsumeFunc(ctx, userID, amount)
	}

	return true, nil
}

func (m *mockLedger) Refund(ctx context.Context, userID string, amount int) error {
	m.refundCalls = append(m.refundCalls, amount)

	if m.refundFunc != nil {
		return m.refundFunc(ctx, userID, amount)
	}

	return nil
}

// implements TurnStore for testing
type mockTurnStore struct {
	turns []conversations.Turn

	createdRoot bool
	appended    bool
	lastAnswer  string
}

func (m *mockTurnStore) CreateRoot(_ context.Context, _, _, answer string) (string, error) {
	m.createdRoot = true
	m.lastAnswer = answer

	return "chat-new", nil
}

func (m *mockTurnStore) Append(_ context.Context, chatID, _, _, answer string) (string, error) {
	m.appended = true
	m.lastAnswer = answer

	return chatID, nil
}

func (m *mockTurnStore) ListByChat(_ context.Context, _ string) ([]conversations.Turn, error) {
	return m.turns, nil
}

// implements ChatLogger for testing
type mockChatLogger struct {
	appendErr error
	calls     int
}

func (m *mockChatLogger) AppendPair(_ context.Context, _, _, _ string) error {
	m.calls++

	return m.appendErr
}

// implements llm.TextGenerator for testing
type mockGenerator struct {
	completeFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)
	calls        int
	lastRequest  llm.CompletionRequest
}

func (m *mockGenerator) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls++
	m.lastRequest = req

	if m.completeFunc != nil {
		return m.completeFunc(ctx, req)
	}

	return &llm.CompletionResponse{Text: "心を静めなさい。", TotalTokens: 100}, nil
}

func (m *mockGenerator) Model() string {
	return "mock-model"
}

// implements history.Summarizer for testing
type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, question, _ string) (string, error) {
	return question, nil
}

func newTestOrchestrator(ledger *mockLedger, turns *mockTurnStore, gen *mockGenerator, log *mockChatLogger) *Orchestrator {
	compressor := history.NewCompressor(stubSummarizer{}, nil)

	return NewOrchestrator(ledger, turns, compressor, gen, log)
}

func TestStartThread_Success(t *testing.T) {
	ledger := &mockLedger{}
	turns := &mockTurnStore{}
	gen := &mockGenerator{}
	log := &mockChatLogger{}

	o := newTestOrchestrator(ledger, turns, gen, log)

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.Equal(t, "chat-new", result.ChatID)
	assert.Equal(t, "心を静めなさい。", result.Answer)
	assert.False(t, result.Limited)

	// 5 runes / 2.2 = 2, plus the 300 token response buffer
	require.Len(t, ledger.consumeCalls, 1)
	assert.Equal(t, 302, ledger.consumeCalls[0])

	assert.True(t, turns.createdRoot)
	assert.Equal(t, 1, log.calls)
}

func TestStartThread_EmptyQuestion(t *testing.T) {
	ledger := &mockLedger{}

	o := newTestOrchestrator(ledger, &mockTurnStore{}, &mockGenerator{}, &mockChatLogger{})

	_, err := o.StartThread(context.Background(), "user-1", "   ")

	require.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, ledger.consumeCalls, "nothing should be charged for an empty question")
}

func TestStartThread_QuotaRefused(t *testing.T) {
	ledger := &mockLedger{
		tryConsumeFunc: func(_ context.Context, _ string, _ int) (bool, error) {
			return false, nil
		},
	}
	turns := &mockTurnStore{}
	gen := &mockGenerator{}
	log := &mockChatLogger{}

	o := newTestOrchestrator(ledger, turns, gen, log)

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.True(t, result.Limited)
	assert.Equal(t, limitedMessage, result.Answer)
	assert.Empty(t, result.ChatID)

	// the model is never called and nothing is persisted
	assert.Equal(t, 0, gen.calls)
	assert.False(t, turns.createdRoot)
	assert.Equal(t, 0, log.calls)
}

func TestStartThread_ShortfallCharged(t *testing.T) {
	ledger := &mockLedger{}
	turns := &mockTurnStore{}
	gen := &mockGenerator{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: "答え。", TotalTokens: 500}, nil
		},
	}

	o := newTestOrchestrator(ledger, turns, gen, &mockChatLogger{})

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.False(t, result.Limited)

	// estimate 302, actual 500, shortfall 198
	require.Len(t, ledger.consumeCalls, 2)
	assert.Equal(t, 302, ledger.consumeCalls[0])
	assert.Equal(t, 198, ledger.consumeCalls[1])
}

func TestStartThread_CheaperThanEstimateNotRefunded(t *testing.T) {
	ledger := &mockLedger{}
	gen := &mockGenerator{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: "答え。", TotalTokens: 50}, nil
		},
	}

	o := newTestOrchestrator(ledger, &mockTurnStore{}, gen, &mockChatLogger{})

	_, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.Len(t, ledger.consumeCalls, 1, "no reconciliation charge when cheaper than estimated")
	assert.Empty(t, ledger.refundCalls)
}

func TestStartThread_ShortfallRefusedStillDelivers(t *testing.T) {
	calls := 0
	ledger := &mockLedger{
		tryConsumeFunc: func(_ context.Context, _ string, _ int) (bool, error) {
			calls++
			// first charge passes, the reconciliation charge is refused
			return calls == 1, nil
		},
	}
	turns := &mockTurnStore{}
	gen := &mockGenerator{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: "答え。", TotalTokens: 500}, nil
		},
	}

	o := newTestOrchestrator(ledger, turns, gen, &mockChatLogger{})

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.True(t, result.Limited, "exhausted balance flags the turn")
	assert.Equal(t, "答え。", result.Answer, "the answer is still delivered")
	assert.True(t, turns.createdRoot, "the turn is still persisted")
}

func TestStartThread_UpstreamFailureRefunds(t *testing.T) {
	ledger := &mockLedger{}
	turns := &mockTurnStore{}
	gen := &mockGenerator{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return nil, errors.New("upstream timeout")
		},
	}
	log := &mockChatLogger{}

	o := newTestOrchestrator(ledger, turns, gen, log)

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.Equal(t, apologyMessage, result.Answer)
	assert.False(t, result.Limited)

	// the pre-charged estimate is returned and nothing is persisted
	require.Len(t, ledger.refundCalls, 1)
	assert.Equal(t, 302, ledger.refundCalls[0])
	assert.False(t, turns.createdRoot)
	assert.Equal(t, 0, log.calls)
}

func TestStartThread_ChatLogFailureIgnored(t *testing.T) {
	turns := &mockTurnStore{}
	log := &mockChatLogger{appendErr: errors.New("storage unavailable")}

	o := newTestOrchestrator(&mockLedger{}, turns, &mockGenerator{}, log)

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.Equal(t, "chat-new", result.ChatID)
	assert.True(t, turns.createdRoot, "blob log failure must not block persistence")
}

func TestContinueThread_UsesHistory(t *testing.T) {
	turns := &mockTurnStore{
		turns: []conversations.Turn{
			{Question: "前の質問", Answer: "前の回答"},
		},
	}
	gen := &mockGenerator{}

	o := newTestOrchestrator(&mockLedger{}, turns, gen, &mockChatLogger{})

	result, err := o.ContinueThread(context.Background(), "chat-7", "user-1", "続きです")

	require.NoError(t, err)
	assert.Equal(t, "chat-7", result.ChatID)
	assert.True(t, turns.appended)
	assert.False(t, turns.createdRoot)

	// prior turn flows into the prompt verbatim
	var sawHistory bool
	for _, m := range gen.lastRequest.Messages {
		if m.Content == "前の質問" {
			sawHistory = true
		}
	}

	assert.True(t, sawHistory, "prompt should carry the prior turn")
}

func TestStartThread_AnswerIsPostProcessed(t *testing.T) {
	turns := &mockTurnStore{}
	gen := &mockGenerator{
		completeFunc: func(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
			return &llm.CompletionResponse{Text: "<answer>それでよい</answer>…", TotalTokens: 50}, nil
		},
	}

	o := newTestOrchestrator(&mockLedger{}, turns, gen, &mockChatLogger{})

	result, err := o.StartThread(context.Background(), "user-1", "こんにちは")

	require.NoError(t, err)
	assert.Equal(t, "それでよい。", result.Answer)
	assert.Equal(t, "それでよい。", turns.lastAnswer, "the processed form is what gets persisted")
}

func TestEstimateCost(t *testing.T) {
	// empty input still carries the response buffer plus the one token floor
	assert.Equal(t, 301, estimateCost(""))

	// 23 runes / 2.2 rounds down to 10
	assert.Equal(t, 310, estimateCost("あいうえおかきくけこさしすせそたちつてとなにぬ"))
}
