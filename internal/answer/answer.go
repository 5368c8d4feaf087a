// Package answer orchestrates one conversational turn: a two-phase
// token accounting pass around a single LLM call. The true cost of a
// completion is unknowable up front, so the orchestrator charges a
// deterministic estimate before calling the model and reconciles the
// provider-reported usage afterwards.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/aibutsu/server/internal/history"
	"github.com/aibutsu/server/internal/llm"
	"github.com/aibutsu/server/internal/logger"
	"github.com/aibutsu/server/internal/textproc"
)

type Orchestrator struct {
	ledger     Ledger
	turns      TurnStore
	compressor *history.Compressor
	generator  llm.TextGenerator
	chatLog    ChatLogger
}

func NewOrchestrator(
	ledger Ledger,
	turns TurnStore,
	compressor *history.Compressor,
	generator llm.TextGenerator,
	chatLog ChatLogger,
) *Orchestrator {
	return &Orchestrator{
		ledger:     ledger,
		turns:      turns,
		compressor: compressor,
		generator:  generator,
		chatLog:    chatLog,
	}
}

// StartThread answers the first question of a new thread. The prompt
// carries no history; on success the new chat id is returned.
func (o *Orchestrator) StartThread(ctx context.Context, userID, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	return o.respond(ctx, "", userID, question)
}

// ContinueThread answers a follow-up question on an existing thread,
// compressing prior turns into the prompt.
func (o *Orchestrator) ContinueThread(ctx context.Context, chatID, userID, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	return o.respond(ctx, chatID, userID, question)
}

// respond runs the two-phase accounting scheme. An empty chatID means a
// brand-new thread.
func (o *Orchestrator) respond(ctx context.Context, chatID, userID, question string) (*Result, error) {
	estimated := estimateCost(question)

	allowed, err := o.ledger.TryConsume(ctx, userID, estimated)
	if err != nil {
		return nil, fmt.Errorf("quota check failed: %w", err)
	}

	if !allowed {
		// refused before the model is called: nothing persisted
		return &Result{ChatID: chatID, Answer: limitedMessage, Limited: true}, nil
	}

	messages, err := o.buildPrompt(ctx, chatID, question)
	if err != nil {
		o.refund(ctx, userID, estimated)
		return nil, err
	}

	resp, err := o.generator.Complete(ctx, llm.CompletionRequest{Messages: messages})
	if err != nil {
		// upstream failure is recovered locally: the estimate is
		// returned and the turn never happened
		logger.ErrorErr(err, "completion failed, refunding estimate",
			"user_id", userID,
			"estimated_tokens", estimated,
		)
		o.refund(ctx, userID, estimated)

		return &Result{ChatID: chatID, Answer: apologyMessage}, nil
	}

	answerText := textproc.Process(resp.Text)

	// charge the shortfall when the call cost more than estimated; a
	// cheaper-than-estimated call is absorbed, not refunded
	limited := false

	if shortfall := resp.TotalTokens - estimated; shortfall > 0 {
		ok, err := o.ledger.TryConsume(ctx, userID, shortfall)
		if err != nil {
			return nil, fmt.Errorf("quota reconciliation failed: %w", err)
		}

		if !ok {
			// the answer is still delivered; only the next turn will be
			// blocked by the exhausted balance
			limited = true
		}
	}

	if chatID == "" {
		chatID, err = o.turns.CreateRoot(ctx, userID, question, answerText)
	} else {
		_, err = o.turns.Append(ctx, chatID, userID, question, answerText)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to persist turn: %w", err)
	}

	if logErr := o.chatLog.AppendPair(ctx, chatID, question, answerText); logErr != nil {
		logger.Warn("failed to append chat log blob",
			"chat_id", chatID,
			"error", logErr,
		)
	}

	return &Result{ChatID: chatID, Answer: answerText, Limited: limited}, nil
}

func (o *Orchestrator) buildPrompt(ctx context.Context, chatID, question string) ([]llm.Message, error) {
	prefix := promptPrefix()

	if chatID == "" {
		return append(prefix, llm.Message{Role: llm.RoleUser, Content: question}), nil
	}

	turns, err := o.turns.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to load thread history: %w", err)
	}

	return o.compressor.Build(ctx, prefix, turns, question), nil
}

func (o *Orchestrator) refund(ctx context.Context, userID string, amount int) {
	if err := o.ledger.Refund(ctx, userID, amount); err != nil {
		logger.ErrorErr(err, "failed to refund estimated tokens",
			"user_id", userID,
			"amount", amount,
		)
	}
}
