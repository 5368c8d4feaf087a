package history

import (
	"context"
	"fmt"

	"github.com/aibutsu/server/internal/llm"
)

const summarizerInstruction = "次の問答を50文字以内で一行に要約してください。要約のみを出力すること。"

// ModelSummarizer condenses turns via the cheap secondary model.
type ModelSummarizer struct {
	generator llm.TextGenerator
}

func NewModelSummarizer(generator llm.TextGenerator) *ModelSummarizer {
	return &ModelSummarizer{generator: generator}
}

func (s *ModelSummarizer) Summarize(ctx context.Context, question, answer string) (string, error) {
	resp, err := s.generator.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: summarizerInstruction},
			{Role: llm.RoleUser, Content: fmt.Sprintf("問: %s\n答: %s", question, answer)},
		},
	})

	if err != nil {
		return "", fmt.Errorf("summarization call failed: %w", err)
	}

	return resp.Text, nil
}
