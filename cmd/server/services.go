package main

import (
	"fmt"

	"github.com/aibutsu/server/aibutsu/conversations"
	"github.com/aibutsu/server/aibutsu/tokens"
	"github.com/aibutsu/server/internal/answer"
	"github.com/aibutsu/server/internal/chatlog"
	"github.com/aibutsu/server/internal/config"
	"github.com/aibutsu/server/internal/history"
	"github.com/aibutsu/server/internal/llm"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, tokenRepo *tokens.Repository, turnRepo *conversations.Repository) (*Services, error) {
	provider, err := llm.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	logClient := chatlog.NewClient(cfg.SupabaseURL, cfg.SupabaseKey)

	summarizer := history.NewModelSummarizer(provider.Summarizer)
	compressor := history.NewCompressor(summarizer, history.DefaultWeight)

	orchestrator := answer.NewOrchestrator(
		tokenRepo,
		turnRepo,
		compressor,
		provider.Generator,
		logClient,
	)

	adjustor := tokens.NewRewardAdjustor(tokenRepo, cfg.Quota.RewardExchangeRate)

	return &Services{
		LLM:          provider,
		Orchestrator: orchestrator,
		Adjustor:     adjustor,
		ChatLog:      logClient,
	}, nil
}
