package llm

import (
	"fmt"
	"time"
)

// creates a new Provider with auto-configuration from environment variables
func NewProvider() (*Provider, error) {
	config, err := loadConfig()

	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewProviderWithConfig(config)
}

// creates a new Provider with explicit configuration
func NewProviderWithConfig(config *Config) (*Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	timeout := time.Duration(config.RequestTimeoutSeconds) * time.Second

	generator := NewChatClient(ChatClientConfig{
		APIKey:      config.APIKey,
		BaseURL:     config.BaseURL,
		Model:       config.GeneratorModel,
		MaxTokens:   config.GeneratorMaxTokens,
		Temperature: config.GeneratorTemperature,
		TopP:        config.GeneratorTopP,
		Timeout:     timeout,
	})

	summarizer := NewChatClient(ChatClientConfig{
		APIKey:    config.APIKey,
		BaseURL:   config.BaseURL,
		Model:     config.SummarizerModel,
		MaxTokens: config.SummarizerMaxTokens,
		// summaries should be deterministic-ish, keep sampling tight
		Temperature: 0.2,
		TopP:        1.0,
		Timeout:     timeout,
	})

	return &Provider{
		Generator:  generator,
		Summarizer: summarizer,
	}, nil
}
