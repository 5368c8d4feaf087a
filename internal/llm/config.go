package llm

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultBaseURL = "https://api.deepseek.com/v1"

	defaultGeneratorModel       = "deepseek-chat"
	defaultGeneratorMaxTokens   = 180 // roughly 200 Japanese characters
	defaultGeneratorTemperature = 0.65
	defaultGeneratorTopP        = 0.9

	defaultSummarizerModel     = "deepseek-chat"
	defaultSummarizerMaxTokens = 60

	defaultRequestTimeoutSeconds = 45
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY environment variable is required")
	}

	baseURL := os.Getenv("DEEPSEEK_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		generatorModel = defaultGeneratorModel
	}

	summarizerModel := os.Getenv("SUMMARIZER_MODEL")
	if summarizerModel == "" {
		summarizerModel = defaultSummarizerModel
	}

	generatorMaxTokens := defaultGeneratorMaxTokens
	if v := os.Getenv("GENERATOR_MAX_TOKENS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(defaultGeneratorTemperature)
	if v := os.Getenv("GENERATOR_TEMPERATURE"); v != "" {
		if val, err := strconv.ParseFloat(v, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	timeoutSeconds := defaultRequestTimeoutSeconds
	if v := os.Getenv("LLM_REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			timeoutSeconds = val
		}
	}

	return &Config{
		APIKey:                apiKey,
		BaseURL:               baseURL,
		GeneratorModel:        generatorModel,
		GeneratorMaxTokens:    generatorMaxTokens,
		GeneratorTemperature:  generatorTemperature,
		GeneratorTopP:         defaultGeneratorTopP,
		SummarizerModel:       summarizerModel,
		SummarizerMaxTokens:   defaultSummarizerMaxTokens,
		RequestTimeoutSeconds: timeoutSeconds,
	}, nil
}
