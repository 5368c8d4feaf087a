package llm

import "context"

// message roles, aligned with the chat-completions wire format
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// one role-tagged entry in a completion request
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat-completion call.
type CompletionRequest struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// CompletionResponse carries the generated text and the provider's
// reported total token usage for the call.
type CompletionResponse struct {
	Text        string
	TotalTokens int
}

// TextGenerator produces a completion for a role-tagged message list.
type TextGenerator interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	Model() string
}

// Provider bundles the two models the service talks to: the main
// generator and a cheaper summarizer used for history compression.
type Provider struct {
	Generator  TextGenerator
	Summarizer TextGenerator
}

// holds configuration for LLM initialization
type Config struct {
	APIKey  string
	BaseURL string

	GeneratorModel       string // e.g., "deepseek-chat"
	GeneratorMaxTokens   int
	GeneratorTemperature float32
	GeneratorTopP        float32

	SummarizerModel     string
	SummarizerMaxTokens int

	// outbound call timeout; applies to both models
	RequestTimeoutSeconds int
}
