package answer

import "unicode/utf8"

const (
	// rough ratio for Japanese input text
	charsPerToken = 2.2

	// flat buffer covering the generated response
	responseBufferTokens = 300
)

// estimateCost is the cheap pre-call billing estimate: input length at
// a fixed character-to-token ratio plus a fixed response buffer. Never
// touches the network; the actual usage reported by the provider is
// reconciled afterwards.
func estimateCost(question string) int {
	base := int(float64(utf8.RuneCountInString(question)) / charsPerToken)
	if base < 1 {
		base = 1
	}

	return base + responseBufferTokens
}
