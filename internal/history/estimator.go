package history

import "unicode/utf8"

// rough ratio for Japanese text; matches the billing-side heuristic but
// the two estimates are applied independently
const charsPerToken = 2.2

// DefaultWeight approximates token weight from rune count. Used when no
// tokenizer-backed WeightFunc is plugged in.
func DefaultWeight(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}

	w := int(float64(n) / charsPerToken)
	if w < 1 {
		w = 1
	}

	return w
}
