// Package textproc normalizes generated answers before they reach the
// user: markup is stripped, ellipses become full stops, question marks
// are capped, and overlong answers are trimmed at a fixed rune limit.
// The stages are fixed and run in a fixed order.
package textproc

import (
	"regexp"
	"strings"
)

// maximum answer length in runes before trimming applies
const trimLimit = 300

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	questionRuns     = regexp.MustCompile(`[?？]{2,}`)
	trailingKuTouTen = "、。"
)

// Process runs the full pipeline on one generated answer.
func Process(text string) string {
	text = StripTags(text)
	text = NormalizeEllipsis(text)
	text = LimitQuestionMarks(text)
	text = strings.TrimSpace(text)

	return TrimIfNeeded(text, trimLimit)
}

// StripTags removes markup-style tags the model occasionally emits.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// NormalizeEllipsis replaces trailing-off ellipses with a full stop;
// the persona speaks in complete sentences.
func NormalizeEllipsis(text string) string {
	text = strings.ReplaceAll(text, "...", "。")
	text = strings.ReplaceAll(text, "…", "。")

	return text
}

// LimitQuestionMarks collapses runs of question marks to a single one.
func LimitQuestionMarks(text string) string {
	return questionRuns.ReplaceAllStringFunc(text, func(run string) string {
		return string([]rune(run)[:1])
	})
}

// TrimIfNeeded cuts text at limit runes, dropping any dangling
// punctuation at the cut and closing with a full stop.
func TrimIfNeeded(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}

	trimmed := strings.TrimRight(string(runes[:limit]), trailingKuTouTen)

	return trimmed + "。"
}
