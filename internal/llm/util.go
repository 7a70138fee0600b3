// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"strings"
	"unicode/utf8"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// JSONCandidate returns the span from the first '{' to the last '}' inclusive.
// Prose or code fences around the object are dropped. When the text has no
// such span the whole text is returned and found is false.
func JSONCandidate(text string) (candidate string, found bool) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 {
		return text, false
	}
	if last < first {
		// Braces present but out of order; nothing between them can parse.
		return "", true
	}
	return text[first : last+1], true
}

// EstimateTokens approximates a token count as ceil(chars/4). It is a
// heuristic for when the provider reports no usage, not an exact count.
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}
