package utils

import "strings"

// TruncateWords bounds 'text' to at most 'limit' whitespace-separated words.
// When the input is over the limit the first 'limit' words are rejoined with
// single spaces and "..." is appended; otherwise the input is returned
// verbatim, original whitespace and all. Re-applying to truncated output is a
// no-op since the word count is already at the limit.
func TruncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) > limit {
		return strings.Join(words[:limit], " ") + "..."
	}
	return text
}
