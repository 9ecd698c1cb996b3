// Package utils provides shared utilities for text, math, and logging.
package utils

// Truncate returns s truncated to maxLen bytes, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged. Display only; use TruncateRunes
// for content that is stored or re-processed.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// TruncateRunes returns the first max runes of s with no marker appended.
// Rune-based so multi-byte text is never cut mid-character.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == max {
			return s[:pos]
		}
		i++
	}
	return s
}
