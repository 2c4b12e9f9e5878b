// Package common provides shared utilities for the UI.
package common

// TruncateText truncates s to at most maxLen runes, marking the cut with "…".
func TruncateText(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return s
}
