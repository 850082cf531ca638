package utils

import (
	"fmt"
	"strings"
)

// IsEmpty reports whether the string is empty or whitespace only.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FormatSeconds renders a duration in seconds as "1m 23.5s" (or "23.5s"
// under a minute) for progress summaries shown to volunteers.
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	if minutes == 0 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("%dm %.1fs", minutes, seconds-float64(minutes*60))
}
