package textutil

import (
	"math"
	"strings"
)

const barWidth = 10

// ConfidenceBar renders value as a 10-cell bar. Values are clamped to [0,1]
// for display only.
func ConfidenceBar(value float64) string {
	if math.IsNaN(value) {
		value = 0
	}
	filled := int(math.Max(0, math.Min(1, value)) * barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// ActionLine returns the first non-empty line of the "## Action" section of
// content, or "" when there is none.
func ActionLine(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.EqualFold(strings.TrimSpace(line), "## action") {
			continue
		}
		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next == "" {
				continue
			}
			if strings.HasPrefix(next, "#") {
				return ""
			}
			return next
		}
		return ""
	}
	return ""
}

// Truncate shortens s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
