package domain

import (
	"strconv"
	"strings"
)

// ParsePositions extracts 1-based positions from free text and returns them
// as distinct 0-based indices in first-seen order. Every non-digit is a
// separator; values outside [1, deckLen] are dropped.
func ParsePositions(text string, deckLen int) []int {
	seen := make(map[int]bool)
	out := []int{}
	for _, run := range digitRuns(text) {
		n, err := strconv.Atoi(run)
		if err != nil || n < 1 || n > deckLen {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n-1)
	}
	return out
}

func digitRuns(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
}

// FormatPositions renders 0-based indices as "1, 5, 10".
func FormatPositions(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ", ")
}
