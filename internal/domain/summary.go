package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DisplayName is the card name with a " (Reversed)" suffix when reversed.
func (d DealtCard) DisplayName() string {
	if d.Reversed {
		return d.Name + " (Reversed)"
	}
	return d.Name
}

// SpreadText is the one-line summary used for clipboard export.
func SpreadText(h Hand) string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.DisplayName()
	}
	return strings.Join(names, ", ")
}

// DealMessage is the three-line notification text for a deal:
// seed, positions, cards.
func DealMessage(seed string, h Hand) string {
	seedLine := "(random)"
	if seed != "" {
		seedLine = seed
	}
	positions := make([]string, len(h))
	for i, p := range h.Positions() {
		positions[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("Seed: %s\n%s\n%s", seedLine, strings.Join(positions, ", "), SpreadText(h))
}

// PositionsHint is the guidance shown when no position could be used.
func PositionsHint(deckLen int) string {
	return fmt.Sprintf("Enter positions like: 1, 5, 10 (within 1-%d)", deckLen)
}
