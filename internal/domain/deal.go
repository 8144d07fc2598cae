package domain

// Draw count bounds for DrawPositions.
const (
	MinDrawCount = 1
	MaxDrawCount = 31
)

// Deal resolves a selection against a shuffled order. Indices out of range
// or already used are skipped. An empty result is ErrNoValidPositions.
func Deal(selection []int, order []OrientedCard) (Hand, error) {
	seen := make(map[int]bool, len(selection))
	hand := make(Hand, 0, len(selection))
	for _, idx := range selection {
		if idx < 0 || idx >= len(order) || seen[idx] {
			continue
		}
		seen[idx] = true
		oc := order[idx]
		hand = append(hand, DealtCard{
			Card:     oc.Card,
			Reversed: oc.Reversed,
			Position: idx + 1,
		})
	}
	if len(hand) == 0 {
		return nil, ErrNoValidPositions
	}
	return hand, nil
}

// ClampDrawCount bounds n to [MinDrawCount, MaxDrawCount].
func ClampDrawCount(n int) int {
	return max(MinDrawCount, min(MaxDrawCount, n))
}

// DrawPositions picks up to n distinct 0-based indices in [0, deckLen).
// n is clamped first. It stops early once every index has been drawn.
func DrawPositions(rng RNG, n, deckLen int) []int {
	n = ClampDrawCount(n)
	seen := make(map[int]bool, n)
	picks := make([]int, 0, n)
	for len(picks) < n && len(seen) < deckLen {
		idx := int(rng.Float64() * float64(deckLen))
		if seen[idx] {
			continue
		}
		seen[idx] = true
		picks = append(picks, idx)
	}
	return picks
}
