package domain

import "slices"

// Shuffle returns a random permutation of cards with a fresh orientation per
// card. The input is left untouched. Draw order matters for reproducibility:
// len(cards)-1 permutation draws from the last index down, then one
// orientation draw per card in the shuffled order.
func Shuffle(cards []Card, rng RNG) []OrientedCard {
	perm := slices.Clone(cards)
	for i := len(perm) - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	out := make([]OrientedCard, len(perm))
	for i, c := range perm {
		out[i] = OrientedCard{Card: c, Reversed: rng.Float64() < 0.5}
	}
	return out
}

// Canonical returns cards in deck order, all upright.
func Canonical(cards []Card) []OrientedCard {
	out := make([]OrientedCard, len(cards))
	for i, c := range cards {
		out[i] = OrientedCard{Card: c}
	}
	return out
}
