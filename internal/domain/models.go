package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Float64 returns a pseudo-random value in [0, 1).
	Float64() float64
}

// Arcana separates the 22 trumps from the four suits.
type Arcana string

const (
	Major Arcana = "Major"
	Minor Arcana = "Minor"
)

// Orientation is the wire form of a card's reversed flag.
type Orientation string

const (
	Upright  Orientation = "upright"
	Reversed Orientation = "reversed"
)

// OrientationOf maps a reversed flag to its Orientation.
func OrientationOf(reversed bool) Orientation {
	if reversed {
		return Reversed
	}
	return Upright
}

// Card is an immutable tarot card. ID is its index in the canonical deck
// and is the only key used to match a card across two orders.
type Card struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	Arcana Arcana `json:"arcana"`
	Name   string `json:"name"`
	Suit   string `json:"suit,omitempty"`
	Rank   string `json:"rank,omitempty"`
}

// OrientedCard is a card at some position of a shuffled order.
type OrientedCard struct {
	Card
	Reversed bool `json:"reversed"`
}

// DealtCard is a card that has been dealt from a shuffled order.
// Position is 1-based.
type DealtCard struct {
	Card
	Reversed bool `json:"reversed"`
	Position int  `json:"position"`
}

// Hand is the ordered result of a deal.
type Hand []DealtCard

// Positions returns the 1-based positions of the hand in deal order.
func (h Hand) Positions() []int {
	out := make([]int, len(h))
	for i, c := range h {
		out[i] = c.Position
	}
	return out
}

// Deck is the canonical card sequence. Shuffles work on copies.
type Deck struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}
