package domain_test

import (
	"slices"
	"testing"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

func ids(order []domain.OrientedCard) []int {
	out := make([]int, len(order))
	for i, c := range order {
		out[i] = c.ID
	}
	return out
}

func TestShuffle_Deterministic(t *testing.T) {
	deck := domain.BuildDeck()
	for _, seed := range []string{"12345", "a", "The Tower", "ünïcødé"} {
		a := domain.Shuffle(deck.Cards, domain.NewLCG(seed))
		b := domain.Shuffle(deck.Cards, domain.NewLCG(seed))
		if !slices.Equal(a, b) {
			t.Errorf("seed %q: shuffles differ", seed)
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	deck := domain.BuildDeck()
	order := domain.Shuffle(deck.Cards, domain.NewLCG("perm"))
	if len(order) != len(deck.Cards) {
		t.Fatalf("expected %d cards, got %d", len(deck.Cards), len(order))
	}
	got := ids(order)
	slices.Sort(got)
	for i, id := range got {
		if id != i {
			t.Fatalf("missing id %d", i)
		}
	}
}

func TestShuffle_InputUntouched(t *testing.T) {
	deck := domain.BuildDeck()
	before := slices.Clone(deck.Cards)
	_ = domain.Shuffle(deck.Cards, domain.NewLCG("x"))
	if !slices.Equal(before, deck.Cards) {
		t.Fatal("shuffle mutated its input")
	}
}

func TestShuffle_DrawCount(t *testing.T) {
	deck := domain.BuildDeck()
	for _, seed := range []string{"1", "12345", "zzz"} {
		rng := &countingRNG{rng: domain.NewLCG(seed)}
		domain.Shuffle(deck.Cards, rng)
		if rng.draws != 155 {
			t.Errorf("seed %q: expected 155 draws, got %d", seed, rng.draws)
		}
	}
}

func TestShuffle_KnownSeed(t *testing.T) {
	order := domain.Shuffle(domain.BuildDeck().Cards, domain.NewLCG("12345"))

	want := []struct {
		id       int
		name     string
		reversed bool
	}{
		{55, "Six of Swords", false},
		{71, "Eight of Pentacles", false},
		{52, "Three of Swords", false},
		{35, "King of Wands", true},
		{57, "Eight of Swords", true},
		{76, "Queen of Pentacles", true},
		{6, "The Lovers", false},
		{67, "Four of Pentacles", true},
		{36, "Ace of Cups", false},
		{18, "The Moon", true},
	}
	for i, w := range want {
		got := order[i]
		if got.ID != w.id || got.Name != w.name || got.Reversed != w.reversed {
			t.Errorf("position %d: expected %+v, got %+v", i+1, w, got)
		}
	}
}

func TestShuffle_OrientationFromThreshold(t *testing.T) {
	cards := domain.BuildDeck().Cards[:3]
	// Two permutation draws of 0.99 keep the order, then orientations.
	rng := &sequenceRNG{values: []float64{0.99, 0.99, 0.49, 0.5, 0}}
	order := domain.Shuffle(cards, rng)

	wantIDs := []int{0, 1, 2}
	if !slices.Equal(ids(order), wantIDs) {
		t.Fatalf("expected ids %v, got %v", wantIDs, ids(order))
	}
	wantRev := []bool{true, false, true}
	for i, c := range order {
		if c.Reversed != wantRev[i] {
			t.Errorf("card %d: expected reversed=%v", i, wantRev[i])
		}
	}
}

func TestCanonical(t *testing.T) {
	deck := domain.BuildDeck()
	order := domain.Canonical(deck.Cards)
	for i, c := range order {
		if c.Card != deck.Cards[i] || c.Reversed {
			t.Fatalf("position %d: expected upright %s", i+1, deck.Cards[i].Name)
		}
	}
}
