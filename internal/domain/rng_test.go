package domain_test

import (
	"testing"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// sequenceRNG returns values from a pre-set sequence.
type sequenceRNG struct {
	values []float64
	idx    int
}

func (r *sequenceRNG) Float64() float64 {
	v := r.values[r.idx%len(r.values)]
	r.idx++
	return v
}

// countingRNG counts draws made through it.
type countingRNG struct {
	rng   domain.RNG
	draws int
}

func (r *countingRNG) Float64() float64 {
	r.draws++
	return r.rng.Float64()
}

func TestNewLCG_KnownState(t *testing.T) {
	g := domain.NewLCG("12345")
	if g.State() != 46792755 {
		t.Fatalf("expected state 46792755, got %d", g.State())
	}

	want := []float64{0.8818402267061174, 0.33942597289569676, 0.2536021824926138}
	for i, w := range want {
		if got := g.Float64(); got != w {
			t.Errorf("draw %d: expected %v, got %v", i, w, got)
		}
	}
}

func TestNewLCG_ZeroStateForcedToOne(t *testing.T) {
	// "\x00" hashes to 0.
	g := domain.NewLCG("\x00")
	if g.State() != 1 {
		t.Fatalf("expected state 1, got %d", g.State())
	}
}

func TestNewLCG_Reproducible(t *testing.T) {
	a := domain.NewLCG("moonrise")
	b := domain.NewLCG("moonrise")
	for i := range 1000 {
		x, y := a.Float64(), b.Float64()
		if x != y {
			t.Fatalf("draw %d diverged: %v vs %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d out of range: %v", i, x)
		}
	}
}

func TestNewLCG_HashesUTF16Units(t *testing.T) {
	// U+1F319 is the surrogate pair D83C DF19.
	got := domain.NewLCG("\U0001F319").State()
	want := uint32(0xD83C)*31 + 0xDF19
	if got != want {
		t.Fatalf("expected state %d, got %d", want, got)
	}
}

func TestNewRNG_EmptySeedUsesFallback(t *testing.T) {
	fallback := &sequenceRNG{values: []float64{0.25}}
	rng := domain.NewRNG("", fallback)
	if rng != fallback {
		t.Fatal("expected fallback RNG for empty seed")
	}
	if _, ok := domain.NewRNG("x", fallback).(*domain.LCG); !ok {
		t.Fatal("expected LCG for non-empty seed")
	}
}
