package domain

import "unicode/utf16"

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgModulus    = 1 << 32
)

// LCG is a 32-bit linear congruential generator seeded from a string.
// A given seed yields the same sequence on every platform.
type LCG struct {
	state uint32
}

// NewLCG hashes seed into the generator state. The hash walks the seed's
// UTF-16 code units so that non-ASCII seeds reproduce browser-made shuffles.
func NewLCG(seed string) *LCG {
	var state uint32
	for _, unit := range utf16.Encode([]rune(seed)) {
		state = state*31 + uint32(unit)
	}
	if state == 0 {
		state = 1
	}
	return &LCG{state: state}
}

// State exposes the current internal state.
func (g *LCG) State() uint32 { return g.state }

func (g *LCG) Float64() float64 {
	g.state = lcgMultiplier*g.state + lcgIncrement
	return float64(g.state) / lcgModulus
}

// NewRNG returns a seeded LCG, or fallback when seed is empty.
func NewRNG(seed string, fallback RNG) RNG {
	if seed == "" {
		return fallback
	}
	return NewLCG(seed)
}
