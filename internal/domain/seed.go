package domain

import (
	"slices"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSeedLength is the length of seeds produced by RandomSeed.
const RandomSeedLength = 8

// RandomSeed returns a short base-36 seed taken from the fractional digits
// of one draw.
func RandomSeed(rng RNG) string {
	x := rng.Float64()
	var b strings.Builder
	for range RandomSeedLength {
		x *= 36
		d := int(x)
		b.WriteByte(base36[d])
		x -= float64(d)
	}
	return b.String()
}

// DefaultSeed derives a lowercase seed from the clock in 10ms ticks, so two
// sessions opened in the same tick share a seed.
func DefaultSeed(now time.Time) string {
	n := now.UnixMilli() / 10
	if n < 0 {
		n = -n
	}
	var rev []byte
	for {
		rev = append(rev, byte('a'+n%26))
		if n < 26 {
			break
		}
		n /= 26
	}
	slices.Reverse(rev)
	return string(rev)
}
