package domain

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"time"
)

// tieBreak separates cards whose interpolated positions coincide. It is small
// enough that id*tieBreak never crosses a whole position for any real deck.
const tieBreak = 1e-6

// DefaultAnimationSteps and DefaultAnimationDuration describe a one second,
// seven frame shuffle.
const (
	DefaultAnimationSteps    = 7
	DefaultAnimationDuration = time.Second
)

// Animator interpolates between two shuffled orders of the same cards.
// It holds no timing state: the caller decides when to ask for a frame.
type Animator struct {
	start     []OrientedCard
	target    []OrientedCard
	steps     int
	startIdx  map[int]int
	targetIdx map[int]int
	startRev  map[int]bool
	targetRev map[int]bool
}

// NewAnimator indexes start and target once. Both orders must hold the same
// set of card ids.
func NewAnimator(start, target []OrientedCard, steps int) (*Animator, error) {
	if steps < 1 {
		return nil, ErrInvalidSteps
	}
	if len(start) != len(target) {
		return nil, ErrOrderMismatch
	}

	a := &Animator{
		start:     slices.Clone(start),
		target:    slices.Clone(target),
		steps:     steps,
		startIdx:  make(map[int]int, len(start)),
		targetIdx: make(map[int]int, len(target)),
		startRev:  make(map[int]bool, len(start)),
		targetRev: make(map[int]bool, len(target)),
	}
	for i, c := range start {
		a.startIdx[c.ID] = i
		a.startRev[c.ID] = c.Reversed
	}
	for i, c := range target {
		a.targetIdx[c.ID] = i
		a.targetRev[c.ID] = c.Reversed
	}
	if len(a.startIdx) != len(start) || len(a.targetIdx) != len(target) {
		return nil, ErrOrderMismatch
	}
	for id := range a.startIdx {
		if _, ok := a.targetIdx[id]; !ok {
			return nil, ErrOrderMismatch
		}
	}
	return a, nil
}

func (a *Animator) Steps() int { return a.steps }

// Target returns a copy of the order the animation settles on.
func (a *Animator) Target() []OrientedCard { return slices.Clone(a.target) }

// Frame computes the order shown at step s. Step 0 (or less) is the start
// order and step Steps (or more) is exactly the target.
func (a *Animator) Frame(s int) []OrientedCard {
	if s <= 0 {
		return slices.Clone(a.start)
	}
	if s >= a.steps {
		return slices.Clone(a.target)
	}

	progress := float64(s) / float64(a.steps)
	type keyed struct {
		card OrientedCard
		key  float64
	}
	frame := make([]keyed, len(a.start))
	for i, c := range a.start {
		si := float64(a.startIdx[c.ID])
		ti := float64(a.targetIdx[c.ID])
		frame[i] = keyed{
			card: OrientedCard{Card: c.Card, Reversed: a.orientation(c.ID, s)},
			key:  si + (ti-si)*progress + float64(c.ID)*tieBreak,
		}
	}
	slices.SortStableFunc(frame, func(x, y keyed) int {
		return cmp.Compare(x.key, y.key)
	})

	out := make([]OrientedCard, len(frame))
	for i, k := range frame {
		out[i] = k.card
	}
	return out
}

// orientation flickers a card whose start and target orientation differ:
// flipped on odd intermediate steps, settled on the last one.
func (a *Animator) orientation(id, s int) bool {
	from, to := a.startRev[id], a.targetRev[id]
	if from == to {
		return from
	}
	if s >= a.steps {
		return to
	}
	if s%2 == 1 {
		return !from
	}
	return from
}

// Frames yields steps 1..Steps in order.
func (a *Animator) Frames() iter.Seq2[int, []OrientedCard] {
	return func(yield func(int, []OrientedCard) bool) {
		for s := 1; s <= a.steps; s++ {
			if !yield(s, a.Frame(s)) {
				return
			}
		}
	}
}

// FrameInterval spreads total evenly over steps, rounded to the millisecond.
func FrameInterval(total time.Duration, steps int) time.Duration {
	if steps < 1 {
		steps = 1
	}
	ms := math.Round(float64(total.Milliseconds()) / float64(steps))
	return time.Duration(ms) * time.Millisecond
}
