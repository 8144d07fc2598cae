package domain_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

func animPair(t *testing.T) ([]domain.OrientedCard, []domain.OrientedCard) {
	t.Helper()
	deck := domain.BuildDeck()
	return domain.Shuffle(deck.Cards, domain.NewLCG("start")), domain.Shuffle(deck.Cards, domain.NewLCG("target"))
}

func TestAnimator_FinalFrameIsTarget(t *testing.T) {
	start, target := animPair(t)
	anim, err := domain.NewAnimator(start, target, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := anim.Frame(7); !slices.Equal(got, target) {
		t.Fatal("frame 7 does not equal target")
	}
}

func TestAnimator_AgreeingOrientationHeld(t *testing.T) {
	start, target := animPair(t)
	anim, err := domain.NewAnimator(start, target, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	startRev := make(map[int]bool)
	for _, c := range start {
		startRev[c.ID] = c.Reversed
	}
	agree := make(map[int]bool)
	for _, c := range target {
		if startRev[c.ID] == c.Reversed {
			agree[c.ID] = true
		}
	}
	if len(agree) == 0 || len(agree) == len(start) {
		t.Fatalf("fixture needs both agreeing and disagreeing cards, got %d agreeing", len(agree))
	}

	for s, frame := range anim.Frames() {
		if len(frame) != len(start) {
			t.Fatalf("frame %d has %d cards", s, len(frame))
		}
		for _, c := range frame {
			if agree[c.ID] && c.Reversed != startRev[c.ID] {
				t.Errorf("frame %d: card %d changed orientation", s, c.ID)
			}
		}
	}
}

func TestAnimator_DisagreeingOrientationFlickers(t *testing.T) {
	cards := domain.BuildDeck().Cards[:2]
	start := []domain.OrientedCard{{Card: cards[0], Reversed: false}, {Card: cards[1], Reversed: true}}
	target := []domain.OrientedCard{{Card: cards[1], Reversed: false}, {Card: cards[0], Reversed: false}}
	anim, err := domain.NewAnimator(start, target, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Card 1 goes reversed -> upright: flipped on odd steps, settled on 7.
	want := map[int]bool{1: false, 2: true, 3: false, 4: true, 5: false, 6: true, 7: false}
	for s, frame := range anim.Frames() {
		for _, c := range frame {
			if c.ID == 1 && c.Reversed != want[s] {
				t.Errorf("step %d: expected reversed=%v", s, want[s])
			}
			if c.ID == 0 && c.Reversed {
				t.Errorf("step %d: card 0 should stay upright", s)
			}
		}
	}
}

func TestAnimator_TieBrokenByID(t *testing.T) {
	cards := domain.BuildDeck().Cards[:2]
	start := domain.Canonical(cards)
	target := []domain.OrientedCard{{Card: cards[1]}, {Card: cards[0]}}
	anim, err := domain.NewAnimator(start, target, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// At the midpoint both cards sit at 0.5; the lower id comes first.
	mid := anim.Frame(1)
	if mid[0].ID != 0 || mid[1].ID != 1 {
		t.Errorf("expected ids [0 1] at midpoint, got [%d %d]", mid[0].ID, mid[1].ID)
	}
}

func TestAnimator_Interpolates(t *testing.T) {
	cards := domain.BuildDeck().Cards[:4]
	start := domain.Canonical(cards)
	target := []domain.OrientedCard{{Card: cards[3]}, {Card: cards[1]}, {Card: cards[2]}, {Card: cards[0]}}
	anim, err := domain.NewAnimator(start, target, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cards 0 and 3 swap ends while cards 1 and 2 hold still.
	wantIDs := map[int][]int{
		1: {0, 1, 2, 3},
		2: {1, 0, 3, 2},
		3: {3, 1, 2, 0},
		4: {3, 1, 2, 0},
	}
	for s := 1; s <= 4; s++ {
		if got := ids(anim.Frame(s)); !slices.Equal(got, wantIDs[s]) {
			t.Errorf("step %d: expected %v, got %v", s, wantIDs[s], got)
		}
	}
}

func TestAnimator_Deterministic(t *testing.T) {
	start, target := animPair(t)
	a, _ := domain.NewAnimator(start, target, 7)
	b, _ := domain.NewAnimator(start, target, 7)
	for s := 0; s <= 7; s++ {
		if !slices.Equal(a.Frame(s), b.Frame(s)) {
			t.Errorf("step %d differs between animators", s)
		}
	}
	if !slices.Equal(a.Frame(0), start) {
		t.Error("frame 0 should equal start")
	}
}

func TestAnimator_FramesStopsEarly(t *testing.T) {
	start, target := animPair(t)
	anim, _ := domain.NewAnimator(start, target, 7)
	var seen []int
	for s := range anim.Frames() {
		seen = append(seen, s)
		if s == 3 {
			break
		}
	}
	if !slices.Equal(seen, []int{1, 2, 3}) {
		t.Errorf("unexpected steps: %v", seen)
	}
}

func TestNewAnimator_Errors(t *testing.T) {
	start, target := animPair(t)

	if _, err := domain.NewAnimator(start, target, 0); !errors.Is(err, domain.ErrInvalidSteps) {
		t.Errorf("expected ErrInvalidSteps, got %v", err)
	}
	if _, err := domain.NewAnimator(start, target[:10], 7); !errors.Is(err, domain.ErrOrderMismatch) {
		t.Errorf("expected ErrOrderMismatch for length, got %v", err)
	}

	major := domain.Canonical(domain.MajorArcanaDeck().Cards)
	other := domain.Canonical(domain.BuildDeck().Cards[22:44])
	if _, err := domain.NewAnimator(major, other, 7); !errors.Is(err, domain.ErrOrderMismatch) {
		t.Errorf("expected ErrOrderMismatch for ids, got %v", err)
	}
}

func TestFrameInterval(t *testing.T) {
	cases := []struct {
		total time.Duration
		steps int
		want  time.Duration
	}{
		{time.Second, 7, 143 * time.Millisecond},
		{time.Second, 4, 250 * time.Millisecond},
		{time.Second, 3, 333 * time.Millisecond},
		{time.Second, 0, time.Second},
	}
	for _, tc := range cases {
		if got := domain.FrameInterval(tc.total, tc.steps); got != tc.want {
			t.Errorf("FrameInterval(%v, %d) = %v, want %v", tc.total, tc.steps, got, tc.want)
		}
	}
}
