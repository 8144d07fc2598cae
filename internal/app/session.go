package app

import (
	"context"
	"slices"
	"sync"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// EventType names what changed in a session.
type EventType string

const (
	EventFrame    EventType = "frame"
	EventShuffled EventType = "shuffled"
	EventDealt    EventType = "dealt"
	EventReset    EventType = "reset"
)

// Event is pushed to session subscribers. Frame events carry the animation
// step; the last one (Step == Steps) carries the settled order. Cards are
// only set while the session shows its deck.
type Event struct {
	Type  EventType
	Step  int
	Steps int
	Cards []domain.OrientedCard
	Hand  domain.Hand
}

const subscriberBuffer = 16

// Session is one table: a deck, its current shuffled order and the last
// deal. All fields are guarded by mu and replaced wholesale.
type Session struct {
	mu sync.Mutex

	id       string
	deck     domain.Deck
	seed     string
	order    []domain.OrientedCard
	hand     domain.Hand
	input    string
	hint     string
	showDeck bool

	// animation, set while a shuffle is being animated
	cancel context.CancelFunc
	frame  []domain.OrientedCard
	step   int
	steps  int

	subs    map[uint64]chan Event
	nextSub uint64
	closed  bool
}

func newSession(id string, deck domain.Deck, seed string, order []domain.OrientedCard) *Session {
	return &Session{
		id:    id,
		deck:  deck,
		seed:  seed,
		order: order,
		subs:  make(map[uint64]chan Event),
	}
}

func (s *Session) ID() string { return s.id }

// SessionView is a point-in-time copy of a session.
type SessionView struct {
	ID         string
	DeckID     string
	Seed       string
	Order      []domain.OrientedCard
	ShowDeck   bool
	Animating  bool
	Frame      []domain.OrientedCard
	Step       int
	Steps      int
	Hand       domain.Hand
	Input      string
	Hint       string
	SpreadText string
}

func (s *Session) viewLocked() SessionView {
	return SessionView{
		ID:         s.id,
		DeckID:     s.deck.ID,
		Seed:       s.seed,
		Order:      slices.Clone(s.order),
		ShowDeck:   s.showDeck,
		Animating:  s.cancel != nil,
		Frame:      slices.Clone(s.frame),
		Step:       s.step,
		Steps:      s.steps,
		Hand:       slices.Clone(s.hand),
		Input:      s.input,
		Hint:       s.hint,
		SpreadText: domain.SpreadText(s.hand),
	}
}

// stopAnimationLocked cancels a running animation. The animation goroutine
// checks its context under mu, so after this returns it never writes again.
func (s *Session) stopAnimationLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
	s.frame = nil
	s.step = 0
	s.steps = 0
}

func (s *Session) clearDealLocked() {
	s.hand = nil
	s.input = ""
	s.hint = ""
}

// publishLocked fans ev out without blocking; slow subscribers miss events.
func (s *Session) publishLocked(ev Event) {
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Session) subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	key := s.nextSub
	s.nextSub++
	s.subs[key] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[key]; ok {
			delete(s.subs, key)
			close(c)
		}
	}
}

// close stops the session's animation and ends every subscription.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopAnimationLocked()
	for key, ch := range s.subs {
		delete(s.subs, key)
		close(ch)
	}
	s.closed = true
}
