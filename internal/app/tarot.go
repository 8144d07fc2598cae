package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/HailXD/Tarot-Draw/internal/domain"
	"github.com/HailXD/Tarot-Draw/internal/ports"
	"github.com/HailXD/Tarot-Draw/internal/tracing"
)

// Options tunes the service. Zero values fall back to the defaults.
type Options struct {
	AnimationSteps    int
	AnimationDuration time.Duration
	NotifyTimeout     time.Duration
	Now               func() time.Time
}

func (o Options) withDefaults() Options {
	if o.AnimationSteps < 1 {
		o.AnimationSteps = domain.DefaultAnimationSteps
	}
	if o.AnimationDuration <= 0 {
		o.AnimationDuration = domain.DefaultAnimationDuration
	}
	if o.NotifyTimeout <= 0 {
		o.NotifyTimeout = 5 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// CreateSessionRequest opens a table. A nil Seed picks a clock-derived one.
type CreateSessionRequest struct {
	DeckID string
	Seed   *string
}

// ShuffleRequest reshuffles a table, optionally with a fresh random seed.
type ShuffleRequest struct {
	RandomizeSeed bool
}

// ReadSpreadRequest is a one-shot deal with no session.
type ReadSpreadRequest struct {
	DeckID    string
	Seed      string
	Positions string
}

// ReadSpreadResponse is the application-level output of ReadSpread.
// DeckSize is set even when the deal fails.
type ReadSpreadResponse struct {
	DeckID   string
	DeckSize int
	Seed     string
	Hand     domain.Hand
}

// TarotService owns the sessions and runs shuffles, deals and animations.
type TarotService struct {
	deckStore ports.DeckStore
	notifier  ports.Notifier
	rng       domain.RNG
	sessions  *SessionStore
	logger    *slog.Logger
	opts      Options

	notifications sync.WaitGroup
}

// NewTarotService wires the service. rng backs every empty-seed shuffle and
// every random seed.
func NewTarotService(ds ports.DeckStore, n ports.Notifier, rng domain.RNG, sessions *SessionStore, logger *slog.Logger, opts Options) *TarotService {
	return &TarotService{
		deckStore: ds,
		notifier:  n,
		rng:       rng,
		sessions:  sessions,
		logger:    logger,
		opts:      opts.withDefaults(),
	}
}

func (s *TarotService) AnimationSteps() int { return s.opts.AnimationSteps }

// DeckIDs lists the decks sessions can be opened with.
func (s *TarotService) DeckIDs() []string { return s.deckStore.IDs() }

// Deck returns the canonical, all-upright order of a deck.
func (s *TarotService) Deck(ctx context.Context, deckID string) ([]domain.OrientedCard, error) {
	deck, err := s.deckStore.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return domain.Canonical(deck.Cards), nil
}

// Preview shuffles a deck without touching any session.
func (s *TarotService) Preview(ctx context.Context, deckID, seed string) ([]domain.OrientedCard, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.Preview")
	defer span.End()

	deck, err := s.deckStore.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return domain.Shuffle(deck.Cards, domain.NewRNG(strings.TrimSpace(seed), s.rng)), nil
}

// ReadSpread shuffles with the given seed and deals the given positions.
func (s *TarotService) ReadSpread(ctx context.Context, req ReadSpreadRequest) (ReadSpreadResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.ReadSpread")
	defer span.End()

	seed := strings.TrimSpace(req.Seed)
	order, err := s.Preview(ctx, req.DeckID, seed)
	if err != nil {
		return ReadSpreadResponse{}, err
	}

	resp := ReadSpreadResponse{DeckID: req.DeckID, DeckSize: len(order), Seed: seed}
	hand, err := domain.Deal(domain.ParsePositions(req.Positions, len(order)), order)
	if err != nil {
		return resp, fmt.Errorf("deal: %w", err)
	}
	s.notify(ctx, "", seed, hand)

	resp.Hand = hand
	return resp, nil
}

func (s *TarotService) CreateSession(ctx context.Context, req CreateSessionRequest) (SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.CreateSession")
	defer span.End()

	deck, err := s.deckStore.GetDeck(ctx, req.DeckID)
	if err != nil {
		return SessionView{}, fmt.Errorf("get deck: %w", err)
	}

	seed := domain.DefaultSeed(s.opts.Now())
	if req.Seed != nil {
		seed = *req.Seed
	}
	order := domain.Shuffle(deck.Cards, domain.NewRNG(strings.TrimSpace(seed), s.rng))

	sess := newSession(uuid.NewString(), deck, seed, order)
	s.sessions.Put(sess)
	span.SetAttributes(attribute.String("session.id", sess.id))

	s.logger.InfoContext(ctx, "session created", "session_id", sess.id, "deck", deck.ID)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(), nil
}

func (s *TarotService) GetSession(_ context.Context, id string) (SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.viewLocked(), nil
}

func (s *TarotService) CloseSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session closed", "session_id", id)
	return nil
}

// SetSeed stores the seed used by the next shuffle and random draw.
func (s *TarotService) SetSeed(_ context.Context, id, seed string) (SessionView, error) {
	return s.update(id, func(sess *Session) error {
		sess.seed = seed
		return nil
	})
}

// RandomizeSeed replaces the seed with a fresh random one.
func (s *TarotService) RandomizeSeed(_ context.Context, id string) (SessionView, error) {
	return s.update(id, func(sess *Session) error {
		sess.seed = domain.RandomSeed(s.rng)
		return nil
	})
}

// SetShowDeck toggles whether the order is visible. Shuffles only animate
// while it is.
func (s *TarotService) SetShowDeck(_ context.Context, id string, show bool) (SessionView, error) {
	return s.update(id, func(sess *Session) error {
		sess.showDeck = show
		return nil
	})
}

// Shuffle clears the deal, cancels any running animation and shuffles the
// deck from the session seed. With the deck shown the new order is reached
// through animation frames; otherwise it is adopted at once.
func (s *TarotService) Shuffle(ctx context.Context, id string, req ShuffleRequest) (SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.Shuffle", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	return s.update(id, func(sess *Session) error {
		sess.stopAnimationLocked()
		sess.clearDealLocked()

		if req.RandomizeSeed {
			sess.seed = domain.RandomSeed(s.rng)
		}
		seed := strings.TrimSpace(sess.seed)
		target := domain.Shuffle(sess.deck.Cards, domain.NewRNG(seed, s.rng))
		span.SetAttributes(attribute.Bool("shuffle.animated", sess.showDeck))

		if !sess.showDeck {
			sess.order = target
			sess.publishLocked(Event{Type: EventShuffled})
			return nil
		}

		anim, err := domain.NewAnimator(sess.order, target, s.opts.AnimationSteps)
		if err != nil {
			return fmt.Errorf("animate: %w", err)
		}
		animCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		sess.cancel = cancel
		sess.frame = anim.Frame(0)
		sess.step = 0
		sess.steps = anim.Steps()
		go s.runAnimation(animCtx, sess, anim)
		return nil
	})
}

// Deal parses positions from input and deals them from the current order.
// On ErrNoValidPositions the previous hand is cleared and a hint is set.
func (s *TarotService) Deal(ctx context.Context, id, input string) (SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.Deal", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	return s.update(id, func(sess *Session) error {
		sess.input = input
		return s.dealLocked(ctx, sess, domain.ParsePositions(input, len(sess.order)))
	})
}

// DrawRandom picks count positions from a fresh generator of the session
// seed, writes them back as the input text, and deals them.
func (s *TarotService) DrawRandom(ctx context.Context, id string, count int) (SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, "TarotService.DrawRandom", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	return s.update(id, func(sess *Session) error {
		rng := domain.NewRNG(strings.TrimSpace(sess.seed), s.rng)
		picks := domain.DrawPositions(rng, count, len(sess.order))
		sess.input = domain.FormatPositions(picks)
		return s.dealLocked(ctx, sess, picks)
	})
}

// Reset cancels any animation, clears the deal and restores deck order.
func (s *TarotService) Reset(ctx context.Context, id string) (SessionView, error) {
	_, span := tracing.StartSpan(ctx, "TarotService.Reset", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	return s.update(id, func(sess *Session) error {
		sess.stopAnimationLocked()
		sess.clearDealLocked()
		sess.order = domain.Canonical(sess.deck.Cards)
		ev := Event{Type: EventReset}
		if sess.showDeck {
			ev.Cards = sess.order
		}
		sess.publishLocked(ev)
		return nil
	})
}

// Subscribe streams session events until unsubscribe is called or the
// session ends, at which point the channel is closed.
func (s *TarotService) Subscribe(_ context.Context, id string) (<-chan Event, func(), error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, nil, err
	}
	ch, unsubscribe := sess.subscribe()
	return ch, unsubscribe, nil
}

// Wait blocks until every pending deal notification has finished.
func (s *TarotService) Wait() {
	s.notifications.Wait()
}

func (s *TarotService) dealLocked(ctx context.Context, sess *Session, picks []int) error {
	hand, err := domain.Deal(picks, sess.order)
	if err != nil {
		sess.hand = nil
		sess.hint = domain.PositionsHint(len(sess.order))
		return fmt.Errorf("deal: %w", err)
	}
	sess.hand = hand
	sess.hint = ""
	sess.publishLocked(Event{Type: EventDealt, Hand: hand})
	s.notify(ctx, sess.id, strings.TrimSpace(sess.seed), hand)
	return nil
}

// update runs fn under the session lock and returns the resulting view,
// also on error, so callers can show the hint. A session closed after the
// lookup is reported as not found.
func (s *TarotService) update(id string, fn func(*Session) error) (SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return SessionView{}, domain.ErrSessionNotFound
	}
	err = fn(sess)
	return sess.viewLocked(), err
}

// notify reports a deal in the background. Failures are only logged.
func (s *TarotService) notify(ctx context.Context, sessionID, seed string, hand domain.Hand) {
	n := ports.DealNotification{SessionID: sessionID, Seed: seed, Hand: hand}
	ctx = context.WithoutCancel(ctx)

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		ctx, cancel := context.WithTimeout(ctx, s.opts.NotifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyDeal(ctx, n); err != nil {
			s.logger.WarnContext(ctx, "deal notification failed", "session_id", sessionID, "error", err)
		}
	}()
}
