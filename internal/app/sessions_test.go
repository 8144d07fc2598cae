package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HailXD/Tarot-Draw/internal/adapters/decks"
	"github.com/HailXD/Tarot-Draw/internal/adapters/notify/discord"
	"github.com/HailXD/Tarot-Draw/internal/domain"
)

func TestSessionStore_Evict(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewSessionStore(time.Hour)
	m.now = func() time.Time { return now }

	deck := domain.BuildDeck()
	m.Put(newSession("old", deck, "", domain.Canonical(deck.Cards)))
	now = now.Add(30 * time.Minute)
	m.Put(newSession("new", deck, "", domain.Canonical(deck.Cards)))

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, m.Evict())
	assert.Equal(t, 1, m.Len())

	_, err := m.Get("old")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Get refreshes activity.
	_, err = m.Get("new")
	require.NoError(t, err)
	now = now.Add(59 * time.Minute)
	assert.Equal(t, 0, m.Evict())
}

func TestSessionStore_NoTTL(t *testing.T) {
	m := NewSessionStore(0)
	deck := domain.BuildDeck()
	m.Put(newSession("s", deck, "", domain.Canonical(deck.Cards)))
	assert.Equal(t, 0, m.Evict())
	assert.Equal(t, 1, m.Len())
}

func TestSessionStore_EvictStopsAnimation(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewSessionStore(time.Minute)
	m.now = func() time.Time { return now }

	deck := domain.BuildDeck()
	s := newSession("s", deck, "", domain.Canonical(deck.Cards))
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	m.Put(s)
	events, _ := s.subscribe()

	now = now.Add(2 * time.Minute)
	require.Equal(t, 1, m.Evict())

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	_, open := <-events
	assert.False(t, open)

	// subscribing to a closed session yields a closed channel
	late, unsubscribe := s.subscribe()
	_, open = <-late
	assert.False(t, open)
	unsubscribe()
}

func TestSessionStore_Run(t *testing.T) {
	m := NewSessionStore(time.Nanosecond)
	deck := domain.BuildDeck()
	m.Put(newSession("s", deck, "", domain.Canonical(deck.Cards)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

type halfRNG struct{}

func (halfRNG) Float64() float64 { return 0.5 }

func TestUpdate_SessionClosedAfterLookup(t *testing.T) {
	sessions := NewSessionStore(0)
	svc := NewTarotService(decks.NewStore(), discord.Noop{}, halfRNG{}, sessions,
		slog.New(slog.NewTextHandler(io.Discard, nil)), Options{})
	ctx := context.Background()

	view, err := svc.CreateSession(ctx, CreateSessionRequest{DeckID: domain.FullDeckID})
	require.NoError(t, err)
	_, err = svc.SetShowDeck(ctx, view.ID, true)
	require.NoError(t, err)

	// Closed but still registered, as when Evict races a request.
	sess, err := sessions.Get(view.ID)
	require.NoError(t, err)
	sess.close()

	_, err = svc.Shuffle(ctx, view.ID, ShuffleRequest{})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	assert.Nil(t, sess.cancel, "no animation starts on a closed session")
}
