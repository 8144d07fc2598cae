package decks

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// registry maps deck IDs to their factories.
var registry = map[string]func() domain.Deck{
	domain.FullDeckID:  domain.BuildDeck,
	domain.MajorDeckID: domain.MajorArcanaDeck,
}

// Store builds every registered deck once and serves it read-only.
type Store struct {
	once  sync.Once
	decks map[string]domain.Deck
	err   error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) init() {
	s.decks = make(map[string]domain.Deck, len(registry))
	for id, build := range registry {
		deck := build()
		if len(deck.Cards) == 0 {
			s.err = fmt.Errorf("build deck %s: no cards", id)
			return
		}
		s.decks[id] = deck
	}
}

func (s *Store) GetDeck(_ context.Context, deckID string) (domain.Deck, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.Deck{}, s.err
	}
	deck, ok := s.decks[deckID]
	if !ok {
		return domain.Deck{}, domain.ErrDeckNotFound
	}
	return deck, nil
}

// IDs lists the registered deck IDs.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
