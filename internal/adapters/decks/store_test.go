package decks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/HailXD/Tarot-Draw/internal/adapters/decks"
	"github.com/HailXD/Tarot-Draw/internal/domain"
)

func TestStore_GetDeck(t *testing.T) {
	s := decks.NewStore()

	full, err := s.GetDeck(context.Background(), domain.FullDeckID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(full.Cards) != domain.FullDeckSize {
		t.Errorf("expected %d cards, got %d", domain.FullDeckSize, len(full.Cards))
	}

	major, err := s.GetDeck(context.Background(), domain.MajorDeckID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(major.Cards) != domain.MajorDeckSize {
		t.Errorf("expected %d cards, got %d", domain.MajorDeckSize, len(major.Cards))
	}
}

func TestStore_NotFound(t *testing.T) {
	_, err := decks.NewStore().GetDeck(context.Background(), "lenormand")
	if !errors.Is(err, domain.ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestStore_IDs(t *testing.T) {
	ids := decks.NewStore().IDs()
	if len(ids) != 2 || ids[0] != domain.MajorDeckID || ids[1] != domain.FullDeckID {
		t.Errorf("unexpected ids: %v", ids)
	}
}
