package ports

import (
	"context"

	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// DeckStore provides access to the canonical decks.
type DeckStore interface {
	GetDeck(ctx context.Context, deckID string) (domain.Deck, error)
	IDs() []string
}
