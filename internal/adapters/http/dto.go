package http

import (
	"github.com/HailXD/Tarot-Draw/internal/app"
	"github.com/HailXD/Tarot-Draw/internal/domain"
)

// CardResponse is a card at a position of an order or a hand.
type CardResponse struct {
	ID          int                `json:"id"`
	Code        string             `json:"code"`
	Arcana      domain.Arcana      `json:"arcana"`
	Name        string             `json:"name"`
	Suit        string             `json:"suit,omitempty"`
	Rank        string             `json:"rank,omitempty"`
	Position    int                `json:"position"`
	Orientation domain.Orientation `json:"orientation"`
}

// DeckListResponse is the JSON shape of GET /v1/decks.
type DeckListResponse struct {
	Decks   []string `json:"decks"`
	Default string   `json:"default"`
}

// OrderResponse is the JSON shape of GET /v1/decks/:deck and its shuffle.
type OrderResponse struct {
	Deck  string         `json:"deck"`
	Seed  string         `json:"seed,omitempty"`
	Cards []CardResponse `json:"cards"`
}

// TarotResponse is the JSON shape returned by GET /v1/tarot.
type TarotResponse struct {
	Deck   string         `json:"deck"`
	Seed   string         `json:"seed"`
	Cards  []CardResponse `json:"cards"`
	Spread string         `json:"spread"`
	Meta   MetaResp       `json:"meta"`
}

type MetaResp struct {
	RequestID string `json:"request_id"`
}

// SessionResponse hides the deck order unless the session shows it. While
// a shuffle is animating, Order holds the current frame.
type SessionResponse struct {
	ID        string         `json:"id"`
	Deck      string         `json:"deck"`
	Seed      string         `json:"seed"`
	ShowDeck  bool           `json:"show_deck"`
	Animating bool           `json:"animating"`
	Step      int            `json:"step,omitempty"`
	Steps     int            `json:"steps,omitempty"`
	Order     []CardResponse `json:"order,omitempty"`
	Hand      []CardResponse `json:"hand"`
	Input     string         `json:"input"`
	Spread    string         `json:"spread"`
	Error     string         `json:"error,omitempty"`
}

// StreamMessage is one WebSocket message on /v1/sessions/:id/stream.
type StreamMessage struct {
	Type    string           `json:"type"`
	Step    int              `json:"step,omitempty"`
	Steps   int              `json:"steps,omitempty"`
	Cards   []CardResponse   `json:"cards,omitempty"`
	Hand    []CardResponse   `json:"hand,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
}

type CreateSessionRequest struct {
	Deck string  `json:"deck"`
	Seed *string `json:"seed"`
}

type SeedRequest struct {
	Seed string `json:"seed"`
}

type ShowRequest struct {
	Show bool `json:"show"`
}

type ShuffleRequest struct {
	RandomizeSeed bool `json:"randomize_seed"`
}

type DealRequest struct {
	Positions string `json:"positions"`
}

type DrawRequest struct {
	Count int `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toOrder(order []domain.OrientedCard) []CardResponse {
	out := make([]CardResponse, len(order))
	for i, c := range order {
		out[i] = toCard(c.Card, i+1, c.Reversed)
	}
	return out
}

func toHand(hand domain.Hand) []CardResponse {
	out := make([]CardResponse, len(hand))
	for i, c := range hand {
		out[i] = toCard(c.Card, c.Position, c.Reversed)
	}
	return out
}

func toCard(c domain.Card, position int, reversed bool) CardResponse {
	return CardResponse{
		ID:          c.ID,
		Code:        c.Code,
		Arcana:      c.Arcana,
		Name:        c.Name,
		Suit:        c.Suit,
		Rank:        c.Rank,
		Position:    position,
		Orientation: domain.OrientationOf(reversed),
	}
}

func toSession(v app.SessionView) SessionResponse {
	resp := SessionResponse{
		ID:        v.ID,
		Deck:      v.DeckID,
		Seed:      v.Seed,
		ShowDeck:  v.ShowDeck,
		Animating: v.Animating,
		Hand:      toHand(v.Hand),
		Input:     v.Input,
		Spread:    v.SpreadText,
		Error:     v.Hint,
	}
	if !v.ShowDeck {
		return resp
	}
	if v.Animating {
		resp.Step = v.Step
		resp.Steps = v.Steps
		resp.Order = toOrder(v.Frame)
	} else {
		resp.Order = toOrder(v.Order)
	}
	return resp
}

func toStreamMessage(ev app.Event) StreamMessage {
	msg := StreamMessage{Type: string(ev.Type), Step: ev.Step, Steps: ev.Steps}
	if ev.Cards != nil {
		msg.Cards = toOrder(ev.Cards)
	}
	if ev.Hand != nil {
		msg.Hand = toHand(ev.Hand)
	}
	return msg
}
