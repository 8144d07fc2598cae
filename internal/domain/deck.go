package domain

import (
	"fmt"
	"strings"
)

var majorArcana = [...]string{
	"The Fool",
	"The Magician",
	"The High Priestess",
	"The Empress",
	"The Emperor",
	"The Hierophant",
	"The Lovers",
	"The Chariot",
	"Strength",
	"The Hermit",
	"Wheel of Fortune",
	"Justice",
	"The Hanged Man",
	"Death",
	"Temperance",
	"The Devil",
	"The Tower",
	"The Star",
	"The Moon",
	"The Sun",
	"Judgement",
	"The World",
}

var (
	suits = [...]string{"Wands", "Cups", "Swords", "Pentacles"}
	ranks = [...]string{
		"Ace", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Page", "Knight", "Queen", "King",
	}
)

const (
	FullDeckID  = "tarot"
	MajorDeckID = "major_arcana"

	FullDeckSize  = len(majorArcana) + len(suits)*len(ranks)
	MajorDeckSize = len(majorArcana)
)

// BuildDeck returns the 78-card deck in canonical order: the Major arcana
// followed by each suit from Ace to King.
func BuildDeck() Deck {
	cards := make([]Card, 0, FullDeckSize)
	for i, name := range majorArcana {
		cards = append(cards, Card{
			ID:     i,
			Code:   fmt.Sprintf("MA%02d", i),
			Arcana: Major,
			Name:   name,
		})
	}
	id := len(majorArcana)
	for _, suit := range suits {
		for _, rank := range ranks {
			cards = append(cards, Card{
				ID:     id,
				Code:   suitCode(suit) + "-" + rank,
				Arcana: Minor,
				Name:   rank + " of " + suit,
				Suit:   suit,
				Rank:   rank,
			})
			id++
		}
	}
	return Deck{ID: FullDeckID, Name: "Tarot", Cards: cards}
}

// MajorArcanaDeck returns only the 22 trumps, sharing ids with BuildDeck.
func MajorArcanaDeck() Deck {
	full := BuildDeck()
	return Deck{ID: MajorDeckID, Name: "Major Arcana", Cards: full.Cards[:MajorDeckSize:MajorDeckSize]}
}

func suitCode(suit string) string {
	return strings.ToUpper(suit[:2])
}
