package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
)

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

// Card is an individual playing card.
// On the wire a card is the compact form <rank><suit>, e.g. "As", "Td", "2c".
type Card struct {
	Rank int
	Suit Suit
}

var cardRx = regexp.MustCompile(`^(10|[2-9TJQKA])([cdhs])$`)

// ParseCard returns a Card for a compact wire form string
func ParseCard(s string) (*Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return nil, fmt.Errorf("could not parse card: %q", s)
	}

	var rank int
	switch match[1] {
	case "T", "10":
		rank = 10
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		rank = int(match[1][0] - '0')
	}

	var suit Suit
	switch match[2] {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return &Card{Rank: rank, Suit: suit}, nil
}

// CardFromString returns a Card from the string, panicking on bad input.
// Intended for fixtures; wire data must go through ParseCard.
func CardFromString(s string) *Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err.Error())
	}

	return card
}

// CardsFromString returns a slice of cards from a comma-separated string
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

func (c *Card) String() string {
	var rank string
	switch c.Rank {
	case 10:
		rank = "T"
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = fmt.Sprintf("%d", c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "c"
	case Diamonds:
		suit = "d"
	case Hearts:
		suit = "h"
	case Spades:
		suit = "s"
	}

	return rank + suit
}

// Display returns a human-readable form like "A♠"
func (c *Card) Display() string {
	s := c.String()

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	}

	return s[:len(s)-1] + suit
}

// Equal returns true if the rank and suit match
func (c *Card) Equal(card *Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// MarshalJSON encodes the card into its compact wire form
func (c *Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its compact wire form
func (c *Card) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	card, err := ParseCard(s)
	if err != nil {
		return err
	}

	*c = *card
	return nil
}
