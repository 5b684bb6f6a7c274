// Package poker parses, classifies and ranks five-card poker hands.
package poker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCard is returned when a token does not name a card.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidHand is returned when a string is not five space separated cards.
	ErrInvalidHand = errors.New("invalid hand")
)

// Rank is the 0-based position of a card face in ascending value order.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct faces in a deck.
const NumRanks = 13

// faces lists the face symbols in rank order.
const faces = "23456789TJQKA"

// Face returns the single character symbol used in card tokens.
func (r Rank) Face() byte {
	if r > Ace {
		return '?'
	}
	return faces[r]
}

// String returns the display form of the rank; Ten renders as "10".
func (r Rank) String() string {
	if r == Ten {
		return "10"
	}
	return string(r.Face())
}

// Suit identifies one of the four suits. Suits carry no ordering semantics;
// the numeric order only fixes how suit sets are listed.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NumSuits is the number of suits in a deck.
const NumSuits = 4

const suitSymbols = "CDHS"

// String returns the suit letter used in card tokens.
func (s Suit) String() string {
	if s >= NumSuits {
		return "?"
	}
	return suitSymbols[s : s+1]
}

// IsRed reports whether the suit is hearts or diamonds.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Card packs a rank and suit into a single byte: rank<<2 | suit.
type Card uint8

// NewCard creates a card from its rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card(uint8(rank)<<2 | uint8(suit))
}

// Rank returns the card's rank (0 = Two, 12 = Ace).
func (c Card) Rank() Rank {
	return Rank(c >> 2)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c & 3)
}

// Index returns a unique 0-51 index for the card.
func (c Card) Index() int {
	return int(c)
}

// Token returns the two character form accepted by ParseCard (e.g. "TS").
func (c Card) Token() string {
	return string([]byte{c.Rank().Face(), suitSymbols[c.Suit()]})
}

// String returns the display form of the card, e.g. "10S" or "AH".
func (c Card) String() string {
	return c.Rank().String() + c.Suit().String()
}

// ParseCard parses a two character token such as "AS" or "TD".
// Faces are 2-9, T, J, Q, K, A and suits are S, H, D, C; both are case-sensitive.
func ParseCard(token string) (Card, error) {
	if len(token) != 2 {
		return 0, fmt.Errorf("%w %q: want 2 characters, got %d", ErrInvalidCard, token, len(token))
	}

	rank := strings.IndexByte(faces, token[0])
	if rank < 0 {
		return 0, fmt.Errorf("%w %q: unknown face %q", ErrInvalidCard, token, token[0])
	}

	suit := strings.IndexByte(suitSymbols, token[1])
	if suit < 0 {
		return 0, fmt.Errorf("%w %q: unknown suit %q", ErrInvalidCard, token, token[1])
	}

	return NewCard(Rank(rank), Suit(suit)), nil
}

// MustParseCard parses a card token and panics on error (for tests and fixtures)
func MustParseCard(token string) Card {
	card, err := ParseCard(token)
	if err != nil {
		panic(err)
	}
	return card
}
