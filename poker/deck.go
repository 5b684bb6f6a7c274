package poker

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = NumRanks * NumSuits

// ErrDeckExhausted is returned when a deal asks for more cards than remain.
var ErrDeckExhausted = errors.New("not enough cards left in deck")

// Deck represents a standard 52-card deck. It is not safe for concurrent use.
type Deck struct {
	cards []Card // undealt cards, top of deck first
	rng   *rand.Rand
}

// NewDeck creates a full, shuffled deck. The RNG must not be nil; seed it for
// reproducible deals.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset restores all 52 cards and shuffles them.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Clubs; suit < NumSuits; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.Shuffle()
}

// Shuffle shuffles the undealt cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// DealHand deals and classifies five cards.
func (d *Deck) DealHand() (Hand, error) {
	cards, err := d.Deal(HandSize)
	if err != nil {
		return Hand{}, err
	}
	return NewHand(cards...)
}

// DealTokens deals n hands and returns them as ParseHand-compatible strings.
func (d *Deck) DealTokens(n int) ([]string, error) {
	if n*HandSize > len(d.cards) {
		return nil, ErrDeckExhausted
	}
	out := make([]string, n)
	for i := range out {
		cards, _ := d.Deal(HandSize)
		tokens := make([]string, HandSize)
		for j, c := range cards {
			tokens[j] = c.Token()
		}
		out[i] = strings.Join(tokens, " ")
	}
	return out, nil
}

// Return puts cards back into the deck and reshuffles.
func (d *Deck) Return(cards ...Card) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
