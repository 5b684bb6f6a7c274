package poker

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// HandSize is the number of cards in a hand.
const HandSize = 5

// Hand is an immutable, classified five-card hand. Construct one with ParseHand
// or NewHand; the zero value holds no cards and has no category.
//
// Hands are comparable with ==; two hands built from the same tokens are equal.
type Hand struct {
	cards    [HandSize]Card // ascending by rank, parse order among equal ranks
	suits    uint8          // bit per suit present
	counts   [NumRanks]uint8
	distinct uint8
	maxCount uint8
	strength Strength
}

// ParseHand parses five card tokens separated by single spaces, e.g.
// "AS KS QS JS TS". Leading, trailing or repeated spaces are rejected.
func ParseHand(text string) (Hand, error) {
	tokens := strings.Split(text, " ")
	if len(tokens) != HandSize {
		return Hand{}, fmt.Errorf("%w %q: want %d cards separated by single spaces, got %d fields",
			ErrInvalidHand, text, HandSize, len(tokens))
	}

	var cards [HandSize]Card
	for i, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return Hand{}, fmt.Errorf("%w %q: card %d: %w", ErrInvalidHand, text, i+1, err)
		}
		cards[i] = card
	}

	return newHand(cards), nil
}

// MustParseHand parses a hand and panics on error (for tests and fixtures)
func MustParseHand(text string) Hand {
	hand, err := ParseHand(text)
	if err != nil {
		panic(err)
	}
	return hand
}

// NewHand classifies exactly five already-parsed cards.
func NewHand(cards ...Card) (Hand, error) {
	if len(cards) != HandSize {
		return Hand{}, fmt.Errorf("%w: want %d cards, got %d", ErrInvalidHand, HandSize, len(cards))
	}
	for i, card := range cards {
		if card.Rank() > Ace {
			return Hand{}, fmt.Errorf("%w: card %d: %w (rank %d)", ErrInvalidHand, i+1, ErrInvalidCard, card.Rank())
		}
	}
	return newHand([HandSize]Card(cards)), nil
}

func newHand(cards [HandSize]Card) Hand {
	h := Hand{cards: cards}

	slices.SortStableFunc(h.cards[:], func(a, b Card) int {
		return int(a.Rank()) - int(b.Rank())
	})

	for _, card := range h.cards {
		h.suits |= 1 << card.Suit()
		if h.counts[card.Rank()] == 0 {
			h.distinct++
		}
		h.counts[card.Rank()]++
		h.maxCount = max(h.maxCount, h.counts[card.Rank()])
	}

	h.strength = h.evaluate()
	return h
}

// evaluate picks the first matching category in priority order.
func (h *Hand) evaluate() Strength {
	s := Strength{}
	switch {
	case h.IsRoyalFlush():
		s.Category = RoyalFlush
		return s
	case h.IsStraightFlush():
		s.Category = StraightFlush
		s.push(h.cards[HandSize-1].Rank())
		return s
	case h.IsFourOfAKind():
		s.Category = FourOfAKind
	case h.IsFullHouse():
		s.Category = FullHouse
	case h.IsFlush():
		s.Category = Flush
	case h.IsStraight():
		s.Category = Straight
		s.push(h.cards[HandSize-1].Rank())
		return s
	case h.IsThreeOfAKind():
		s.Category = ThreeOfAKind
	case h.IsTwoPair():
		s.Category = TwoPair
	case h.IsPair():
		s.Category = Pair
	default:
		s.Category = HighCard
	}

	// Most frequent ranks first; equal counts keep ascending rank order.
	for count := h.maxCount; count > 0; count-- {
		for r := Two; r <= Ace; r++ {
			if h.counts[r] == count {
				s.push(r)
			}
		}
	}
	return s
}

// Cards returns the five cards in ascending rank order.
func (h Hand) Cards() []Card {
	out := make([]Card, HandSize)
	copy(out, h.cards[:])
	return out
}

// Suits returns the distinct suits present, in Clubs, Diamonds, Hearts, Spades order.
func (h Hand) Suits() []Suit {
	out := make([]Suit, 0, bits.OnesCount8(h.suits))
	for s := Clubs; s < NumSuits; s++ {
		if h.suits&(1<<s) != 0 {
			out = append(out, s)
		}
	}
	return out
}

// Occurrences returns the number of cards of each rank, indexed by rank.
func (h Hand) Occurrences() [NumRanks]uint8 {
	return h.counts
}

// Category returns the hand's category.
func (h Hand) Category() Category {
	return h.strength.Category
}

// Strength returns the hand's comparable strength.
func (h Hand) Strength() Strength {
	return h.strength
}

// Score returns the integer encoding of the hand's strength.
func (h Hand) Score() int64 {
	return h.strength.Score()
}

// IsFlush reports whether all five cards share a suit.
func (h Hand) IsFlush() bool {
	return bits.OnesCount8(h.suits) == 1
}

// IsStraight reports whether the five ranks are consecutive. Aces only play
// high: A-2-3-4-5 is not a straight.
func (h Hand) IsStraight() bool {
	for i := 1; i < HandSize; i++ {
		if h.cards[i].Rank() != h.cards[i-1].Rank()+1 {
			return false
		}
	}
	return true
}

// HasAce reports whether any card is an ace.
func (h Hand) HasAce() bool {
	return h.counts[Ace] > 0
}

func (h Hand) IsStraightFlush() bool {
	return h.IsFlush() && h.IsStraight()
}

// IsRoyalFlush reports a straight flush containing an ace, which can only be T-J-Q-K-A.
func (h Hand) IsRoyalFlush() bool {
	return h.IsStraightFlush() && h.HasAce()
}

func (h Hand) IsFourOfAKind() bool {
	return h.distinct == 2 && h.maxCount == 4
}

// IsThreeOfAKind is also true for a full house; category selection checks
// the full house first.
func (h Hand) IsThreeOfAKind() bool {
	return h.maxCount == 3
}

func (h Hand) IsFullHouse() bool {
	return h.IsThreeOfAKind() && h.distinct == 2
}

func (h Hand) IsTwoPair() bool {
	return h.maxCount == 2 && h.distinct == 3
}

func (h Hand) IsPair() bool {
	return h.maxCount == 2 && h.distinct == 4
}

// Tokens returns the hand in the form accepted by ParseHand, cards in rank order.
func (h Hand) Tokens() string {
	tokens := make([]string, HandSize)
	for i, card := range h.cards {
		tokens[i] = card.Token()
	}
	return strings.Join(tokens, " ")
}

// String returns the display form of the cards, e.g. "2S, 7D, 9H, KC, AC".
func (h Hand) String() string {
	out := make([]string, HandSize)
	for i, card := range h.cards {
		out[i] = card.String()
	}
	return strings.Join(out, ", ")
}
