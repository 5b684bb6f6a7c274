package poker

import "strings"

// kickerBits is the width of one kicker slot in a Score. Ranks fit in 4 bits.
const kickerBits = 4

// categoryShift places the category above five full kicker slots so that the
// weakest hand of a category always outscores the strongest hand below it.
const categoryShift = kickerBits * HandSize

// Strength is a comparable hand strength: the category, then a tuple of
// tie-break ranks compared left to right.
//
// For straights and straight flushes the tuple holds the top card only. Royal
// flushes carry no tie-break. Every other category lists its distinct ranks
// ordered by occurrence count (most frequent first) and, within equal counts,
// by ascending rank.
type Strength struct {
	Category Category
	kickers  [HandSize]Rank
	n        uint8
}

// Kickers returns the tie-break ranks in comparison order.
func (s Strength) Kickers() []Rank {
	out := make([]Rank, s.n)
	copy(out, s.kickers[:s.n])
	return out
}

// Compare returns -1, 0 or +1 when s is weaker than, equal to or stronger than other.
func (s Strength) Compare(other Strength) int {
	switch {
	case s.Category < other.Category:
		return -1
	case s.Category > other.Category:
		return 1
	}

	n := max(s.n, other.n)
	for i := range n {
		switch {
		case s.kickers[i] < other.kickers[i]:
			return -1
		case s.kickers[i] > other.kickers[i]:
			return 1
		}
	}
	return 0
}

// Score encodes the strength as a single integer: the category in the high
// bits followed by each kicker in a 4-bit slot, left aligned. Higher scores
// win and equal scores tie.
func (s Strength) Score() int64 {
	score := int64(s.Category) << categoryShift
	for i := range s.n {
		score |= int64(s.kickers[i]) << (kickerBits * (HandSize - 1 - int(i)))
	}
	return score
}

// String returns the category followed by its kicker faces, e.g. "Full House [Q T]".
func (s Strength) String() string {
	if s.n == 0 {
		return s.Category.String()
	}
	var b strings.Builder
	b.WriteString(s.Category.String())
	b.WriteString(" [")
	for i := range s.n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s.kickers[i].Face())
	}
	b.WriteByte(']')
	return b.String()
}

func (s *Strength) push(r Rank) {
	s.kickers[s.n] = r
	s.n++
}
