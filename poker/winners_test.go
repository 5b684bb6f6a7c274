package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entries(hands ...string) []Entry[string] {
	out := make([]Entry[string], len(hands))
	for i, h := range hands {
		out[i] = Entry[string]{ID: h, Hand: MustParseHand(h)}
	}
	return out
}

func TestSelectWinners(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		hands []string
		want  []string
	}{
		{
			name:  "two royal flushes tie over a straight",
			hands: []string{"AS KS QS JS TS", "AD KD QD JD TD", "AH KH QH JH TC"},
			want:  []string{"AS KS QS JS TS", "AD KD QD JD TD"},
		},
		{
			name:  "straight flushes beat four of a kind",
			hands: []string{"9S KS QS JS TS", "9D KD QD JD TD", "AH AS AC AD TC"},
			want:  []string{"9S KS QS JS TS", "9D KD QD JD TD"},
		},
		{
			name:  "higher straight flush wins",
			hands: []string{"9S KS QS JS TS", "9D 8D QD JD TD"},
			want:  []string{"9S KS QS JS TS"},
		},
		{
			name:  "higher four of a kind beats full house",
			hands: []string{"QH QS QC TS TH", "KH KS KC KD TD", "AH AS AC AD TC"},
			want:  []string{"AH AS AC AD TC"},
		},
		{
			name:  "higher trips decide between full houses",
			hands: []string{"QH QS QC TS TH", "KH KS KC 9D 9S", "2S 5S 7S 8S 9S"},
			want:  []string{"KH KS KC 9D 9S"},
		},
		{
			name:  "single hand wins alone",
			hands: []string{"7H 9S 2C 3D KS"},
			want:  []string{"7H 9S 2C 3D KS"},
		},
		{
			name:  "identical high cards in different suits tie",
			hands: []string{"7H 9S 2C 3D KS", "7D 9C 2H 3S KH", "7H 9S 2C 3D QS"},
			want:  []string{"7H 9S 2C 3D KS", "7D 9C 2H 3S KH"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, SelectWinners(entries(tc.hands...)))
		})
	}
}

func TestSelectWinnersEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, SelectWinners[string](nil))
	assert.Empty(t, Winners(nil))
}

func TestSelectWinnersDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	in := entries("QH QS QC TS TH", "KH KS KC 9D 9S")
	before := make([]Entry[string], len(in))
	copy(before, in)

	SelectWinners(in)
	assert.Equal(t, before, in)
}

func TestWinnersIndices(t *testing.T) {
	t.Parallel()
	hands := []Hand{
		MustParseHand("AD KD QD JD TD"),
		MustParseHand("QH QS QC TS TH"),
		MustParseHand("AS KS QS JS TS"),
	}
	assert.Equal(t, []int{0, 2}, Winners(hands))
}

func TestCompare(t *testing.T) {
	t.Parallel()
	flush := MustParseHand("2S 5S 7S 8S 9S")
	straight := MustParseHand("5D 6S 7C 8H 9S")

	assert.Equal(t, 1, Compare(flush, straight))
	assert.Equal(t, -1, Compare(straight, flush))
	assert.Equal(t, 0, Compare(flush, MustParseHand("9S 8S 7S 5S 2S")))
}
