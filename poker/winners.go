package poker

// Entry pairs a caller-chosen identifier with a hand for winner selection.
type Entry[ID any] struct {
	ID   ID
	Hand Hand
}

// Compare returns -1, 0 or +1 when a is weaker than, ties with or beats b.
func Compare(a, b Hand) int {
	return a.strength.Compare(b.strength)
}

// SelectWinners returns the IDs of every entry holding the strongest hand, in
// input order. Ties produce several winners; no entries produce none.
func SelectWinners[ID any](entries []Entry[ID]) []ID {
	if len(entries) == 0 {
		return nil
	}

	best := entries[0].Hand
	for _, e := range entries[1:] {
		if Compare(e.Hand, best) > 0 {
			best = e.Hand
		}
	}

	winners := make([]ID, 0, 1)
	for _, e := range entries {
		if Compare(e.Hand, best) == 0 {
			winners = append(winners, e.ID)
		}
	}
	return winners
}

// Winners returns the indices of the strongest hands.
func Winners(hands []Hand) []int {
	entries := make([]Entry[int], len(hands))
	for i, h := range hands {
		entries[i] = Entry[int]{ID: i, Hand: h}
	}
	return SelectWinners(entries)
}
