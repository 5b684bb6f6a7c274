// Package statistics summarises recorded rounds: how often each category
// was dealt and how often each player won.
package statistics

import (
	"math"
	"sort"

	"github.com/lox/pokerhands/internal/history"
	"github.com/lox/pokerhands/poker"
)

// PlayerStats tracks one player's results across rounds.
type PlayerStats struct {
	Name   string
	Rounds int
	Wins   int // includes shared wins
	Ties   int // wins shared with at least one other player
}

// WinRate returns the fraction of rounds won, shared wins included.
func (p PlayerStats) WinRate() float64 {
	if p.Rounds == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Rounds)
}

// StdError returns the standard error of the win rate.
func (p PlayerStats) StdError() float64 {
	if p.Rounds == 0 {
		return 0
	}
	rate := p.WinRate()
	return math.Sqrt(rate * (1 - rate) / float64(p.Rounds))
}

// ConfidenceInterval95 returns the 95% interval for the win rate, clamped to [0, 1].
func (p PlayerStats) ConfidenceInterval95() (float64, float64) {
	rate := p.WinRate()
	margin := 1.96 * p.StdError()
	return max(0, rate-margin), min(1, rate+margin)
}

// Statistics accumulates rounds. The zero value is ready to use.
type Statistics struct {
	Rounds     int
	Hands      int
	SplitPots  int
	categories map[string]int
	players    map[string]*PlayerStats
}

// Add folds one round into the totals.
func (s *Statistics) Add(round history.Round) {
	if s.categories == nil {
		s.categories = make(map[string]int)
		s.players = make(map[string]*PlayerStats)
	}

	s.Rounds++
	if len(round.Winners) > 1 {
		s.SplitPots++
	}
	won := make(map[string]bool, len(round.Winners))
	for _, w := range round.Winners {
		won[w] = true
	}

	for _, seat := range round.Seats {
		s.Hands++
		s.categories[seat.Category]++

		p := s.players[seat.Name]
		if p == nil {
			p = &PlayerStats{Name: seat.Name}
			s.players[seat.Name] = p
		}
		p.Rounds++
		if won[seat.Name] {
			p.Wins++
			if len(round.Winners) > 1 {
				p.Ties++
			}
		}
	}
}

// CategoryCount is how many dealt hands fell into one category.
type CategoryCount struct {
	Category poker.Category
	Count    int
	Share    float64
}

// Categories lists every category from weakest to strongest with its count.
func (s *Statistics) Categories() []CategoryCount {
	out := make([]CategoryCount, 0, len(poker.Categories()))
	for _, c := range poker.Categories() {
		n := s.categories[c.String()]
		share := 0.0
		if s.Hands > 0 {
			share = float64(n) / float64(s.Hands)
		}
		out = append(out, CategoryCount{Category: c, Count: n, Share: share})
	}
	return out
}

// Players returns per-player stats, most wins first, then by name.
func (s *Statistics) Players() []PlayerStats {
	out := make([]PlayerStats, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	return out
}
