package game

import (
	"slices"
	"time"

	"github.com/lox/pokerhands/internal/history"
)

// State is a point-in-time copy of a table, safe to share and serialise.
type State struct {
	GameID  string        `json:"gameId"`
	Deal    int           `json:"deal"`
	DealtAt time.Time     `json:"dealtAt"`
	Players []PlayerState `json:"players"`
	Winners []string      `json:"winners"`
}

// PlayerState describes one seat.
type PlayerState struct {
	Name     string `json:"name"`
	Hand     string `json:"hand"`    // parseable tokens, e.g. "2S 7D 9H KC AC"
	Display  string `json:"display"` // e.g. "2S, 7D, 9H, KC, AC"
	Category string `json:"category"`
	Strength string `json:"strength"`
	Score    int64  `json:"score"`
	Winner   bool   `json:"winner"`
}

func (g *Game) state() State {
	s := State{
		GameID:  g.id,
		Deal:    g.deal,
		DealtAt: g.dealtAt,
		Players: make([]PlayerState, len(g.players)),
		Winners: slices.Clone(g.winners),
	}
	for i, p := range g.players {
		s.Players[i] = PlayerState{
			Name:     p.Name,
			Hand:     p.Hand.Tokens(),
			Display:  p.Hand.String(),
			Category: p.Hand.Category().String(),
			Strength: p.Hand.Strength().String(),
			Score:    p.Hand.Score(),
			Winner:   slices.Contains(g.winners, p.Name),
		}
	}
	if s.Winners == nil {
		s.Winners = []string{}
	}
	return s
}

// Round converts the state into a history entry.
func (s State) Round(event history.Event, seq int, at time.Time) history.Round {
	r := history.Round{
		GameID:  s.GameID,
		Seq:     seq,
		Deal:    s.Deal,
		Event:   event,
		At:      at,
		Seats:   make([]history.Seat, len(s.Players)),
		Winners: slices.Clone(s.Winners),
	}
	for i, p := range s.Players {
		r.Seats[i] = history.Seat{Name: p.Name, Hand: p.Hand, Category: p.Category, Score: p.Score}
	}
	return r
}
