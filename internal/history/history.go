// Package history records every deal made at a table so that past rounds and
// their winners can be listed later.
package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// ErrNoGameID is returned when a round is recorded without a game ID.
var ErrNoGameID = errors.New("history: round has no game id")

// ErrDuplicateRound is returned when a game already has a round with the same
// sequence number. Stores never overwrite recorded rounds.
var ErrDuplicateRound = errors.New("history: round already recorded")

// Event names the table change that produced a round.
type Event string

const (
	EventDeal   Event = "deal"
	EventJoin   Event = "join"
	EventLeave  Event = "leave"
	EventRedeal Event = "redeal"
)

// Seat is one player's hand at the moment a round was recorded.
type Seat struct {
	Name     string `toml:"name" json:"name"`
	Hand     string `toml:"hand" json:"hand"`
	Category string `toml:"category" json:"category"`
	Score    int64  `toml:"score" json:"score"`
}

// Round is a snapshot of a table after a deal or roster change.
type Round struct {
	GameID  string    `toml:"game_id" json:"gameId"`
	Seq     int       `toml:"seq" json:"seq"`
	Deal    int       `toml:"deal" json:"deal"`
	Event   Event     `toml:"event" json:"event"`
	At      time.Time `toml:"at" json:"at"`
	Seats   []Seat    `toml:"seat" json:"seats"`
	Winners []string  `toml:"winners" json:"winners"`
}

// Recorder stores rounds. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, round Round) error
	List(ctx context.Context, gameID string) ([]Round, error)
}

// MemoryStore keeps rounds in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	rounds map[string][]Round
}

// NewMemoryStore creates an empty in-memory recorder.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rounds: make(map[string][]Round)}
}

func (s *MemoryStore) Record(_ context.Context, round Round) error {
	if round.GameID == "" {
		return ErrNoGameID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if hasSeq(s.rounds[round.GameID], round.Seq) {
		return fmt.Errorf("%w: game %s seq %d", ErrDuplicateRound, round.GameID, round.Seq)
	}
	s.rounds[round.GameID] = append(s.rounds[round.GameID], cloneRound(round))
	return nil
}

func (s *MemoryStore) List(_ context.Context, gameID string) ([]Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rounds := s.rounds[gameID]
	out := make([]Round, len(rounds))
	for i, r := range rounds {
		out[i] = cloneRound(r)
	}
	return out, nil
}

// LastSeq returns the highest sequence number in rounds, or 0.
func LastSeq(rounds []Round) int {
	last := 0
	for _, r := range rounds {
		last = max(last, r.Seq)
	}
	return last
}

func hasSeq(rounds []Round, seq int) bool {
	return slices.ContainsFunc(rounds, func(r Round) bool { return r.Seq == seq })
}

func cloneRound(r Round) Round {
	r.Seats = slices.Clone(r.Seats)
	r.Winners = slices.Clone(r.Winners)
	return r
}
