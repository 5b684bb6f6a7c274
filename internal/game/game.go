// Package game runs a single table: an ordered roster of players, each holding
// a five-card hand dealt from one shared deck, and the current winners.
//
// Every mutation (new game, redeal, add, remove) recomputes the winners and,
// when a recorder is configured, appends a round to the table's history.
//
//	g, err := game.New([]string{"alice", "bob"}, game.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	_ = g.AddPlayer("carol")
//	state := g.Snapshot()
//	fmt.Println(state.Winners)
package game

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhands/internal/gameid"
	"github.com/lox/pokerhands/internal/history"
	"github.com/lox/pokerhands/internal/randutil"
	"github.com/lox/pokerhands/poker"
)

// MaxPlayers is the largest roster one deck can deal five cards to.
const MaxPlayers = poker.DeckSize / poker.HandSize

// recordTimeout bounds how long a mutation waits on the history recorder.
const recordTimeout = 5 * time.Second

// Player is a seat at the table. The hand is replaced wholesale on redeal.
type Player struct {
	Name string
	Hand poker.Hand
}

// Game is safe for concurrent use.
type Game struct {
	mu sync.Mutex
	// recordMu is taken before mu is released so rounds reach the recorder
	// in sequence order without holding mu during I/O.
	recordMu sync.Mutex

	id       string
	deck     *poker.Deck
	players  []Player
	winners  []string
	deal     int
	seq      int
	dealtAt  time.Time
	clock    quartz.Clock
	logger   *log.Logger
	recorder history.Recorder
}

// New seats names in order and deals each player a hand.
func New(names []string, opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = randutil.New(randutil.Seed(0))
	}
	chosenID := cfg.id != ""
	if !chosenID {
		cfg.id = gameid.New()
	} else if err := gameid.Validate(cfg.id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	if len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d players, at most %d", ErrTooManyPlayers, len(names), MaxPlayers)
	}
	seated := make([]string, 0, len(names))
	for _, name := range names {
		name, err := checkName(name, seated)
		if err != nil {
			return nil, err
		}
		seated = append(seated, name)
	}

	g := &Game{
		id:       cfg.id,
		deck:     poker.NewDeck(cfg.rng),
		players:  make([]Player, 0, len(seated)),
		clock:    cfg.clock,
		logger:   cfg.logger.WithPrefix("game").With("game_id", cfg.id),
		recorder: cfg.recorder,
	}
	if chosenID && g.recorder != nil {
		seq, err := g.lastSeq()
		if err != nil {
			return nil, err
		}
		g.seq = seq
	}
	for _, name := range seated {
		hand, err := g.deck.DealHand()
		if err != nil {
			return nil, err
		}
		g.players = append(g.players, Player{Name: name, Hand: hand})
	}
	g.finishDeal()
	if round, ok := g.settle(history.EventDeal); ok {
		g.record(round)
	}
	return g, nil
}

// ID returns the game ID used when recording history.
func (g *Game) ID() string {
	return g.id
}

// AddPlayer seats a new player at the end of the roster and deals them a hand
// from the cards still in the deck.
func (g *Game) AddPlayer(name string) error {
	return g.mutate(history.EventJoin, func() error {
		if len(g.players)+1 > MaxPlayers {
			return fmt.Errorf("%w: table already has %d players", ErrTooManyPlayers, len(g.players))
		}
		name, err := checkName(name, g.names())
		if err != nil {
			return err
		}
		hand, err := g.deck.DealHand()
		if err != nil {
			return fmt.Errorf("deal to %s: %w", name, err)
		}
		g.players = append(g.players, Player{Name: name, Hand: hand})
		g.logger.Debug("player joined", "player", name, "hand", hand.Tokens())
		return nil
	})
}

// RemovePlayer unseats name and returns their cards to the deck, which is then
// reshuffled.
func (g *Game) RemovePlayer(name string) error {
	return g.mutate(history.EventLeave, func() error {
		i := slices.IndexFunc(g.players, func(p Player) bool { return p.Name == name })
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
		}
		g.deck.Return(g.players[i].Hand.Cards()...)
		g.players = slices.Delete(g.players, i, i+1)
		g.logger.Debug("player left", "player", name, "deck", g.deck.Remaining())
		return nil
	})
}

// Redeal gathers every card, reshuffles a full deck and deals each player a
// fresh hand.
func (g *Game) Redeal() error {
	return g.mutate(history.EventRedeal, func() error {
		g.deck.Reset()
		for i := range g.players {
			hand, err := g.deck.DealHand()
			if err != nil {
				return fmt.Errorf("deal to %s: %w", g.players[i].Name, err)
			}
			g.players[i].Hand = hand
		}
		g.finishDeal()
		return nil
	})
}

// Players returns a copy of the roster in seating order.
func (g *Game) Players() []Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.players)
}

// Winners returns the names of the players holding the strongest hand.
func (g *Game) Winners() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.winners)
}

// Snapshot returns an immutable view of the table.
func (g *Game) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) finishDeal() {
	g.deal++
	g.dealtAt = g.clock.Now()
	g.logger.Debug("dealt", "deal", g.deal, "players", len(g.players))
}

// mutate applies change under g.mu, then records the resulting round after
// releasing it. A failed change leaves winners and history untouched.
func (g *Game) mutate(event history.Event, change func() error) error {
	g.mu.Lock()
	if err := change(); err != nil {
		g.mu.Unlock()
		return err
	}
	round, ok := g.settle(event)
	if !ok {
		g.mu.Unlock()
		return nil
	}
	g.recordMu.Lock()
	g.mu.Unlock()
	defer g.recordMu.Unlock()
	g.record(round)
	return nil
}

// settle recomputes the winners and, when a recorder is set, returns the
// round to record. Must be called with g.mu held.
func (g *Game) settle(event history.Event) (history.Round, bool) {
	entries := make([]poker.Entry[string], len(g.players))
	for i, p := range g.players {
		entries[i] = poker.Entry[string]{ID: p.Name, Hand: p.Hand}
	}
	g.winners = poker.SelectWinners(entries)

	if g.recorder == nil {
		return history.Round{}, false
	}
	g.seq++
	return g.state().Round(event, g.seq, g.clock.Now()), true
}

func (g *Game) record(round history.Round) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	if err := g.recorder.Record(ctx, round); err != nil {
		g.logger.Warn("failed to record round", "seq", round.Seq, "error", err)
	}
}

// lastSeq reads the highest sequence number already recorded for g.id.
func (g *Game) lastSeq() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()
	rounds, err := g.recorder.List(ctx, g.id)
	if err != nil {
		return 0, fmt.Errorf("load history for game %s: %w", g.id, err)
	}
	return history.LastSeq(rounds), nil
}

func (g *Game) names() []string {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return names
}

// checkName trims name and rejects blanks and names already in taken.
func checkName(name string, taken []string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if slices.Contains(taken, name) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return name, nil
}
