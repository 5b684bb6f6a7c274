package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/config"
	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/internal/history"
)

// load reads the configuration and builds a logger writing to w.
func (g *Globals) load(w io.Writer) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Server.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", g.Config, err)
	}
	logger, err := shared.SetupLogger(w, cfg.Server.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded configuration", "file", g.Config, "history", cfg.History.Driver)
	return cfg, logger, nil
}

// openRecorder returns the configured history store and a function that
// releases it.
func openRecorder(ctx context.Context, h config.HistorySettings) (history.Recorder, func() error, error) {
	noop := func() error { return nil }
	switch h.Driver {
	case config.DriverFile:
		store, err := history.NewFileStore(h.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	case config.DriverPostgres:
		store, err := history.OpenPostgres(ctx, h.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return history.NewMemoryStore(), noop, nil
	}
}

// TableFlags are shared by commands that seat players.
type TableFlags struct {
	Players []string `arg:"" optional:"" help:"Player names; defaults to the configured players"`
	Seed    int64    `help:"Deterministic shuffle seed (0 uses the configured seed, or the clock)"`
	GameID  string   `name:"game-id" help:"Record under this game ID instead of a new one"`
}

// newGame seats the players and wires the recorder and logger.
func (f TableFlags) newGame(cfg *config.Config, logger *log.Logger, rec history.Recorder) (*game.Game, error) {
	names := f.Players
	if len(names) == 0 {
		names = cfg.Game.Players
	}
	seed := f.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	opts := []game.Option{
		game.WithSeed(seed),
		game.WithLogger(logger),
		game.WithRecorder(rec),
	}
	if f.GameID != "" {
		opts = append(opts, game.WithID(f.GameID))
	}
	g, err := game.New(names, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("table ready", "game_id", g.ID(), "players", len(names))
	return g, nil
}
