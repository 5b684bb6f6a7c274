package main

import (
	"fmt"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/server"
)

type ServeCmd struct {
	TableFlags
	Addr string `help:"Listen address, overriding the configured address and port"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(g.Stderr)
	if err != nil {
		return err
	}
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	rec, closeRec, err := openRecorder(ctx, cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = closeRec() }()

	table, err := c.newGame(cfg, logger, rec)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = cfg.Addr()
	}
	logger.Info("serving table", "game_id", table.ID(), "addr", addr, "history", cfg.History.Driver)

	if err := server.New(table, logger).ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
