package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/display"
	"github.com/lox/pokerhands/internal/tui"
)

type PlayCmd struct {
	TableFlags
	LogFile string `help:"Write logs to this file; the terminal is owned by the table"`
}

func (c *PlayCmd) Run(g *Globals) error {
	var logOut io.Writer = io.Discard
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	cfg, logger, err := g.load(logOut)
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
	logger.Info("starting interactive table", "game_id", table.ID())
	return tui.Run(ctx, tui.New(table, display.New(g.Stdout), logger))
}
