package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lox/pokerhands/internal/display"
)

type DealCmd struct {
	TableFlags
	JSON bool `help:"Print the table as JSON"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, logger, err := g.load(g.Stderr)
	if err != nil {
		return err
	}
	rec, closeRec, err := openRecorder(context.Background(), cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = closeRec() }()

	table, err := c.newGame(cfg, logger, rec)
	if err != nil {
		return err
	}
	state := table.Snapshot()

	if c.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	fmt.Fprintln(g.Stdout, display.New(g.Stdout).Table(state, -1))
	fmt.Fprintf(g.Stdout, "game %s\n", state.GameID)
	return nil
}
