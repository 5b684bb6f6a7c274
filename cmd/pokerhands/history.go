package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lox/pokerhands/internal/config"
	"github.com/lox/pokerhands/internal/gameid"
	"github.com/lox/pokerhands/internal/history"
	"github.com/lox/pokerhands/internal/statistics"
)

type HistoryCmd struct {
	GameID string `arg:"" name:"game-id" help:"Game whose rounds to list"`
	JSON   bool   `help:"Print rounds as JSON"`
	Stats  bool   `help:"Summarise categories and wins instead of listing rounds"`
}

var errNoHistory = errors.New("the memory history driver keeps nothing between runs; configure a file or postgres driver")

func (c *HistoryCmd) Run(g *Globals) error {
	if err := gameid.Validate(c.GameID); err != nil {
		return err
	}
	cfg, _, err := g.load(g.Stderr)
	if err != nil {
		return err
	}
	if cfg.History.Driver == config.DriverMemory {
		return errNoHistory
	}

	ctx := context.Background()
	rec, closeRec, err := openRecorder(ctx, cfg.History)
	if err != nil {
		return err
	}
	defer func() { _ = closeRec() }()

	rounds, err := rec.List(ctx, c.GameID)
	if err != nil {
		return err
	}
	if len(rounds) == 0 {
		return fmt.Errorf("no rounds recorded for game %s", c.GameID)
	}

	if c.Stats {
		printStats(g.Stdout, rounds)
		return nil
	}
	if c.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rounds)
	}
	for _, r := range rounds {
		fmt.Fprintf(g.Stdout, "#%d deal %d %s at %s: winners %s\n",
			r.Seq, r.Deal, r.Event, r.At.Format("2006-01-02 15:04:05"), strings.Join(r.Winners, ", "))
		for _, s := range r.Seats {
			fmt.Fprintf(g.Stdout, "  %-12s %s  %s\n", s.Name, s.Hand, s.Category)
		}
	}
	return nil
}

func printStats(w io.Writer, rounds []history.Round) {
	var s statistics.Statistics
	for _, r := range rounds {
		s.Add(r)
	}

	fmt.Fprintf(w, "%d rounds, %d hands, %d split\n\n", s.Rounds, s.Hands, s.SplitPots)
	for _, c := range s.Categories() {
		if c.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%-16s %5d  %5.1f%%\n", c.Category, c.Count, 100*c.Share)
	}
	fmt.Fprintln(w)
	for _, p := range s.Players() {
		lo, hi := p.ConfidenceInterval95()
		fmt.Fprintf(w, "%-12s won %d of %d (%.1f%%, 95%% CI %.1f-%.1f%%)\n",
			p.Name, p.Wins, p.Rounds, 100*p.WinRate(), 100*lo, 100*hi)
	}
}
