package main

import (
	"fmt"

	"github.com/lox/pokerhands/internal/display"
	"github.com/lox/pokerhands/poker"
)

type WinnersCmd struct {
	Hands []string `arg:"" help:"Hands to compare"`
}

func (c *WinnersCmd) Run(g *Globals) error {
	if _, _, err := g.load(g.Stderr); err != nil {
		return err
	}

	hands := make([]poker.Hand, len(c.Hands))
	for i, text := range c.Hands {
		h, err := poker.ParseHand(text)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = h
	}

	r := display.New(g.Stdout)
	for _, i := range poker.Winners(hands) {
		fmt.Fprintf(g.Stdout, "%d: %s\n", i+1, r.Evaluation(hands[i]))
	}
	return nil
}
