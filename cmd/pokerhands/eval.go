package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lox/pokerhands/cmd/pokerhands/shared"
	"github.com/lox/pokerhands/internal/display"
	"github.com/lox/pokerhands/internal/evaluator"
)

type EvalCmd struct {
	Hands   []string `arg:"" optional:"" help:"Hands such as \"AS KS QS JS TS\"; read from stdin when omitted"`
	JSON    bool     `help:"Print results as JSON"`
	Workers int      `default:"0" help:"Parallel workers (0 uses every CPU)"`
}

func (c *EvalCmd) Run(g *Globals) error {
	_, logger, err := g.load(g.Stderr)
	if err != nil {
		return err
	}
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	inputs := c.Hands
	if len(inputs) == 0 {
		if inputs, err = readLines(g.Stdin); err != nil {
			return err
		}
	}

	batch, err := evaluator.EvaluateAll(ctx, inputs, c.Workers)
	if err != nil {
		return err
	}
	logger.Debug("evaluated", "hands", len(inputs), "invalid", batch.Invalid())

	if c.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			return err
		}
	} else {
		r := display.New(g.Stdout)
		for _, res := range batch.Results {
			hand, perr := res.Parsed()
			if perr != nil {
				fmt.Fprintln(g.Stdout, r.Error(res.Input, perr))
				continue
			}
			mark := " "
			if res.Winner {
				mark = display.WinnerMark
			}
			fmt.Fprintln(g.Stdout, mark, r.Evaluation(hand))
		}
	}

	if n := batch.Invalid(); n > 0 {
		return fmt.Errorf("%d of %d hands are invalid", n, len(inputs))
	}
	return nil
}

// readLines returns the non-blank lines of r with surrounding whitespace
// removed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
