// Package evaluator classifies batches of hand strings in parallel and picks
// the winners among those that parse.
package evaluator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerhands/poker"
)

// Result is the classification of one input line. Error is set instead of
// the other fields when the input did not parse.
type Result struct {
	Input    string `json:"input"`
	Hand     string `json:"hand,omitempty"`
	Display  string `json:"display,omitempty"`
	Category string `json:"category,omitempty"`
	Strength string `json:"strength,omitempty"`
	Score    int64  `json:"score,omitempty"`
	Winner   bool   `json:"winner,omitempty"`
	Error    string `json:"error,omitempty"`

	hand poker.Hand
	err  error
}

// Parsed returns the hand and the parse error, if any.
func (r Result) Parsed() (poker.Hand, error) {
	return r.hand, r.err
}

// Batch is the outcome of evaluating several inputs together.
type Batch struct {
	Results []Result `json:"results"`
	Winners []int    `json:"winners"` // indices into Results
}

// Invalid returns how many inputs failed to parse.
func (b Batch) Invalid() int {
	n := 0
	for _, r := range b.Results {
		if r.err != nil {
			n++
		}
	}
	return n
}

// Evaluate classifies a single input.
func Evaluate(input string) Result {
	hand, err := poker.ParseHand(input)
	if err != nil {
		return Result{Input: input, Error: err.Error(), err: err}
	}
	return Result{
		Input:    input,
		Hand:     hand.Tokens(),
		Display:  hand.String(),
		Category: hand.Category().String(),
		Strength: hand.Strength().String(),
		Score:    hand.Score(),
		hand:     hand,
	}
}

// EvaluateAll classifies inputs using up to workers goroutines (GOMAXPROCS
// when workers < 1). Results keep input order.
func EvaluateAll(ctx context.Context, inputs []string, workers int) (Batch, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	batch := Batch{
		Results: make([]Result, len(inputs)),
		Winners: []int{},
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch.Results[i] = Evaluate(input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}

	entries := make([]poker.Entry[int], 0, len(inputs))
	for i, r := range batch.Results {
		if r.err == nil {
			entries = append(entries, poker.Entry[int]{ID: i, Hand: r.hand})
		}
	}
	if winners := poker.SelectWinners(entries); winners != nil {
		batch.Winners = winners
	}
	for _, i := range batch.Winners {
		batch.Results[i].Winner = true
	}
	return batch, nil
}
