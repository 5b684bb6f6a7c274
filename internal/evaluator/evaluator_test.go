package evaluator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhands/poker"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	r := Evaluate("QH QD QS TC TD")
	assert.Equal(t, "TC TD QH QD QS", r.Hand)
	assert.Equal(t, "10C, 10D, QH, QD, QS", r.Display)
	assert.Equal(t, "Full House", r.Category)
	assert.Equal(t, "Full House [Q T]", r.Strength)
	assert.Empty(t, r.Error)

	hand, err := r.Parsed()
	require.NoError(t, err)
	assert.Equal(t, hand.Score(), r.Score)

	bad := Evaluate("QH QD QS TC")
	_, err = bad.Parsed()
	assert.True(t, errors.Is(err, poker.ErrInvalidHand))
	assert.NotEmpty(t, bad.Error)
	assert.Empty(t, bad.Category)
}

func TestEvaluateAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inputs  []string
		winners []int
		invalid int
	}{
		{"empty", nil, []int{}, 0},
		{"high cards compare lowest rank first", []string{"2H 3D 5S 9C KD", "2C 3H 4S 8C AH"}, []int{0}, 0},
		{"full house beats flush", []string{"2H 4S 4C 2D 4H", "2S 8S AS QS 3S"}, []int{0}, 0},
		{"tie", []string{"2H 4D 5C 2D 6H", "2C 4H 5S 2S 6D"}, []int{0, 1}, 0},
		{"invalid lines are skipped", []string{"XX", "2H 4D 5C 2D 6H", ""}, []int{1}, 2},
		{"nothing valid", []string{"AS", "1S 2S 3S 4S 5S"}, []int{}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			batch, err := EvaluateAll(context.Background(), tt.inputs, 2)
			require.NoError(t, err)
			require.Len(t, batch.Results, len(tt.inputs))
			assert.Equal(t, tt.winners, batch.Winners)
			assert.Equal(t, tt.invalid, batch.Invalid())
			for i, r := range batch.Results {
				assert.Equal(t, tt.inputs[i], r.Input)
				assert.Equal(t, contains(tt.winners, i), r.Winner)
			}
		})
	}
}

func TestEvaluateAllKeepsOrder(t *testing.T) {
	t.Parallel()

	inputs := make([]string, 200)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("%s 3D 5S 9C KD", []string{"2H", "4H", "6H", "7H"}[i%4])
	}
	batch, err := EvaluateAll(context.Background(), inputs, 0)
	require.NoError(t, err)
	for i, r := range batch.Results {
		assert.Equal(t, inputs[i], r.Input)
		assert.Equal(t, "High Card", r.Category)
	}
	// 3 5 7 9 K outranks 3 5 6 9 K and the rest
	assert.Len(t, batch.Winners, 50)
}

func TestEvaluateAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EvaluateAll(ctx, []string{"2H 3D 5S 9C KD"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
