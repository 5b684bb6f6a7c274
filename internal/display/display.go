// Package display renders cards, hands and tables for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/lox/pokerhands/internal/game"
	"github.com/lox/pokerhands/poker"
)

// WinnerMark prefixes winning players in a table.
const WinnerMark = "*"

// Renderer styles output for one destination writer.
type Renderer struct {
	lg *lipgloss.Renderer
	st styles
}

// New detects the color support of w.
func New(w io.Writer) *Renderer {
	return newRenderer(lipgloss.NewRenderer(w))
}

// NewWithProfile forces a color profile; termenv.Ascii yields plain text.
func NewWithProfile(w io.Writer, profile termenv.Profile) *Renderer {
	lg := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lg.SetColorProfile(profile)
	return newRenderer(lg)
}

func newRenderer(lg *lipgloss.Renderer) *Renderer {
	return &Renderer{lg: lg, st: newStyles(lg)}
}

// Card renders c in its display form, hearts and diamonds in red.
func (r *Renderer) Card(c poker.Card) string {
	if c.Suit().IsRed() {
		return r.st.red.Render(c.String())
	}
	return r.st.black.Render(c.String())
}

// Hand renders the cards of h in rank order.
func (r *Renderer) Hand(h poker.Hand) string {
	cards := h.Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = r.Card(c)
	}
	return strings.Join(out, " ")
}

// Evaluation renders one classified hand on a line.
func (r *Renderer) Evaluation(h poker.Hand) string {
	return fmt.Sprintf("%s  %s %s",
		r.Hand(h),
		r.st.title.Render(h.Strength().String()),
		r.st.muted.Render("score "+strconv.FormatInt(h.Score(), 10)))
}

// Error renders a failed evaluation.
func (r *Renderer) Error(input string, err error) string {
	return fmt.Sprintf("%q  %s", input, r.st.err.Render(err.Error()))
}

// Table renders the players of s with winners marked. selected highlights one
// row; pass -1 for none.
func (r *Renderer) Table(s game.State, selected int) string {
	rows := make([][]string, len(s.Players))
	for i, p := range s.Players {
		mark := ""
		if p.Winner {
			mark = WinnerMark
		}
		hand, err := poker.ParseHand(p.Hand)
		cards := p.Display
		if err == nil {
			cards = r.Hand(hand)
		}
		rows[i] = []string{mark, p.Name, cards, p.Strength, strconv.FormatInt(p.Score, 10)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.st.border).
		Headers("", "Player", "Hand", "Strength", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return r.st.header
			case row == selected:
				return r.st.selected
			case s.Players[row].Winner:
				return r.st.winner
			default:
				return r.st.cell
			}
		})

	title := r.st.title.Render(fmt.Sprintf("Deal #%d", s.Deal))
	if len(s.Players) == 0 {
		return title + "\n" + r.st.muted.Render("No players at the table.")
	}
	return title + "\n" + t.Render() + "\n" + r.Winners(s.Winners)
}

// Winners renders the winner summary line.
func (r *Renderer) Winners(names []string) string {
	switch len(names) {
	case 0:
		return r.st.muted.Render("No winner.")
	case 1:
		return r.st.winner.UnsetPadding().Render("Winner: " + names[0])
	default:
		return r.st.winner.UnsetPadding().Render("Tie: " + strings.Join(names, ", "))
	}
}
