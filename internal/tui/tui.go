// Package tui is the interactive table: redeal, seat and unseat players and
// watch the winners change.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokerhands/internal/display"
	"github.com/lox/pokerhands/internal/game"
)

const helpText = "r redeal • a add player • x remove selected • ↑/↓ select • q quit"

// Model is the bubbletea model for one table.
type Model struct {
	game     *game.Game
	render   *display.Renderer
	logger   *log.Logger
	input    textinput.Model
	adding   bool
	selected int
	status   string
	err      error
	quitting bool
}

// New builds a model around g.
func New(g *game.Game, r *display.Renderer, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "player name"
	ti.Prompt = "name> "
	ti.CharLimit = 32
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		game:   g,
		render: r,
		logger: logger.WithPrefix("tui"),
		input:  ti,
	}
}

// Run shows the model until the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.adding {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if key.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.adding {
		return m.updateAdding(key)
	}

	m.err = nil
	switch key.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.setResult("Redealt.", m.game.Redeal())
	case "a":
		m.adding = true
		m.status = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case "x", "delete":
		players := m.game.Players()
		if len(players) == 0 {
			m.err = game.ErrPlayerNotFound
			break
		}
		name := players[m.selected].Name
		m.setResult(fmt.Sprintf("Removed %s.", name), m.game.RemovePlayer(name))
		m.clampSelection()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.game.Players())-1 {
			m.selected++
		}
	}
	return m, nil
}

func (m *Model) updateAdding(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.setResult(fmt.Sprintf("Seated %s.", name), m.game.AddPlayer(name))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) setResult(status string, err error) {
	if err != nil {
		m.logger.Debug("table change rejected", "error", err)
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.status = status
}

func (m *Model) clampSelection() {
	n := len(m.game.Players())
	m.selected = max(0, min(m.selected, n-1))
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Poker Hands"))
	b.WriteString("\n\n")
	b.WriteString(m.render.Table(m.game.Snapshot(), m.selected))
	b.WriteString("\n\n")
	switch {
	case m.adding:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(StatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(helpText))
	return b.String()
}

// Selected returns the index of the highlighted player.
func (m *Model) Selected() int {
	return m.selected
}
