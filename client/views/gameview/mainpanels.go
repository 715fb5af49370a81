package gameview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/samber/lo"
)

const (
	playerPanelWidth = 24
	moveButtonWidth  = 22
)

var (
	panelStyle            = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	highlightedPanelStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder(), true).BorderForeground(rendering.HighlightedColor).Padding(0, 1)
	turnStyle             = lipgloss.NewStyle().Bold(true).Foreground(rendering.HighlightedColor)
	errorStyle            = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).BorderForeground(rendering.ErrorColor).Width(60).Padding(1, 2).Align(lipgloss.Center)
)

func formatTurn(turn int) string {
	if turn == 0 {
		return "Get ready!"
	}

	return fmt.Sprintf("Turn %d", turn)
}

type playerPanel struct {
	name      string
	pokemon   duel.ParticipantView
	hp        int
	healthBar progress.Model
}

// hp is passed separately from the view so a draining bar can lag behind the battle
func newPlayerPanel(name string, pokemon duel.ParticipantView, hp int) playerPanel {
	progressBar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	progressBar.Width = playerPanelWidth * 3 / 4

	return playerPanel{
		name:      name,
		pokemon:   pokemon,
		hp:        hp,
		healthBar: progressBar,
	}
}

func (m playerPanel) View() string {
	types := lo.Map(m.pokemon.Types, func(typeName string, _ int) string {
		return rendering.TypeStyle(typeName).Padding(0, 1).Render(typeName)
	})

	pokeInfo := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(m.pokemon.Name),
		strings.Join(types, " "),
		m.healthBar.ViewAs(float64(m.hp)/float64(duel.MAX_HP)),
		fmt.Sprintf("HP: %d/%d", m.hp, duel.MAX_HP),
	)

	pokeStyle := lipgloss.NewStyle().Align(lipgloss.Center).Border(lipgloss.NormalBorder(), true).Width(playerPanelWidth).Height(5)

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Center, m.name, pokeStyle.Render(pokeInfo)))
}

// movePanel is the 2x2 grid of the player's moves
type movePanel struct {
	moves         []string
	moveGridFocus int
}

func newMovePanel(moves []string) movePanel {
	return movePanel{moves: moves}
}

func (m movePanel) Selected() string {
	if m.moveGridFocus < 0 || m.moveGridFocus >= len(m.moves) {
		return ""
	}

	return m.moves[m.moveGridFocus]
}

func (m movePanel) View() string {
	grid := make([]string, 0, 2)

	for i := 0; i < 2; i++ {
		row := make([]string, 0, 2)
		for j := 0; j < 2; j++ {
			index := (i * 2) + j

			if index >= len(m.moves) {
				row = append(row, panelStyle.Width(moveButtonWidth).Render("-"))
				continue
			}

			move := m.moves[index]
			style := panelStyle
			if index == m.moveGridFocus {
				style = highlightedPanelStyle
			}

			label := rendering.TypeStyle(global.DEX.MoveType(move)).Width(moveButtonWidth).Align(lipgloss.Center).Render(move)
			row = append(row, style.Render(label))
		}

		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Center, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Center, grid...)
}

func (m movePanel) Update(msg tea.Msg) movePanel {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.moves) == 0 {
		return m
	}

	last := len(m.moves) - 1

	switch {
	case key.Matches(keyMsg, global.MoveLeftKey):
		m.moveGridFocus = max(0, m.moveGridFocus-1)
	case key.Matches(keyMsg, global.MoveRightKey):
		m.moveGridFocus = min(last, m.moveGridFocus+1)
	case key.Matches(keyMsg, global.MoveDownKey):
		if m.moveGridFocus+2 <= last {
			m.moveGridFocus += 2
		}
	case key.Matches(keyMsg, global.MoveUpKey):
		if m.moveGridFocus-2 >= 0 {
			m.moveGridFocus -= 2
		}
	}

	return m
}

func errorPanel(err error) string {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}

	return errorStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Foreground(rendering.ErrorColor).Render("The damage calculator failed"),
		message,
		"",
		"[r] retry   [o] play offline   [esc] give up",
	))
}
