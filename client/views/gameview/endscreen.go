package gameview

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/client/rendering/components"
)

type endModel struct {
	message string
	buttons components.MenuButtons
}

func newEndScreen(message string, exit func() tea.Model) endModel {
	buttons := []components.ViewButton{
		{
			Name: "Play Again",
			OnClick: func() (tea.Model, tea.Cmd) {
				return NewGame(exit)
			},
		},
		{
			Name: "Main Menu",
			OnClick: func() (tea.Model, tea.Cmd) {
				return exit(), nil
			},
		},
		{
			Name: "Quit",
			OnClick: func() (tea.Model, tea.Cmd) {
				return exit(), tea.Quit
			},
		},
	}

	return endModel{
		message: message,
		buttons: components.NewMenuButton(buttons),
	}
}

func (m endModel) Init() tea.Cmd { return nil }
func (m endModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(rendering.HighlightedColor).Render("Game Over")
	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, header, m.message, m.buttons.View()))
}

func (m endModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.buttons.Update(msg)
	if newModel != nil {
		return newModel, cmd
	}

	return m, nil
}
