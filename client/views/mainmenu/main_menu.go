package mainmenu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/client/rendering/components"
	"github.com/nathanieltooley/pokeduel/client/views/gameview"
)

type MainMenuModel struct {
	buttons components.MenuButtons
}

func NewModel() MainMenuModel {
	buttons := []components.ViewButton{
		{
			Name: "Play",
			OnClick: func() (tea.Model, tea.Cmd) {
				return gameview.NewGame(func() tea.Model { return NewModel() })
			},
		},
		{
			Name: "Help",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				return newHelpMenu(backtrack.PushNew(func() tea.Model { return NewModel() })), nil
			},
		},
		{
			Name: "Options",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				return newOptionsMenu(backtrack.PushNew(func() tea.Model { return NewModel() })), nil
			},
		},
		{
			Name: "Quit",
			OnClick: func() (tea.Model, tea.Cmd) {
				return NewModel(), tea.Quit
			},
		},
	}

	return MainMenuModel{
		buttons: components.NewMenuButton(buttons),
	}
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(rendering.HighlightedColor).Render("PokeDuel!")
	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, header, m.buttons.View()))
}

func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.buttons.Update(msg)
	if newModel != nil {
		return newModel, cmd
	}

	return m, nil
}
