package mainmenu

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/client/rendering/components"
)

var tutorialLines = []string{
	"Introduction to Competitive Pokémon!",
	"",
	"Strategy revolves around predicting what your opponent will do and acting accordingly.",
	"In nearly every game type the goal is to make your opponent's Pokémon faint,",
	"and this is generally done by using moves to deal damage.",
	"",
	"Physical and Special moves:",
	"All attacking moves are either Physical or Special moves.",
	"Physical moves use your attacker's Attack stat against your target's Defense stat.",
	"Special moves use your attacker's Special Attack stat against the target's Special Defense stat.",
	"",
	"Format:",
	"This is a randomized 1 on 1 battle. Both Pokémon are picked at random",
	"from competitively viable formats, each with four random moves.",
	"The faster Pokémon moves first. The first one to drop to 0 HP loses.",
}

var controlLines = []string{
	"Up / K and Down / J to move through menus",
	"H / Left and L / Right to pick a move",
	"Enter to select",
	"Esc to go back",
	"If the damage calculator fails: R to retry, O to play offline, Esc to give up",
}

type helpMenuModel struct {
	backtrack components.Breadcrumbs
}

func newHelpMenu(backtrack components.Breadcrumbs) helpMenuModel {
	return helpMenuModel{backtrack}
}

func (m helpMenuModel) Init() tea.Cmd { return nil }
func (m helpMenuModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Help")
	tutorial := lipgloss.JoinVertical(lipgloss.Center, tutorialLines...)
	controls := rendering.ButtonStyle.Width(80).Render(lipgloss.JoinVertical(lipgloss.Left, controlLines...))

	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, title, "", tutorial, "", controls))
}

func (m helpMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.BackKey) || key.Matches(msg, global.SelectKey) {
			return m.backtrack.PopDefault(func() tea.Model { return NewModel() }), nil
		}
	}

	return m, nil
}
