package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/views/mainmenu"
	"github.com/nathanieltooley/pokeduel/data"
	"github.com/rs/zerolog/log"
)

type model struct {
	currentView tea.Model
}

func (m model) Init() tea.Cmd {
	return m.currentView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	newView, cmd := m.currentView.Update(msg)

	m.currentView = newView

	return m, cmd
}

func (m model) View() string {
	return m.currentView.View()
}

func main() {
	if err := global.GlobalInit(data.Files); err != nil {
		log.Err(err).Msg("Failed to start")
		// the logger writes to a file, make sure the user sees why we quit
		fmt.Fprintf(os.Stderr, "failed to start: %s\n", err)
		os.Exit(1)
	}

	m := model{
		currentView: mainmenu.NewModel(),
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal().Err(err).Msg("Error running program")
	}
}
