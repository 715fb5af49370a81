package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type namedModel string

func (m namedModel) Init() tea.Cmd                       { return nil }
func (m namedModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m namedModel) View() string                        { return string(m) }

func TestBreadcrumbs(t *testing.T) {
	root := NewBreadcrumb()
	first := root.PushNew(func() tea.Model { return namedModel("menu") })
	second := first.PushNew(func() tea.Model { return namedModel("options") })

	if second.Pop().View() != "options" {
		t.Fatalf("expected the most recent screen")
	}

	if first.Pop().View() != "menu" {
		t.Fatalf("earlier copies should be unaffected by later pushes")
	}

	if root.PopDefault(func() tea.Model { return namedModel("default") }).View() != "default" {
		t.Fatalf("empty stack should use the default")
	}
}

func TestMenuButtons(t *testing.T) {
	clicked := ""
	buttons := NewMenuButton([]ViewButton{
		{Name: "Play", OnClick: func() (tea.Model, tea.Cmd) { clicked = "Play"; return namedModel("play"), nil }},
		{Name: "Quit", OnClick: func() (tea.Model, tea.Cmd) { clicked = "Quit"; return namedModel("quit"), tea.Quit }},
	})

	if model, _ := buttons.Update(tea.KeyMsg{Type: tea.KeyTab}); model != nil {
		t.Fatalf("moving should not select anything")
	}

	if buttons.Selected() != "Quit" {
		t.Fatalf("expected Quit to be highlighted, got %s", buttons.Selected())
	}

	buttons.Update(tea.KeyMsg{Type: tea.KeyTab})
	if buttons.Selected() != "Play" {
		t.Fatalf("selection should wrap around, got %s", buttons.Selected())
	}

	model, _ := buttons.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model == nil || model.View() != "play" || clicked != "Play" {
		t.Fatalf("enter should click the highlighted button")
	}
}
