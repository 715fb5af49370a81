package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Breadcrumbs is a stack of screens to go back to
type Breadcrumbs struct {
	backtrace []func() tea.Model
}

func NewBreadcrumb() Breadcrumbs {
	return Breadcrumbs{}
}

// Push a function that creates the previous screen onto the stack.
// Returns the modified copy.
func (b Breadcrumbs) PushNew(modelFunc func() tea.Model) Breadcrumbs {
	b.backtrace = append(b.backtrace[:len(b.backtrace):len(b.backtrace)], modelFunc)

	log.Debug().Int("depth", len(b.backtrace)).Msg("breadcrumb pushed")
	return b
}

// Pop rebuilds the most recent screen. Returns nil when the stack is empty.
func (b Breadcrumbs) Pop() tea.Model {
	l := len(b.backtrace)
	if l == 0 {
		return nil
	}

	log.Debug().Int("depth", l-1).Msg("breadcrumb popped")
	return b.backtrace[l-1]()
}

func (b Breadcrumbs) PopDefault(def func() tea.Model) tea.Model {
	if model := b.Pop(); model != nil {
		return model
	}

	return def()
}
