package mainmenu

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/rendering"
	"github.com/nathanieltooley/pokeduel/client/rendering/components"
	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/rs/zerolog/log"
)

type optionsMenuModel struct {
	backtrack components.Breadcrumbs

	focus           components.Focus
	shouldShowError bool
	err             error

	// saves the config, swapped out in tests
	save func(global.GlobalConfig) error
}

type clearErrorMessage struct {
	t time.Time
}

type playerNameInput struct {
	inner textinput.Model
}

func (p *playerNameInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{p.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			playerName := "Player"
			if p.inner.Value() != "" {
				playerName = p.inner.Value()
			}

			global.Opt.LocalPlayerName = playerName
			cmds = append(cmds, opM.saveOptions())
		}
	}

	var uCmd tea.Cmd
	p.inner, uCmd = p.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (p *playerNameInput) Blur() {
	p.inner.Blur()
}

func (p *playerNameInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "Player Name", p.inner.View())
}
func (p *playerNameInput) FocusedView() string { return p.View() }

type oracleURLInput struct {
	inner textinput.Model
}

func (o *oracleURLInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{o.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			if err := validateOracleURL(o.inner.Value()); err != nil {
				cmds = append(cmds, opM.showError(err))
			} else {
				global.Opt.OracleURL = o.inner.Value()
				cmds = append(cmds, opM.saveOptions())
			}
		}
	}

	var uCmd tea.Cmd
	o.inner, uCmd = o.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (o *oracleURLInput) Blur() {
	o.inner.Blur()
}

func (o *oracleURLInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "Damage Calculator URL", o.inner.View())
}
func (o *oracleURLInput) FocusedView() string { return o.View() }

type offlineToggle struct {
	focused bool
}

func (o *offlineToggle) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	o.focused = true

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			global.Opt.OfflineOracle = !global.Opt.OfflineOracle
			cmd := opM.saveOptions()
			return opM, cmd
		}
	}

	return opM, nil
}

func (o *offlineToggle) Blur() {
	o.focused = false
}

func (o *offlineToggle) View() string {
	state := "Off"
	if global.Opt.OfflineOracle {
		state = "On"
	}

	label := fmt.Sprintf("Offline Damage: %s", state)
	if o.focused {
		return rendering.HighlightedItemStyle.Render("> " + label)
	}

	return rendering.ItemStyle.Render(label)
}
func (o *offlineToggle) FocusedView() string { return o.View() }

type timeoutInput struct {
	inner textinput.Model
}

func (ti *timeoutInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{ti.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			if seconds, err := parseTimeout(ti.inner.Value()); err != nil {
				cmds = append(cmds, opM.showError(err))
			} else {
				global.Opt.OracleTimeoutSeconds = seconds
				cmds = append(cmds, opM.saveOptions())
			}
		}
	}

	var uCmd tea.Cmd
	ti.inner, uCmd = ti.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (ti *timeoutInput) Blur() {
	ti.inner.Blur()
}

func (ti *timeoutInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "Damage Calculator Timeout (seconds)", ti.inner.View())
}
func (ti *timeoutInput) FocusedView() string { return ti.View() }

type dataDirInput struct {
	inner textinput.Model
}

func (d *dataDirInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{d.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			dir := strings.TrimSpace(d.inner.Value())
			if err := validateDataDir(dir); err != nil {
				cmds = append(cmds, opM.showError(err))
			} else {
				global.Opt.DataDir = dir
				cmds = append(cmds, opM.saveOptions())
			}
		}
	}

	var uCmd tea.Cmd
	d.inner, uCmd = d.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (d *dataDirInput) Blur() {
	d.inner.Blur()
}

// data is only loaded at startup
func (d *dataDirInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "Data Directory (empty for built in, applies on restart)", d.inner.View())
}
func (d *dataDirInput) FocusedView() string { return d.View() }

func newOptionsMenu(backtrack components.Breadcrumbs) optionsMenuModel {
	namePrompt := textinput.New()
	namePrompt.SetValue(global.Opt.LocalPlayerName)
	namePrompt.Focus()

	urlPrompt := textinput.New()
	urlPrompt.CharLimit = 256
	urlPrompt.Width = 50
	urlPrompt.SetValue(global.Opt.OracleURL)

	timeoutPrompt := textinput.New()
	timeoutPrompt.CharLimit = 4
	timeoutPrompt.SetValue(strconv.Itoa(global.Opt.OracleTimeoutSeconds))

	dataDirPrompt := textinput.New()
	dataDirPrompt.CharLimit = 512
	dataDirPrompt.Width = 50
	dataDirPrompt.SetValue(global.Opt.DataDir)

	return optionsMenuModel{
		backtrack: backtrack,
		focus: components.NewFocus(
			&playerNameInput{namePrompt},
			&oracleURLInput{urlPrompt},
			&offlineToggle{},
			&timeoutInput{timeoutPrompt},
			&dataDirInput{dataDirPrompt},
		),
		save: global.SaveConfig,
	}
}

func (m optionsMenuModel) Init() tea.Cmd { return nil }
func (m optionsMenuModel) View() string {
	if m.shouldShowError {
		return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, "Error!", rendering.ButtonStyle.Render(m.err.Error())))
	}

	views := append(m.focus.Views(), "", "Tab to switch fields, Enter to save, Esc to go back")
	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, views...))
}

func (m optionsMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearErrorMessage:
		m.shouldShowError = false
		m.err = nil
		return m, nil
	case tea.KeyMsg:
		if m.shouldShowError {
			return m, nil
		}

		if key.Matches(msg, global.DownTabKey) {
			m.focus.Next()
		}

		if key.Matches(msg, global.UpTabKey) {
			m.focus.Prev()
		}

		if key.Matches(msg, global.BackKey) {
			return m.backtrack.PopDefault(func() tea.Model { return NewModel() }), nil
		}
	}

	return m.focus.UpdateFocused(m, msg)
}

// saveOptions writes global.Opt to disk. Errors are shown but the option stays
// applied for this session.
func (m *optionsMenuModel) saveOptions() tea.Cmd {
	if err := m.save(global.Opt); err != nil {
		return m.showError(err)
	}

	log.Info().Interface("config", global.Opt).Msg("saved options")
	return nil
}

func (m *optionsMenuModel) showError(err error) tea.Cmd {
	m.shouldShowError = true
	m.err = err

	log.Err(err).Msg("error in options")

	return tea.Tick(time.Second*2, func(t time.Time) tea.Msg {
		return clearErrorMessage{t}
	})
}

func validateOracleURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("damage calculator URL must start with http:// or https://")
	}

	if parsed.Host == "" {
		return errors.New("damage calculator URL needs a host")
	}

	return nil
}

func parseTimeout(raw string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("timeout must be a whole number of seconds")
	}

	if seconds <= 0 {
		return 0, errors.New("timeout must be at least 1 second")
	}

	return seconds, nil
}

// validateDataDir accepts an empty dir (built in data) or a directory holding both data files
func validateDataDir(dir string) error {
	if dir == "" {
		return nil
	}

	for _, name := range []string{duel.POKEMON_FILE, duel.MOVE_FILE} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("data directory is missing %s: %w", name, err)
		}
	}

	return nil
}
