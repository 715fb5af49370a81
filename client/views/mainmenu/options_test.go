package mainmenu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nathanieltooley/pokeduel/client/global"
	"github.com/nathanieltooley/pokeduel/client/rendering/components"
	"github.com/nathanieltooley/pokeduel/duel"
)

func newTestOptions(saved *[]global.GlobalConfig, saveErr error) optionsMenuModel {
	m := newOptionsMenu(components.NewBreadcrumb())
	m.save = func(config global.GlobalConfig) error {
		*saved = append(*saved, config)
		return saveErr
	}

	return m
}

func press(m tea.Model, keyType tea.KeyType) tea.Model {
	newModel, _ := m.Update(tea.KeyMsg{Type: keyType})
	return newModel
}

func TestOptionsToggleOffline(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()
	global.Opt.OfflineOracle = false

	var saved []global.GlobalConfig
	var m tea.Model = newTestOptions(&saved, nil)

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	if !global.Opt.OfflineOracle {
		t.Fatalf("enter on the toggle should turn the offline oracle on")
	}

	if len(saved) != 1 || !saved[0].OfflineOracle {
		t.Fatalf("toggle should save the config, saved %+v", saved)
	}
}

func TestOptionsRejectsBadURL(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()
	global.Opt.OracleURL = "not a url"

	var saved []global.GlobalConfig
	var m tea.Model = newTestOptions(&saved, nil)

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyEnter)

	if !m.(optionsMenuModel).shouldShowError {
		t.Fatalf("an invalid url should show an error")
	}

	if len(saved) != 0 {
		t.Fatalf("invalid url should not be saved")
	}

	// keys are ignored while the error is up
	m = press(m, tea.KeyEsc)
	if _, ok := m.(optionsMenuModel); !ok {
		t.Fatalf("error screen should swallow key presses")
	}

	m, _ = m.Update(clearErrorMessage{})
	if m.(optionsMenuModel).shouldShowError {
		t.Fatalf("error should clear")
	}
}

func TestOptionsSaveError(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()

	var saved []global.GlobalConfig
	var m tea.Model = newTestOptions(&saved, errors.New("read only file system"))

	m = press(m, tea.KeyEnter)

	options := m.(optionsMenuModel)
	if !options.shouldShowError || options.err == nil {
		t.Fatalf("a failed save should be shown")
	}
}

func TestValidateOracleURL(t *testing.T) {
	for _, valid := range []string{"https://calc-api.herokuapp.com/calc-api", "http://localhost:3000/calc"} {
		if err := validateOracleURL(valid); err != nil {
			t.Fatalf("%s should be valid: %s", valid, err)
		}
	}

	for _, invalid := range []string{"", "calc-api.herokuapp.com", "ftp://example.com", "https://"} {
		if err := validateOracleURL(invalid); err == nil {
			t.Fatalf("%s should be invalid", invalid)
		}
	}
}

// focusItem tabs to the item at index and returns the model
func focusItem(m tea.Model, index int) tea.Model {
	for range index {
		m = press(m, tea.KeyTab)
	}

	return m
}

func TestOptionsSaveTimeout(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()
	global.Opt.OracleTimeoutSeconds = 10

	var saved []global.GlobalConfig
	options := newTestOptions(&saved, nil)
	options.focus.Items[3].(*timeoutInput).inner.SetValue("25")

	m := press(focusItem(options, 3), tea.KeyEnter)

	if global.Opt.OracleTimeoutSeconds != 25 {
		t.Fatalf("expected a 25 second timeout, got %d", global.Opt.OracleTimeoutSeconds)
	}

	if len(saved) != 1 || saved[0].OracleTimeoutSeconds != 25 {
		t.Fatalf("timeout should be saved, saved %+v", saved)
	}

	if m.(optionsMenuModel).shouldShowError {
		t.Fatalf("a valid timeout should not show an error")
	}
}

func TestOptionsRejectsBadTimeout(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()
	global.Opt.OracleTimeoutSeconds = 10

	for _, value := range []string{"0", "-3", "soon"} {
		var saved []global.GlobalConfig
		options := newTestOptions(&saved, nil)
		options.focus.Items[3].(*timeoutInput).inner.SetValue(value)

		m := press(focusItem(options, 3), tea.KeyEnter)

		if !m.(optionsMenuModel).shouldShowError || len(saved) != 0 {
			t.Fatalf("%q should be rejected", value)
		}

		if global.Opt.OracleTimeoutSeconds != 10 {
			t.Fatalf("%q should not change the timeout", value)
		}
	}
}

func TestOptionsSaveDataDir(t *testing.T) {
	previous := global.Opt
	defer func() { global.Opt = previous }()
	global.Opt.DataDir = ""

	dir := t.TempDir()

	var saved []global.GlobalConfig
	options := newTestOptions(&saved, nil)
	options.focus.Items[4].(*dataDirInput).inner.SetValue(dir)

	m := press(focusItem(options, 4), tea.KeyEnter)
	if !m.(optionsMenuModel).shouldShowError || len(saved) != 0 {
		t.Fatalf("a directory without data files should be rejected")
	}

	for _, name := range []string{duel.POKEMON_FILE, duel.MOVE_FILE} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("Name\n"), 0644); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	options = newTestOptions(&saved, nil)
	options.focus.Items[4].(*dataDirInput).inner.SetValue(dir)
	press(focusItem(options, 4), tea.KeyEnter)

	if global.Opt.DataDir != dir || len(saved) != 1 || saved[0].DataDir != dir {
		t.Fatalf("data dir should be saved, got %q, saved %+v", global.Opt.DataDir, saved)
	}
}

func TestValidateDataDirEmpty(t *testing.T) {
	if err := validateDataDir(""); err != nil {
		t.Fatalf("empty data dir means built in data: %s", err)
	}
}
