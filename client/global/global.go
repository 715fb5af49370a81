package global

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/zerologr"
	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/nathanieltooley/pokeduel/oracle"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

var (
	TERM_WIDTH, TERM_HEIGHT, _ = term.GetSize(int(os.Stdout.Fd()))

	SelectKey = key.NewBinding(
		key.WithKeys("enter"),
	)
	MoveLeftKey = key.NewBinding(
		key.WithKeys("left", "h"),
	)
	MoveRightKey = key.NewBinding(
		key.WithKeys("right", "l"),
	)
	MoveDownKey = key.NewBinding(
		key.WithKeys("down", "j"),
	)
	MoveUpKey = key.NewBinding(
		key.WithKeys("up", "k"),
	)

	DownTabKey = key.NewBinding(key.WithKeys(tea.KeyTab.String()))
	UpTabKey   = key.NewBinding(key.WithKeys(tea.KeyShiftTab.String()))

	BackKey = key.NewBinding(key.WithKeys(tea.KeyEsc.String()))

	// oracle error screen
	RetryKey   = key.NewBinding(key.WithKeys("r"))
	OfflineKey = key.NewBinding(key.WithKeys("o"))

	Opt = populateConfig(GlobalConfig{})

	DEX duel.Dex

	// Global RNG that can be changed for testing purposes
	RNG = duel.NewRandomRNG()
)

// GlobalInit reads (or creates) the config file, sets up logging and loads the pokemon data.
// files is used when no data directory is configured.
func GlobalInit(files fs.FS) error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	config, configErr := readConfig(DefaultConfigLocation())
	Opt = config

	level := zerolog.InfoLevel
	if Opt.Debug {
		level = zerolog.DebugLevel
		zerologr.SetMaxV(2)
	}

	// Main global logger
	log.Logger = createLogger(configDir, level)

	// a broken config file is not fatal, defaults are used instead
	if configErr != nil {
		log.Err(configErr).Str("path", DefaultConfigLocation()).Msg("could not read config, using defaults")
	}

	engineLogger := zerologr.New(&log.Logger)
	duel.SetInternalLogger(engineLogger)
	oracle.SetInternalLogger(engineLogger)

	dataFiles := files
	if Opt.DataDir != "" {
		dataFiles = os.DirFS(Opt.DataDir)
	}

	dex, err := duel.DefaultLoader(dataFiles)
	if err != nil {
		return err
	}

	DEX = dex

	log.Info().Int("pokemon", len(DEX.Pokemon)).Int("moves", len(DEX.Moves)).Str("data_dir", Opt.DataDir).Msg("data loaded")

	return nil
}

// NewOracle builds the damage oracle selected in the config
func NewOracle() duel.DamageOracle {
	if Opt.OfflineOracle {
		return oracle.NewLocal(DEX)
	}

	return oracle.NewClient(Opt.OracleURL, nil)
}

func OracleTimeout() time.Duration {
	return time.Duration(Opt.OracleTimeoutSeconds) * time.Second
}

func createFileWriter(configDir string) zerolog.ConsoleWriter {
	rollingWriter := NewRollingFileWriter(filepath.Join(configDir, "logs/"), APP_NAME)
	return zerolog.ConsoleWriter{Out: rollingWriter, NoColor: true, TimeFormat: time.DateTime}
}

func createLogger(configDir string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(createFileWriter(configDir)).With().Timestamp().Caller().Logger().Level(level)
}

func ForceRng(source rand.Source) {
	RNG = rand.New(source)
}

func SetNormalRng() {
	RNG = duel.NewRandomRNG()
}
