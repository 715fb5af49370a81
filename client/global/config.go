package global

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nathanieltooley/pokeduel/duel"
	"github.com/nathanieltooley/pokeduel/oracle"
)

const APP_NAME = "pokeduel"

type GlobalConfig struct {
	LocalPlayerName string
	// Remote damage calculator, see oracle.Client
	OracleURL            string
	OracleTimeoutSeconds int
	// Use the offline damage estimate instead of the remote calculator
	OfflineOracle bool
	// Directory holding pokemon-data.csv and move-data.csv. Empty uses the bundled data.
	DataDir string
	Debug   bool
}

func DefaultConfigDir() string {
	configDir, _ := os.UserConfigDir()
	return filepath.Join(configDir, APP_NAME)
}

func DefaultConfigLocation() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func SaveConfig(config GlobalConfig) error {
	return writeConfig(DefaultConfigLocation(), config)
}

func writeConfig(path string, config GlobalConfig) error {
	jsonBytes, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, jsonBytes, 0644)
}

// readConfig loads the config at path. A missing or empty file is created with default values.
// Defaults are also returned alongside any read or parse error.
func readConfig(path string) (GlobalConfig, error) {
	configContents, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return populateConfig(GlobalConfig{}), err
	}

	if len(configContents) == 0 {
		config := populateConfig(GlobalConfig{})
		return config, writeConfig(path, config)
	}

	config := GlobalConfig{}
	if err := json.Unmarshal(configContents, &config); err != nil {
		return populateConfig(GlobalConfig{}), err
	}

	return populateConfig(config), nil
}

func populateConfig(config GlobalConfig) GlobalConfig {
	if config.LocalPlayerName == "" {
		config.LocalPlayerName = "Player"
	}
	if config.OracleURL == "" {
		config.OracleURL = oracle.DEFAULT_URL
	}
	if config.OracleTimeoutSeconds <= 0 {
		config.OracleTimeoutSeconds = int(duel.DEFAULT_ORACLE_TIMEOUT.Seconds())
	}

	return config
}
