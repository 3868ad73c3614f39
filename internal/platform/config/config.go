package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir      string
	DBPath       string
	SettingsPath string
}

// New resolves the data directory, defaulting to ~/.focusflow when empty.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".focusflow")
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "history.db"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
	}, nil
}
