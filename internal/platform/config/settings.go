package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings are the user-editable knobs that live outside the engine state.
type Settings struct {
	// ChimeCommand overrides the platform default completion sound player.
	// First element is the binary, the rest are arguments.
	ChimeCommand []string `yaml:"chime_command"`

	DefaultSession struct {
		Title            string `yaml:"title"`
		DurationMinutes  int    `yaml:"duration_minutes"`
		DailyGoalMinutes int    `yaml:"daily_goal_minutes"`
	} `yaml:"default_session"`
}

func DefaultSettings() Settings {
	s := Settings{}
	s.DefaultSession.Title = "New Session"
	s.DefaultSession.DurationMinutes = 30
	s.DefaultSession.DailyGoalMinutes = 30
	return s
}

// LoadSettings reads the yaml settings file. A missing file yields defaults;
// a malformed file yields defaults plus the parse error so callers can log it.
func LoadSettings(path string) (Settings, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return DefaultSettings(), fmt.Errorf("read settings: %w", err)
	}
	settings := DefaultSettings()
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	if settings.DefaultSession.DurationMinutes < 1 {
		settings.DefaultSession.DurationMinutes = 1
	}
	if settings.DefaultSession.DailyGoalMinutes < 0 {
		settings.DefaultSession.DailyGoalMinutes = 0
	}
	return settings, nil
}
