package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.DefaultSession.Title != "New Session" {
		t.Fatalf("unexpected default title: %q", settings.DefaultSession.Title)
	}
	if settings.DefaultSession.DurationMinutes != 30 || settings.DefaultSession.DailyGoalMinutes != 30 {
		t.Fatalf("unexpected default template: %+v", settings.DefaultSession)
	}
}

func TestLoadSettingsParsesAndClamps(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	payload := []byte("chime_command: [paplay, /tmp/chime.oga]\ndefault_session:\n  title: Focus\n  duration_minutes: 0\n  daily_goal_minutes: -5\n")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if len(settings.ChimeCommand) != 2 || settings.ChimeCommand[0] != "paplay" {
		t.Fatalf("unexpected chime command: %v", settings.ChimeCommand)
	}
	if settings.DefaultSession.Title != "Focus" {
		t.Fatalf("unexpected title: %q", settings.DefaultSession.Title)
	}
	if settings.DefaultSession.DurationMinutes != 1 {
		t.Fatalf("duration should clamp to 1, got %d", settings.DefaultSession.DurationMinutes)
	}
	if settings.DefaultSession.DailyGoalMinutes != 0 {
		t.Fatalf("goal should clamp to 0, got %d", settings.DefaultSession.DailyGoalMinutes)
	}
}

func TestLoadSettingsMalformedFallsBack(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	settings, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if settings.DefaultSession.DurationMinutes != 30 {
		t.Fatalf("expected defaults on parse failure, got %+v", settings.DefaultSession)
	}
}
