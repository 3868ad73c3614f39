package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Historical key variants per field, highest priority first. Kept as explicit
// lists so new fields never silently widen the untyped surface.
var (
	legacyTitleKeys    = []string{"title", "name"}
	legacyDurationKeys = []string{"sessionDuration", "initialDuration", "durationSeconds", "duration", "sessionLength"}
	legacyTimeLeftKeys = []string{"timeLeft", "remainingSeconds", "remaining", "timeRemaining"}
	legacyDoneKeys     = []string{"isCompleted", "completed", "isDone"}
	legacyGoalKeys     = []string{"dailyGoalMinutes", "goalMinutes", "dailyGoal", "targetMinutes"}
	legacyFocusKeys    = []string{"focusSeconds", "progressSeconds", "accumulatedFocusSeconds", "focusTime"}
	legacyTargetKeys   = []string{"targetTimeMs", "targetTimestamp", "endTimeMs"}
	legacyStateKeys    = []string{"state", "status"}
)

func toNumber(val any, fallback float64) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

func firstNumber(raw map[string]any, keys []string, fallback float64) float64 {
	for _, key := range keys {
		if val, ok := raw[key]; ok && val != nil {
			return toNumber(val, fallback)
		}
	}
	return fallback
}

func firstBool(raw map[string]any, keys []string) bool {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case bool:
			return v
		case float64:
			return v != 0
		}
	}
	return false
}

func normalizeState(raw map[string]any) TimerState {
	for _, key := range legacyStateKeys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case float64:
			if v == 1 {
				return StateRunning
			}
			return StatePaused
		case string:
			if v == "0" {
				return StatePaused
			}
			if v == "1" {
				return StateRunning
			}
			upper := strings.ToUpper(v)
			if strings.Contains(upper, "RUN") {
				return StateRunning
			}
			if strings.Contains(upper, "PAUSE") {
				return StatePaused
			}
		}
	}
	if running, ok := raw["isRunning"].(bool); ok && running {
		return StateRunning
	}
	return StatePaused
}

// MigrateLegacy maps one loosely-typed persisted record onto the current
// Session shape. It returns false only when raw is not an object. A zero ID
// means the record carried none; ParseSessions assigns a unique one.
func MigrateLegacy(raw any) (Session, bool) {
	record, ok := raw.(map[string]any)
	if !ok || record == nil {
		return Session{}, false
	}

	session := Session{
		ID: int(firstNumber(record, []string{"id", "sessionId"}, 0)),
	}

	session.Title = "Session"
	for _, key := range legacyTitleKeys {
		if title, ok := record[key].(string); ok && title != "" {
			session.Title = title
			break
		}
	}

	session.SessionDuration = int(firstNumber(record, legacyDurationKeys, DefaultDurationSeconds))
	session.TimeLeft = int(firstNumber(record, legacyTimeLeftKeys, float64(session.SessionDuration)))
	session.IsCompleted = firstBool(record, legacyDoneKeys)
	session.DailyGoalMinutes = int(firstNumber(record, legacyGoalKeys, DefaultDailyGoalMinutes))
	session.FocusSeconds = int(firstNumber(record, legacyFocusKeys, 0))
	session.TargetTimeMs = int64(firstNumber(record, legacyTargetKeys, 0))
	session.State = normalizeState(record)

	return session, true
}

// ParseSessions decodes the persisted sessions payload with migration
// support. An absent or unparseable payload falls back; an explicit empty
// array is honored as the empty state, never overridden by defaults.
func ParseSessions(raw string, fallback []Session) []Session {
	if raw == "" {
		return fallback
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return fallback
	}
	items, ok := decoded.([]any)
	if !ok {
		return fallback
	}
	if len(items) == 0 {
		return []Session{}
	}

	sessions := make([]Session, 0, len(items))
	for _, item := range items {
		if session, ok := MigrateLegacy(item); ok {
			sessions = append(sessions, session)
		}
	}
	if len(sessions) == 0 {
		return fallback
	}

	nextID := 0
	for _, s := range sessions {
		if s.ID > nextID {
			nextID = s.ID
		}
	}
	for i := range sessions {
		if sessions[i].ID == 0 {
			nextID++
			sessions[i].ID = nextID
		}
		sessions[i].Clamp()
	}
	return sessions
}
