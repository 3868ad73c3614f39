package domain

import "time"

const (
	// Wire formats for the persisted aggregate state.
	DateLayout      = "02/01/06" // DD/MM/YY, day granularity, local calendar
	TimeOfDayLayout = "15:04"    // HH:MM, 24h

	DefaultResetTime = "00:00"
)

// DailyState is the process-wide aggregate: streak, yesterday's total and the
// reset bookkeeping. It persists indefinitely across restarts.
type DailyState struct {
	Streak           int
	YesterdayMinutes float64
	LastResetDate    string // empty until the first reset ever fires
	ResetTime        string
}

func DefaultDailyState() DailyState {
	return DailyState{ResetTime: DefaultResetTime}
}

// SessionFocus is the slice of a timer session that goal accounting needs.
type SessionFocus struct {
	ID               int
	Title            string
	FocusSeconds     int
	DailyGoalMinutes int
}

// TotalGoalMinutes is the combined daily goal, recomputed rather than stored.
func TotalGoalMinutes(entries []SessionFocus) int {
	total := 0
	for _, e := range entries {
		total += e.DailyGoalMinutes
	}
	return total
}

func cappedFocusSeconds(e SessionFocus) int {
	limit := e.DailyGoalMinutes * 60
	if e.FocusSeconds > limit {
		return limit
	}
	return e.FocusSeconds
}

// TotalFocusSeconds sums per-session contributions, each capped at its own
// goal: over-focusing on one session cannot credit another's goal. The sum
// itself is not capped.
func TotalFocusSeconds(entries []SessionFocus) int {
	total := 0
	for _, e := range entries {
		total += cappedFocusSeconds(e)
	}
	return total
}

// RolloverResult reports what a daily reset archived.
type RolloverResult struct {
	YesterdaySeconds int // uncapped, true total time spent
	GoalSeconds      int // capped, what counted toward goals
	GoalMet          bool
}

// Rollover archives today's totals as yesterday, advances the reset date and
// continues or breaks the streak. The streak compares the capped total
// against the combined goal, so a day of misdirected focus does not count.
// With no goals configured the condition is vacuously true and the streak
// keeps incrementing.
func Rollover(state DailyState, entries []SessionFocus, today string) (DailyState, RolloverResult) {
	result := RolloverResult{}
	for _, e := range entries {
		result.YesterdaySeconds += e.FocusSeconds
		result.GoalSeconds += cappedFocusSeconds(e)
	}
	result.GoalMet = float64(result.GoalSeconds)/60 >= float64(TotalGoalMinutes(entries))

	state.YesterdayMinutes = float64(result.YesterdaySeconds) / 60
	state.LastResetDate = today
	if result.GoalMet {
		state.Streak++
	} else {
		state.Streak = 0
	}
	return state, result
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTimeOfDay(t time.Time) string {
	return t.Format(TimeOfDayLayout)
}

// ValidTimeOfDay reports whether s is a canonical zero-padded HH:MM 24-hour
// string. ShouldReset compares these lexicographically, so unpadded variants
// like "7:00" (which time.Parse tolerates) must be rejected, not normalized.
func ValidTimeOfDay(s string) bool {
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return false
	}
	return t.Format(TimeOfDayLayout) == s
}

// DateAfter reports whether day a falls strictly after day b. Dates are
// parsed, not compared as strings, so month and year rollovers order
// correctly. An empty or malformed b counts as the distant past.
func DateAfter(a, b string) bool {
	dayA, err := time.Parse(DateLayout, a)
	if err != nil {
		return false
	}
	dayB, err := time.Parse(DateLayout, b)
	if err != nil {
		return true
	}
	return dayA.After(dayB)
}

// ShouldReset is the auto-reset trigger condition. Because LastResetDate
// advances to today the moment a reset fires, the condition cannot re-fire
// until a new calendar day begins, no matter how often it is polled.
func ShouldReset(state DailyState, now time.Time) bool {
	if state.ResetTime == "" {
		return false
	}
	// HH:MM is fixed width, so the lexicographic compare is a time compare.
	if FormatTimeOfDay(now) < state.ResetTime {
		return false
	}
	return DateAfter(FormatDate(now), state.LastResetDate)
}

// HistoryEntry is one session's line in the daily history read model.
type HistoryEntry struct {
	SessionID    int
	Title        string
	MinutesSpent int
	GoalMinutes  int
	GoalMet      bool
}

// HistoryDay is one archived day.
type HistoryDay struct {
	Date         string
	TotalMinutes float64
	GoalMinutes  int
	GoalMet      bool
	Streak       int
}
