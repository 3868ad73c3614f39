package domain

import "time"

type TimerState int

const (
	StatePaused TimerState = iota
	StateRunning
)

func (s TimerState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "paused"
}

const (
	DefaultTitle            = "New Session"
	DefaultDurationSeconds  = 30 * 60
	DefaultDailyGoalMinutes = 30
)

// Session is one focus task definition plus its live countdown state. The
// json tags are the persisted wire schema and must not change; legacy shapes
// are mapped onto it by MigrateLegacy.
type Session struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	SessionDuration  int        `json:"sessionDuration"`
	TimeLeft         int        `json:"timeLeft"`
	IsCompleted      bool       `json:"isCompleted"`
	DailyGoalMinutes int        `json:"dailyGoalMinutes"`
	FocusSeconds     int        `json:"focusSeconds"`
	TargetTimeMs     int64      `json:"targetTimeMs,omitempty"`
	State            TimerState `json:"state"`
}

// NewSession fills the default template around whatever the caller set.
func NewSession(id int, title string, durationSeconds, dailyGoalMinutes int) Session {
	if title == "" {
		title = DefaultTitle
	}
	if durationSeconds < 1 {
		durationSeconds = DefaultDurationSeconds
	}
	if dailyGoalMinutes < 0 {
		dailyGoalMinutes = DefaultDailyGoalMinutes
	}
	return Session{
		ID:               id,
		Title:            title,
		SessionDuration:  durationSeconds,
		TimeLeft:         durationSeconds,
		DailyGoalMinutes: dailyGoalMinutes,
	}
}

// DefaultSessions is the first-run seed set.
func DefaultSessions() []Session {
	return []Session{
		{ID: 1, Title: "Deep Work", SessionDuration: 25 * 60, TimeLeft: 25 * 60, DailyGoalMinutes: 90},
		{ID: 2, Title: "Reading", SessionDuration: 45 * 60, TimeLeft: 45 * 60, DailyGoalMinutes: 60},
		{ID: 3, Title: "Emails", SessionDuration: 15 * 60, TimeLeft: 15 * 60, DailyGoalMinutes: 30},
	}
}

// NextID returns max(existing ids, 0) + 1.
func NextID(sessions []Session) int {
	max := 0
	for _, s := range sessions {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// Start arms the countdown against an absolute wall-clock deadline so a
// stalled tick source cannot desynchronize remaining time from real time.
func (s *Session) Start(now time.Time) {
	s.State = StateRunning
	s.TargetTimeMs = now.UnixMilli() + int64(s.TimeLeft)*1000
}

func (s *Session) Pause() {
	s.State = StatePaused
	s.TargetTimeMs = 0
}

func (s *Session) Reset() {
	s.TimeLeft = s.SessionDuration
	s.IsCompleted = false
	s.State = StatePaused
	s.TargetTimeMs = 0
}

// Retarget recomputes the deadline from "now + timeLeft". Called when a
// running session's parameters are edited mid-countdown.
func (s *Session) Retarget(now time.Time) {
	s.TargetTimeMs = now.UnixMilli() + int64(s.TimeLeft)*1000
}

// Tick advances the countdown to now. The returned delta is the real elapsed
// seconds since the previous tick; it collapses to zero when the clock moved
// backward. Completed reports whether the countdown reached zero.
func (s *Session) Tick(now time.Time) (delta int, completed bool) {
	if s.TargetTimeMs == 0 {
		// Nominally running without a deadline: leave state untouched.
		return 0, false
	}
	remainingMs := s.TargetTimeMs - now.UnixMilli()
	secondsLeft := 0
	if remainingMs > 0 {
		secondsLeft = int((remainingMs + 999) / 1000)
	}
	delta = s.TimeLeft - secondsLeft
	if delta < 0 {
		delta = 0
	}
	s.FocusSeconds += delta
	if secondsLeft <= 0 {
		s.TimeLeft = 0
		s.IsCompleted = true
		s.State = StatePaused
		s.TargetTimeMs = 0
		return delta, true
	}
	s.TimeLeft = secondsLeft
	return delta, false
}

// Patch is a partial update; nil fields are left as they are.
type Patch struct {
	Title            *string
	SessionDuration  *int
	TimeLeft         *int
	DailyGoalMinutes *int
}

// Apply merges the patch, clears the completion flag and re-clamps. Editing a
// session always gives it a fresh shot at its countdown.
func (s *Session) Apply(p Patch) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.SessionDuration != nil {
		s.SessionDuration = *p.SessionDuration
	}
	if p.TimeLeft != nil {
		s.TimeLeft = *p.TimeLeft
	}
	if p.DailyGoalMinutes != nil {
		s.DailyGoalMinutes = *p.DailyGoalMinutes
	}
	s.IsCompleted = false
	s.Clamp()
}

// Clamp restores the session invariants after untrusted input: duration >= 1,
// goal >= 0, 0 <= timeLeft <= duration, and timeLeft == 0 implies completed.
func (s *Session) Clamp() {
	if s.SessionDuration < 1 {
		s.SessionDuration = 1
	}
	if s.DailyGoalMinutes < 0 {
		s.DailyGoalMinutes = 0
	}
	if s.FocusSeconds < 0 {
		s.FocusSeconds = 0
	}
	if s.TimeLeft < 0 {
		s.TimeLeft = 0
	}
	if s.TimeLeft > s.SessionDuration {
		s.TimeLeft = s.SessionDuration
	}
	if s.TimeLeft == 0 {
		s.IsCompleted = true
		if s.State == StateRunning {
			s.State = StatePaused
			s.TargetTimeMs = 0
		}
	}
}

// GoalCappedFocusSeconds is this session's contribution to the aggregate
// daily progress: excess focus time never over-credits the goal.
func (s Session) GoalCappedFocusSeconds() int {
	limit := s.DailyGoalMinutes * 60
	if s.FocusSeconds > limit {
		return limit
	}
	return s.FocusSeconds
}
