package dto

type AddInput struct {
	Title            string
	DurationSeconds  int
	DailyGoalMinutes int
}

type UpdateInput struct {
	ID               int
	Title            *string
	DurationSeconds  *int
	TimeLeft         *int
	DailyGoalMinutes *int
}

type SessionOutput struct {
	ID               int
	Title            string
	SessionDuration  int
	TimeLeft         int
	IsCompleted      bool
	DailyGoalMinutes int
	FocusSeconds     int
	State            string
	Active           bool
}
