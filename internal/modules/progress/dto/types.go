package dto

type OverviewOutput struct {
	TotalFocusSeconds     int
	TotalDailyGoalMinutes int
	Streak                int
	YesterdayMinutes      float64
	LastResetDate         string
	ResetTime             string
}

type ResetOutput struct {
	Date             string
	YesterdayMinutes float64
	GoalMet          bool
	Streak           int
}

type HistoryDayOutput struct {
	Date         string
	TotalMinutes float64
	GoalMinutes  int
	GoalMet      bool
	Streak       int
}
