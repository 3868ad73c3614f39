package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"focusflow/internal/modules/progress/domain"

	_ "modernc.org/sqlite"
)

// SQLiteHistoryProjector archives each daily reset into a queryable read
// model. The kv store stays authoritative; this table only accumulates days.
type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (*SQLiteHistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS days (
  date TEXT PRIMARY KEY,
  total_minutes REAL NOT NULL,
  goal_minutes INTEGER NOT NULL,
  goal_met INTEGER NOT NULL,
  streak INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS day_sessions (
  date TEXT NOT NULL,
  session_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  minutes_spent INTEGER NOT NULL,
  goal_minutes INTEGER NOT NULL,
  goal_met INTEGER NOT NULL,
  PRIMARY KEY (date, session_id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create history tables: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Close() error {
	return s.db.Close()
}

// RecordReset upserts the day and replaces its per-session rows. Re-running a
// reset for the same date overwrites rather than duplicates.
func (s *SQLiteHistoryProjector) RecordReset(ctx context.Context, day domain.HistoryDay, entries []domain.HistoryEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	const dayStmt = `
INSERT INTO days (date, total_minutes, goal_minutes, goal_met, streak)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  total_minutes=excluded.total_minutes,
  goal_minutes=excluded.goal_minutes,
  goal_met=excluded.goal_met,
  streak=excluded.streak;
`
	if _, err := tx.ExecContext(ctx, dayStmt, day.Date, day.TotalMinutes, day.GoalMinutes, day.GoalMet, day.Streak); err != nil {
		return fmt.Errorf("upsert day: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM day_sessions WHERE date = ?`, day.Date); err != nil {
		return fmt.Errorf("clear day sessions: %w", err)
	}
	const entryStmt = `
INSERT INTO day_sessions (date, session_id, title, minutes_spent, goal_minutes, goal_met)
VALUES (?, ?, ?, ?, ?, ?);
`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, entryStmt, day.Date, e.SessionID, e.Title, e.MinutesSpent, e.GoalMinutes, e.GoalMet); err != nil {
			return fmt.Errorf("insert day session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history tx: %w", err)
	}
	return nil
}

// ListDays returns archived days, most recent first. DD/MM/YY does not sort
// chronologically as text, so the ordering splits it into year, month, day.
func (s *SQLiteHistoryProjector) ListDays(ctx context.Context, limit int) ([]domain.HistoryDay, error) {
	if limit <= 0 {
		limit = 30
	}
	const query = `
SELECT date, total_minutes, goal_minutes, goal_met, streak
FROM days
ORDER BY substr(date, 7, 2) DESC, substr(date, 4, 2) DESC, substr(date, 1, 2) DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	var days []domain.HistoryDay
	for rows.Next() {
		var d domain.HistoryDay
		if err := rows.Scan(&d.Date, &d.TotalMinutes, &d.GoalMinutes, &d.GoalMet, &d.Streak); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate days: %w", err)
	}
	return days, nil
}
