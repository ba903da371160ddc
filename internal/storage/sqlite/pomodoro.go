package sqlite

import (
	"fmt"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddPomodoroSession appends a completed session. The log is append-only;
// callers record a session only when a timer reaches zero naturally, never
// on pause or reset.
func (s *Store) AddPomodoroSession(startedAt, endedAt string, minutes int, label string) (models.PomodoroSession, error) {
	if startedAt == "" || endedAt == "" {
		return models.PomodoroSession{}, fmt.Errorf("session needs start and end times: %w", storage.ErrValidation)
	}

	session := models.PomodoroSession{
		ID:        newID(),
		Label:     label,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Minutes:   minutes,
	}
	_, err := s.db.Exec(`
		INSERT INTO pomodoro_sessions (id, label, started_at, ended_at, minutes)
		VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Label, session.StartedAt, session.EndedAt, session.Minutes)
	if err != nil {
		return models.PomodoroSession{}, err
	}

	s.notify(storage.TopicPomodoro)
	return session, nil
}

// ListRecentPomodoroSessions returns the most recent sessions by start
// time. limit <= 0 means all.
func (s *Store) ListRecentPomodoroSessions(limit int) ([]models.PomodoroSession, error) {
	query := `
		SELECT id, label, started_at, ended_at, minutes FROM pomodoro_sessions
		ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PomodoroSession
	for rows.Next() {
		var p models.PomodoroSession
		if err := rows.Scan(&p.ID, &p.Label, &p.StartedAt, &p.EndedAt, &p.Minutes); err != nil {
			return nil, err
		}
		sessions = append(sessions, p)
	}

	return sessions, rows.Err()
}
