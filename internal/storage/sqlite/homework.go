package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddHomework creates a homework item whose daily amounts accumulate in
// homework_logs, the same pattern as chant counters.
func (s *Store) AddHomework(title string) (models.Homework, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Homework{}, fmt.Errorf("homework title is required: %w", storage.ErrValidation)
	}

	h := models.Homework{
		ID:        newID(),
		Title:     title,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO homeworks (id, title, created_at)
		VALUES (?, ?, ?)`,
		h.ID, h.Title, h.CreatedAt)
	if err != nil {
		return models.Homework{}, err
	}

	s.notify(storage.TopicHomework)
	return h, nil
}

func (s *Store) ListHomeworks() ([]models.Homework, error) {
	rows, err := s.db.Query(`
		SELECT id, title, created_at FROM homeworks
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var homeworks []models.Homework
	for rows.Next() {
		var h models.Homework
		if err := rows.Scan(&h.ID, &h.Title, &h.CreatedAt); err != nil {
			return nil, err
		}
		homeworks = append(homeworks, h)
	}

	return homeworks, rows.Err()
}

// DeleteHomework removes the homework and its logs in one transaction.
// Repeating the delete is a no-op.
func (s *Store) DeleteHomework(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM homeworks WHERE id = ?", id)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM homework_logs WHERE homework_id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicHomework)
	}
	return nil
}

// LogHomework adds amount to today's row, creating it when the local day
// has no row yet. Progress never goes down.
func (s *Store) LogHomework(homeworkID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("homework amount must be positive: %w", storage.ErrValidation)
	}
	if err := s.requireHomework(homeworkID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO homework_logs (id, homework_id, date, amount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(homework_id, date) DO UPDATE SET
			amount = amount + excluded.amount`,
		newID(), homeworkID, s.todayStr(), amount)
	if err != nil {
		return err
	}

	s.notify(storage.TopicHomework)
	return nil
}

// HomeworkToday returns today's accumulated amount, zero when absent.
func (s *Store) HomeworkToday(homeworkID string) (float64, error) {
	var amount float64
	err := s.db.QueryRow(`
		SELECT amount FROM homework_logs WHERE homework_id = ? AND date = ?`,
		homeworkID, s.todayStr()).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return amount, err
}

// HomeworkTotal sums amounts across all days.
func (s *Store) HomeworkTotal(homeworkID string) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM homework_logs WHERE homework_id = ?", homeworkID).
		Scan(&total)
	return total, err
}

func (s *Store) requireHomework(id string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM homeworks WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("homework %s: %w", id, storage.ErrNotFound)
	}
	return err
}
