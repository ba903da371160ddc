package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddMantra creates a named mantra. Names are unique after trimming; a
// collision fails with ErrDuplicate rather than silently reusing the row.
func (s *Store) AddMantra(name string) (models.ChantMantra, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ChantMantra{}, fmt.Errorf("mantra name is required: %w", storage.ErrValidation)
	}

	m := models.ChantMantra{
		ID:        newID(),
		Name:      name,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO mantras (id, name, created_at)
		VALUES (?, ?, ?)`,
		m.ID, m.Name, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ChantMantra{}, fmt.Errorf("mantra %q: %w", name, storage.ErrDuplicate)
		}
		return models.ChantMantra{}, err
	}

	s.notify(storage.TopicChants)
	return m, nil
}

func (s *Store) ListMantras() ([]models.ChantMantra, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at FROM mantras
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mantras []models.ChantMantra
	for rows.Next() {
		var m models.ChantMantra
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		mantras = append(mantras, m)
	}

	return mantras, rows.Err()
}

// DeleteMantra removes a mantra and all of its daily logs in one
// transaction, so a failure cannot leave orphaned logs. Repeating the
// delete is a no-op.
func (s *Store) DeleteMantra(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("DELETE FROM mantras WHERE id = ?", id)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM chant_logs WHERE mantra_id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicChants)
	}
	return nil
}

// IncrementChant adds delta to today's count for a mantra, creating the
// daily row if the local calendar day has no row yet. Counts never go
// down; resets go through ClearChantToday.
func (s *Store) IncrementChant(mantraID string, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("chant increment must be positive: %w", storage.ErrValidation)
	}
	if err := s.requireMantra(mantraID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO chant_logs (id, mantra_id, date, count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(mantra_id, date) DO UPDATE SET
			count = count + excluded.count`,
		newID(), mantraID, s.todayStr(), delta)
	if err != nil {
		return err
	}

	s.notify(storage.TopicChants)
	return nil
}

// ChantToday returns today's count, zero when no row exists yet.
func (s *Store) ChantToday(mantraID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT count FROM chant_logs WHERE mantra_id = ? AND date = ?`,
		mantraID, s.todayStr()).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return count, err
}

// ChantTotal sums the counts across all days.
func (s *Store) ChantTotal(mantraID string) (int, error) {
	var total int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(count), 0) FROM chant_logs WHERE mantra_id = ?", mantraID).
		Scan(&total)
	return total, err
}

// ClearChantToday zeroes today's row without deleting it, keeping the
// day's presence in history.
func (s *Store) ClearChantToday(mantraID string) error {
	if _, err := s.db.Exec(`
		UPDATE chant_logs SET count = 0 WHERE mantra_id = ? AND date = ?`,
		mantraID, s.todayStr()); err != nil {
		return err
	}
	s.notify(storage.TopicChants)
	return nil
}

// ClearChantTotal deletes every log row for the mantra. Irreversible; the
// CLI confirms before calling.
func (s *Store) ClearChantTotal(mantraID string) error {
	if _, err := s.db.Exec("DELETE FROM chant_logs WHERE mantra_id = ?", mantraID); err != nil {
		return err
	}
	s.notify(storage.TopicChants)
	return nil
}

func (s *Store) requireMantra(id string) error {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM mantras WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("mantra %s: %w", id, storage.ErrNotFound)
	}
	return err
}

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. The modernc driver surfaces these as plain errors, so the check
// is on the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
