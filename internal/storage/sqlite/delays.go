package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddDelay appends one event-log row. The log is append-only: rows are
// never updated, and occurredAt may predate createdAt when the caller logs
// an event after the fact.
func (s *Store) AddDelay(source models.DelaySource, minutes float64, occurredAt, description string) (models.DelayRecord, error) {
	if occurredAt == "" {
		occurredAt = s.nowISO()
	}
	if minutes < 0 {
		minutes = 0
	}

	rec := models.DelayRecord{
		ID:          newID(),
		OccurredAt:  occurredAt,
		Source:      source,
		Minutes:     minutes,
		Description: description,
		CreatedAt:   s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO delays (id, occurred_at, source, minutes, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OccurredAt, rec.Source, rec.Minutes, rec.Description, rec.CreatedAt)
	if err != nil {
		return models.DelayRecord{}, err
	}

	s.notify(storage.TopicDelays)
	return rec, nil
}

// AddDelaySmart guards against a timer completion firing twice: a record
// with the same source and description inside the cooldown window is
// returned instead of inserting a duplicate.
func (s *Store) AddDelaySmart(source models.DelaySource, minutes float64, description string, cooldownMin int) (models.DelayRecord, bool, error) {
	cutoff := s.now().Add(-time.Duration(cooldownMin) * time.Minute).UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return models.DelayRecord{}, false, err
	}
	defer tx.Rollback()

	var existing models.DelayRecord
	err = tx.QueryRow(`
		SELECT id, occurred_at, source, minutes, description, created_at FROM delays
		WHERE source = ? AND description = ? AND created_at >= ?
		ORDER BY created_at DESC LIMIT 1`,
		source, description, cutoff).
		Scan(&existing.ID, &existing.OccurredAt, &existing.Source, &existing.Minutes, &existing.Description, &existing.CreatedAt)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.DelayRecord{}, false, err
	}

	rec := models.DelayRecord{
		ID:          newID(),
		OccurredAt:  s.nowISO(),
		Source:      source,
		Minutes:     minutes,
		Description: description,
		CreatedAt:   s.nowISO(),
	}
	if _, err := tx.Exec(`
		INSERT INTO delays (id, occurred_at, source, minutes, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OccurredAt, rec.Source, rec.Minutes, rec.Description, rec.CreatedAt); err != nil {
		return models.DelayRecord{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return models.DelayRecord{}, false, err
	}

	s.notify(storage.TopicDelays)
	return rec, false, nil
}

// ListDelaysSince returns records with occurredAt >= sinceISO, ascending.
func (s *Store) ListDelaysSince(sinceISO string) ([]models.DelayRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, occurred_at, source, minutes, description, created_at FROM delays
		WHERE occurred_at >= ?
		ORDER BY occurred_at`, sinceISO)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.DelayRecord
	for rows.Next() {
		var r models.DelayRecord
		if err := rows.Scan(&r.ID, &r.OccurredAt, &r.Source, &r.Minutes, &r.Description, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// TotalMinutesBySource sums minutes across all records of one source.
func (s *Store) TotalMinutesBySource(source models.DelaySource) (float64, error) {
	var total float64
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(minutes), 0) FROM delays WHERE source = ?", source).
		Scan(&total)
	return total, err
}

// CountBySource counts records of one source.
func (s *Store) CountBySource(source models.DelaySource) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM delays WHERE source = ?", source).
		Scan(&count)
	return count, err
}
