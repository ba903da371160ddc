package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddDiaryEntry stores a journal entry. Empty input (no text after trimming
// and no images) is a silent no-op, matching the forgiving UI behavior.
func (s *Store) AddDiaryEntry(text string, images []string) (models.DiaryEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(images) == 0 {
		return models.DiaryEntry{}, nil
	}

	entry := models.DiaryEntry{
		ID:        newID(),
		Text:      text,
		Images:    images,
		CreatedAt: s.nowISO(),
	}

	imagesJSON, err := json.Marshal(entry.Images)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("failed to marshal images: %w", err)
	}
	if entry.Images == nil {
		imagesJSON = []byte("[]")
	}

	_, err = s.db.Exec(`
		INSERT INTO journal (id, text, images, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Text, string(imagesJSON), entry.CreatedAt)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	s.notify(storage.TopicJournal)
	return entry, nil
}

// AddDiaryEntrySmart inserts unless an entry with the same text exists
// inside the cooldown window. The lookup and insert share one transaction
// so a racing writer cannot slip a duplicate in between.
func (s *Store) AddDiaryEntrySmart(text string, images []string, cooldownMin int) (models.DiaryEntry, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(images) == 0 {
		return models.DiaryEntry{}, false, nil
	}

	cutoff := s.now().Add(-time.Duration(cooldownMin) * time.Minute).UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return models.DiaryEntry{}, false, err
	}
	defer tx.Rollback()

	var existing models.DiaryEntry
	var imagesJSON string
	err = tx.QueryRow(`
		SELECT id, text, images, created_at FROM journal
		WHERE text = ? AND created_at >= ?
		ORDER BY created_at DESC LIMIT 1`,
		text, cutoff).Scan(&existing.ID, &existing.Text, &imagesJSON, &existing.CreatedAt)
	if err == nil {
		if err := json.Unmarshal([]byte(imagesJSON), &existing.Images); err != nil {
			return models.DiaryEntry{}, false, fmt.Errorf("failed to decode images for entry %s: %w", existing.ID, err)
		}
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.DiaryEntry{}, false, err
	}

	entry := models.DiaryEntry{
		ID:        newID(),
		Text:      text,
		Images:    images,
		CreatedAt: s.nowISO(),
	}
	encoded, err := json.Marshal(entry.Images)
	if err != nil {
		return models.DiaryEntry{}, false, fmt.Errorf("failed to marshal images: %w", err)
	}
	if entry.Images == nil {
		encoded = []byte("[]")
	}

	if _, err := tx.Exec(`
		INSERT INTO journal (id, text, images, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Text, string(encoded), entry.CreatedAt); err != nil {
		return models.DiaryEntry{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return models.DiaryEntry{}, false, err
	}

	s.notify(storage.TopicJournal)
	return entry, false, nil
}

// ListDiaryEntries returns all entries newest first.
func (s *Store) ListDiaryEntries() ([]models.DiaryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, text, images, created_at FROM journal
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DiaryEntry
	for rows.Next() {
		var e models.DiaryEntry
		var imagesJSON string
		if err := rows.Scan(&e.ID, &e.Text, &imagesJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(imagesJSON), &e.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images for entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateDiaryEntry replaces the text only; images and createdAt are
// immutable after creation.
func (s *Store) UpdateDiaryEntry(id, text string) error {
	result, err := s.db.Exec("UPDATE journal SET text = ? WHERE id = ?", strings.TrimSpace(text), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("diary entry %s: %w", id, storage.ErrNotFound)
	}

	s.notify(storage.TopicJournal)
	return nil
}

// DeleteDiaryEntry removes an entry. Deleting an absent id is a no-op.
func (s *Store) DeleteDiaryEntry(id string) error {
	result, err := s.db.Exec("DELETE FROM journal WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicJournal)
	}
	return nil
}
