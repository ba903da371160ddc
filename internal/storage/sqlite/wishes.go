package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddWish stores a wish with zero votes. Empty text is a silent no-op.
func (s *Store) AddWish(text string) (models.WishItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.WishItem{}, nil
	}

	wish := models.WishItem{
		ID:        newID(),
		Text:      text,
		Votes:     0,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO wishes (id, text, votes, created_at)
		VALUES (?, ?, ?, ?)`,
		wish.ID, wish.Text, wish.Votes, wish.CreatedAt)
	if err != nil {
		return models.WishItem{}, err
	}

	s.notify(storage.TopicWishes)
	return wish, nil
}

// ListWishes returns wishes by votes descending, ties newest first.
func (s *Store) ListWishes() ([]models.WishItem, error) {
	rows, err := s.db.Query(`
		SELECT id, text, votes, created_at FROM wishes
		ORDER BY votes DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wishes []models.WishItem
	for rows.Next() {
		var w models.WishItem
		if err := rows.Scan(&w.ID, &w.Text, &w.Votes, &w.CreatedAt); err != nil {
			return nil, err
		}
		wishes = append(wishes, w)
	}

	return wishes, rows.Err()
}

// UpvoteWish increments votes by exactly one. The increment runs against
// the stored value, never a caller-held copy, so repeated calls from any
// surface each count.
func (s *Store) UpvoteWish(id string) error {
	result, err := s.db.Exec("UPDATE wishes SET votes = votes + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("wish %s: %w", id, storage.ErrNotFound)
	}

	s.notify(storage.TopicWishes)
	return nil
}

// GetWish returns a single wish by id.
func (s *Store) GetWish(id string) (models.WishItem, error) {
	var w models.WishItem
	err := s.db.QueryRow(`
		SELECT id, text, votes, created_at FROM wishes WHERE id = ?`, id).
		Scan(&w.ID, &w.Text, &w.Votes, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WishItem{}, fmt.Errorf("wish %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.WishItem{}, err
	}
	return w, nil
}

// DeleteWish removes a wish. Deleting an absent id is a no-op.
func (s *Store) DeleteWish(id string) error {
	result, err := s.db.Exec("DELETE FROM wishes WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicWishes)
	}
	return nil
}
