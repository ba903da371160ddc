package sqlite

import (
	"strings"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddExperience stores an experience-wall reflection. Empty text is a
// silent no-op.
func (s *Store) AddExperience(text string) (models.Experience, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Experience{}, nil
	}

	exp := models.Experience{
		ID:        newID(),
		Text:      text,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO experiences (id, text, created_at)
		VALUES (?, ?, ?)`,
		exp.ID, exp.Text, exp.CreatedAt)
	if err != nil {
		return models.Experience{}, err
	}

	s.notify(storage.TopicExperiences)
	return exp, nil
}

// ListExperiences returns reflections newest first.
func (s *Store) ListExperiences() ([]models.Experience, error) {
	rows, err := s.db.Query(`
		SELECT id, text, created_at FROM experiences
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Experience
	for rows.Next() {
		var e models.Experience
		if err := rows.Scan(&e.ID, &e.Text, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}

	return items, rows.Err()
}

// DeleteExperience removes a reflection. Deleting an absent id is a no-op.
func (s *Store) DeleteExperience(id string) error {
	result, err := s.db.Exec("DELETE FROM experiences WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicExperiences)
	}
	return nil
}
