package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/urgecare/urgecare/internal/logger"
	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddSupport stores a support-wall item. Interactive adds must carry at
// least one of text, image, or file reference; an all-empty payload fails
// validation.
func (s *Store) AddSupport(text, image, filePath string) (models.SupportItem, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == "" && filePath == "" {
		return models.SupportItem{}, fmt.Errorf("support item needs text or an image: %w", storage.ErrValidation)
	}

	item := models.SupportItem{
		ID:        newID(),
		Text:      text,
		Image:     image,
		FilePath:  filePath,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO supports (id, text, image, file_path, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Text, item.Image, item.FilePath, item.CreatedAt)
	if err != nil {
		return models.SupportItem{}, err
	}

	s.notify(storage.TopicSupports)
	return item, nil
}

// ListSupports returns items newest first. limit <= 0 means no limit.
func (s *Store) ListSupports(limit int) ([]models.SupportItem, error) {
	query := `
		SELECT id, text, image, file_path, created_at FROM supports
		ORDER BY created_at DESC`
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

	var items []models.SupportItem
	for rows.Next() {
		var it models.SupportItem
		if err := rows.Scan(&it.ID, &it.Text, &it.Image, &it.FilePath, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// DeleteSupport removes an item and its backing file when one exists.
// A missing backing file is logged and otherwise ignored; a missing id is a
// no-op.
func (s *Store) DeleteSupport(id string) error {
	var filePath string
	err := s.db.QueryRow("SELECT file_path FROM supports WHERE id = ?", id).Scan(&filePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := s.db.Exec("DELETE FROM supports WHERE id = ?", id); err != nil {
		return err
	}

	if filePath != "" {
		if err := os.Remove(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to remove support photo file", "path", filePath, "error", err)
		}
	}

	s.notify(storage.TopicSupports)
	return nil
}
