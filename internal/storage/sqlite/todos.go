package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// AddTodo stores a todo. Empty text after trimming is a silent no-op.
func (s *Store) AddTodo(text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, nil
	}

	todo := models.Todo{
		ID:        newID(),
		Text:      text,
		Done:      false,
		CreatedAt: s.nowISO(),
	}
	_, err := s.db.Exec(`
		INSERT INTO todos (id, text, done, created_at)
		VALUES (?, ?, ?, ?)`,
		todo.ID, todo.Text, todo.Done, todo.CreatedAt)
	if err != nil {
		return models.Todo{}, err
	}

	s.notify(storage.TopicTodos)
	return todo, nil
}

// AddTodoSmart suppresses a duplicate of the same text created within the
// cooldown window.
func (s *Store) AddTodoSmart(text string, cooldownMin int) (models.Todo, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, false, nil
	}

	cutoff := s.now().Add(-time.Duration(cooldownMin) * time.Minute).UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return models.Todo{}, false, err
	}
	defer tx.Rollback()

	var existing models.Todo
	err = tx.QueryRow(`
		SELECT id, text, done, created_at FROM todos
		WHERE text = ? AND created_at >= ?
		ORDER BY created_at DESC LIMIT 1`,
		text, cutoff).Scan(&existing.ID, &existing.Text, &existing.Done, &existing.CreatedAt)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Todo{}, false, err
	}

	todo := models.Todo{
		ID:        newID(),
		Text:      text,
		Done:      false,
		CreatedAt: s.nowISO(),
	}
	if _, err := tx.Exec(`
		INSERT INTO todos (id, text, done, created_at)
		VALUES (?, ?, ?, ?)`,
		todo.ID, todo.Text, todo.Done, todo.CreatedAt); err != nil {
		return models.Todo{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return models.Todo{}, false, err
	}

	s.notify(storage.TopicTodos)
	return todo, false, nil
}

// ListTodos returns todos newest first, the display convention.
func (s *Store) ListTodos() ([]models.Todo, error) {
	rows, err := s.db.Query(`
		SELECT id, text, done, created_at FROM todos
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Done, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// ToggleTodo flips done, reading the persisted value inside the transaction
// so a toggle never works from a stale snapshot.
func (s *Store) ToggleTodo(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var done bool
	err = tx.QueryRow("SELECT done FROM todos WHERE id = ?", id).Scan(&done)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("UPDATE todos SET done = ? WHERE id = ?", !done, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.notify(storage.TopicTodos)
	return nil
}

// DeleteTodo removes a todo. Deleting an absent id is a no-op.
func (s *Store) DeleteTodo(id string) error {
	result, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows, err := result.RowsAffected(); err == nil && rows > 0 {
		s.notify(storage.TopicTodos)
	}
	return nil
}

// ClearTodos removes every todo.
func (s *Store) ClearTodos() error {
	if _, err := s.db.Exec("DELETE FROM todos"); err != nil {
		return err
	}
	s.notify(storage.TopicTodos)
	return nil
}
