package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// ExportAll reads every user-data collection for backup. Reads are plain
// queries; the export is a point-in-time view under the single-writer
// assumption.
func (s *Store) ExportAll() (storage.Snapshot, error) {
	var snap storage.Snapshot
	var err error

	if snap.Journal, err = s.ListDiaryEntries(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("exporting journal: %w", err)
	}
	if snap.Wishes, err = s.ListWishes(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("exporting wishes: %w", err)
	}
	if snap.Supports, err = s.ListSupports(0); err != nil {
		return storage.Snapshot{}, fmt.Errorf("exporting supports: %w", err)
	}
	if snap.Todos, err = s.ListTodos(); err != nil {
		return storage.Snapshot{}, fmt.Errorf("exporting todos: %w", err)
	}
	if snap.Delays, err = s.ListDelaysSince(""); err != nil {
		return storage.Snapshot{}, fmt.Errorf("exporting delays: %w", err)
	}

	return snap, nil
}

// ImportAll restores a snapshot inside one transaction spanning every
// listed collection: a mid-import failure rolls back entirely.
// Overwrite clears then inserts; merge upserts by id and keeps existing
// rows that the snapshot does not mention.
func (s *Store) ImportAll(snap storage.Snapshot, mode storage.ImportMode) error {
	if mode != storage.ImportOverwrite && mode != storage.ImportMerge {
		return fmt.Errorf("unknown import mode %q: %w", mode, storage.ErrValidation)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if mode == storage.ImportOverwrite {
		for _, table := range []string{"journal", "wishes", "supports", "todos", "delays"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
	}

	if err := importJournal(tx, snap.Journal); err != nil {
		return err
	}
	if err := importWishes(tx, snap.Wishes); err != nil {
		return err
	}
	if err := importSupports(tx, snap.Supports); err != nil {
		return err
	}
	if err := importTodos(tx, snap.Todos); err != nil {
		return err
	}
	if err := importDelays(tx, snap.Delays); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notify(storage.TopicJournal)
	s.notify(storage.TopicWishes)
	s.notify(storage.TopicSupports)
	s.notify(storage.TopicTodos)
	s.notify(storage.TopicDelays)
	return nil
}

func importJournal(tx *sql.Tx, entries []models.DiaryEntry) error {
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("journal entry without id: %w", storage.ErrValidation)
		}
		images, err := json.Marshal(e.Images)
		if err != nil {
			return fmt.Errorf("encoding images for entry %s: %w", e.ID, err)
		}
		if e.Images == nil {
			images = []byte("[]")
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO journal (id, text, images, created_at)
			VALUES (?, ?, ?, ?)`,
			e.ID, e.Text, string(images), e.CreatedAt); err != nil {
			return fmt.Errorf("importing journal entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func importWishes(tx *sql.Tx, wishes []models.WishItem) error {
	for _, w := range wishes {
		if w.ID == "" {
			return fmt.Errorf("wish without id: %w", storage.ErrValidation)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO wishes (id, text, votes, created_at)
			VALUES (?, ?, ?, ?)`,
			w.ID, w.Text, w.Votes, w.CreatedAt); err != nil {
			return fmt.Errorf("importing wish %s: %w", w.ID, err)
		}
	}
	return nil
}

func importSupports(tx *sql.Tx, items []models.SupportItem) error {
	for _, it := range items {
		if it.ID == "" {
			return fmt.Errorf("support item without id: %w", storage.ErrValidation)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO supports (id, text, image, file_path, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			it.ID, it.Text, it.Image, it.FilePath, it.CreatedAt); err != nil {
			return fmt.Errorf("importing support %s: %w", it.ID, err)
		}
	}
	return nil
}

func importTodos(tx *sql.Tx, todos []models.Todo) error {
	for _, t := range todos {
		if t.ID == "" {
			return fmt.Errorf("todo without id: %w", storage.ErrValidation)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO todos (id, text, done, created_at)
			VALUES (?, ?, ?, ?)`,
			t.ID, t.Text, t.Done, t.CreatedAt); err != nil {
			return fmt.Errorf("importing todo %s: %w", t.ID, err)
		}
	}
	return nil
}

func importDelays(tx *sql.Tx, records []models.DelayRecord) error {
	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("delay record without id: %w", storage.ErrValidation)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO delays (id, occurred_at, source, minutes, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.OccurredAt, r.Source, r.Minutes, r.Description, r.CreatedAt); err != nil {
			return fmt.Errorf("importing delay %s: %w", r.ID, err)
		}
	}
	return nil
}
