package sqlite

import (
	"fmt"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// GetSettings reads the singleton settings rows.
func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "sos_default_minutes":
			if _, err := fmt.Sscanf(value, "%d", &settings.SOSDefaultMinutes); err != nil {
				return models.Settings{}, fmt.Errorf("parsing sos_default_minutes: %w", err)
			}
		case "cooldown_min":
			if _, err := fmt.Sscanf(value, "%d", &settings.CooldownMin); err != nil {
				return models.Settings{}, fmt.Errorf("parsing cooldown_min: %w", err)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

// SaveSettings replaces the singleton wholesale.
func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("sos_default_minutes", fmt.Sprintf("%d", settings.SOSDefaultMinutes)); err != nil {
		return err
	}
	if _, err := stmt.Exec("cooldown_min", fmt.Sprintf("%d", settings.CooldownMin)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.notify(storage.TopicSettings)
	return nil
}
