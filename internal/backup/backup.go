// Package backup provides whole-database JSON export/import, single
// collection CSV rendering, and file-level snapshots of the sqlite
// database.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urgecare/urgecare/internal/storage"
)

// PayloadVersion is the backup document format version.
const PayloadVersion = "2.0.0"

// Payload is the portable backup document. Tables holds every user-data
// collection; settings and counters travel in the database snapshot path
// instead.
type Payload struct {
	Version    string           `json:"version"`
	ExportedAt string           `json:"exportedAt"`
	Tables     storage.Snapshot `json:"tables"`
}

// Service performs export/import against a store.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// SetClock overrides the time source for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ExportJSON serializes every user-data collection into one portable
// document.
func (s *Service) ExportJSON() ([]byte, error) {
	snap, err := s.store.ExportAll()
	if err != nil {
		return nil, err
	}

	payload := Payload{
		Version:    PayloadVersion,
		ExportedAt: s.now().UTC().Format(time.RFC3339),
		Tables:     snap,
	}
	return json.MarshalIndent(payload, "", "  ")
}

// ImportJSON restores a backup document. Overwrite replaces the listed
// collections wholesale; merge upserts by id. Either way the restore is
// atomic: a failure leaves the database unchanged.
func (s *Service) ImportJSON(data []byte, mode storage.ImportMode) error {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("invalid backup document: %w", err)
	}
	if payload.Version == "" {
		return fmt.Errorf("backup document missing version: %w", storage.ErrValidation)
	}

	if err := s.store.ImportAll(payload.Tables, mode); err != nil {
		return fmt.Errorf("import failed, no changes made: %w", err)
	}
	return nil
}
