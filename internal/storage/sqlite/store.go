package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/urgecare/urgecare/internal/constants"
	"github.com/urgecare/urgecare/internal/migration"
	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
	"github.com/urgecare/urgecare/migrations"
)

// Store is the sqlite-backed document store. One instance owns the database
// file; all mutation goes through its methods so invariants and change
// notifications stay consistent.
type Store struct {
	path     string
	db       *sql.DB
	notifier storage.Notifier
	now      func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// SetNotifier attaches the change bus. Mutations publish their collection
// topic after a successful commit; a nil notifier disables publishing.
func (s *Store) SetNotifier(n storage.Notifier) {
	s.notifier = n
}

// SetClock overrides the time source. Tests use this to cross calendar-day
// boundaries and cooldown windows deterministically.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on first run
	if _, err := s.GetSettings(); err != nil {
		defaults := models.Settings{
			SOSDefaultMinutes: constants.DefaultSOSMinutes,
			CooldownMin:       constants.DefaultCooldownMin,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'urgecare init' first")
	}

	db, err := openDB(s.path)
	if err != nil {
		return err
	}
	s.db = db

	subFS, err := migrationFS()
	if err != nil {
		return err
	}
	return migration.NewRunner(s.db, subFS).ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// DB exposes the underlying connection for diagnostics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// MigrationFS returns the embedded migration set.
func (s *Store) MigrationFS() (fs.FS, error) {
	return migrationFS()
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Writers from another instance get a grace window instead of an
	// immediate SQLITE_BUSY.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	return db, nil
}

func migrationFS() (fs.FS, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return subFS, nil
}

func (s *Store) runMigrations() error {
	subFS, err := migrationFS()
	if err != nil {
		return err
	}
	_, err = migration.NewRunner(s.db, subFS).Apply(nil)
	return err
}

// notify publishes a collection topic. Called only after a successful write.
func (s *Store) notify(topic string) {
	if s.notifier != nil {
		s.notifier.Publish(topic)
	}
}

func (s *Store) nowISO() string {
	return s.now().UTC().Format(time.RFC3339)
}

// todayStr is the local calendar day, so daily counters reset at local
// midnight rather than UTC midnight.
func (s *Store) todayStr() string {
	return s.now().Format(constants.DateFormat)
}

func newID() string {
	return uuid.NewString()
}
