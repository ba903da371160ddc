package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/urgecare/urgecare/internal/logger"
)

const (
	// MaxSnapshots is how many database snapshots to keep
	MaxSnapshots = 14
	// SnapshotDirName is the name of the snapshot directory
	SnapshotDirName = "backups"
	// SnapshotFilePrefix is the prefix for snapshot files
	SnapshotFilePrefix = "urgecare-"
	// SnapshotFileSuffix is the suffix for snapshot files
	SnapshotFileSuffix = ".db"
)

// SnapshotInfo contains information about a snapshot file
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// SnapshotManager handles file-level database snapshots, complementing the
// portable JSON export with byte-exact copies.
type SnapshotManager struct {
	dbPath      string
	snapshotDir string
}

// NewSnapshotManager creates a new snapshot manager
func NewSnapshotManager(dbPath string) *SnapshotManager {
	configDir := filepath.Dir(dbPath)
	return &SnapshotManager{
		dbPath:      dbPath,
		snapshotDir: filepath.Join(configDir, SnapshotDirName),
	}
}

// GetSnapshotDir returns the snapshot directory path
func (m *SnapshotManager) GetSnapshotDir() string {
	return m.snapshotDir
}

func (m *SnapshotManager) ensureSnapshotDir() error {
	return os.MkdirAll(m.snapshotDir, 0700)
}

// CreateSnapshot creates a new snapshot of the database
func (m *SnapshotManager) CreateSnapshot() (string, error) {
	return m.createSnapshot(false)
}

// createSnapshot creates a new snapshot of the database.
// skipRotation prevents recursive snapshot creation during restore.
func (m *SnapshotManager) createSnapshot(skipRotation bool) (string, error) {
	if err := m.ensureSnapshotDir(); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("database does not exist: %s", m.dbPath)
	}

	// Minute-precision name first, then seconds, then a counter
	timestamp := time.Now().Format("20060102-1504")
	name := fmt.Sprintf("%s%s%s", SnapshotFilePrefix, timestamp, SnapshotFileSuffix)
	path := filepath.Join(m.snapshotDir, name)

	if _, err := os.Stat(path); err == nil {
		timestamp = time.Now().Format("20060102-150405")
		name = fmt.Sprintf("%s%s%s", SnapshotFilePrefix, timestamp, SnapshotFileSuffix)
		path = filepath.Join(m.snapshotDir, name)

		counter := 1
		for {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				break
			}
			name = fmt.Sprintf("%s%s-%d%s", SnapshotFilePrefix, timestamp, counter, SnapshotFileSuffix)
			path = filepath.Join(m.snapshotDir, name)
			counter++
			if counter > 100 {
				return "", fmt.Errorf("failed to generate unique snapshot filename")
			}
		}
	}

	if err := m.copyDatabase(path); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}

	if !skipRotation {
		if err := m.rotateSnapshots(); err != nil {
			logger.Warn("failed to rotate old snapshots", "error", err)
		}
	}

	return path, nil
}

// copyDatabase produces a clean copy via VACUUM INTO, falling back to a
// plain file copy when the sqlite build lacks it.
func (m *SnapshotManager) copyDatabase(destPath string) error {
	srcDB, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer srcDB.Close()

	var count int
	if err := srcDB.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := srcDB.Exec("VACUUM INTO ?", destPath); err != nil {
		srcDB.Close()
		return copyFile(m.dbPath, destPath)
	}

	return nil
}

// ListSnapshots returns all available snapshots, newest first.
func (m *SnapshotManager) ListSnapshots() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.snapshotDir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, SnapshotFilePrefix) || !strings.HasSuffix(name, SnapshotFileSuffix) {
			continue
		}

		timestampStr := strings.TrimPrefix(name, SnapshotFilePrefix)
		timestampStr = strings.TrimSuffix(timestampStr, SnapshotFileSuffix)

		// Strip a trailing all-digit counter (YYYYMMDD-HHMM-N forms)
		parts := strings.Split(timestampStr, "-")
		if len(parts) > 2 {
			lastPart := parts[len(parts)-1]
			if len(lastPart) != 4 && len(lastPart) != 6 {
				isCounter := true
				for _, c := range lastPart {
					if c < '0' || c > '9' {
						isCounter = false
						break
					}
				}
				if isCounter {
					timestampStr = strings.Join(parts[:len(parts)-1], "-")
				}
			}
		}

		timestamp, err := time.Parse("20060102-1504", timestampStr)
		if err != nil {
			timestamp, err = time.Parse("20060102-150405", timestampStr)
			if err != nil {
				continue
			}
		}

		path := filepath.Join(m.snapshotDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			Path:      path,
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})

	return snapshots, nil
}

// rotateSnapshots removes old snapshots beyond the retention limit
func (m *SnapshotManager) rotateSnapshots() error {
	snapshots, err := m.ListSnapshots()
	if err != nil {
		return err
	}

	if len(snapshots) <= MaxSnapshots {
		return nil
	}

	for i := MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}

	return nil
}

// RestoreSnapshot restores the database from a snapshot file. The current
// database is snapshotted first, then replaced by atomic rename.
func (m *SnapshotManager) RestoreSnapshot(snapshotPath string) error {
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot file does not exist: %s", snapshotPath)
	}

	if err := m.verifySnapshot(snapshotPath); err != nil {
		return fmt.Errorf("snapshot file is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		current, err := m.createSnapshot(true)
		if err != nil {
			return fmt.Errorf("failed to snapshot current database before restore: %w", err)
		}
		logger.Info("snapshotted current database before restore", "path", filepath.Base(current))
	}

	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(snapshotPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy snapshot file: %w", err)
	}

	if err := os.Rename(tempPath, m.dbPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return fmt.Errorf("failed to restore database: %w", err)
	}

	return nil
}

// verifySnapshot checks that a snapshot file is a valid sqlite database
func (m *SnapshotManager) verifySnapshot(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
