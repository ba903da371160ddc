package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/migration"
	"github.com/urgecare/urgecare/internal/storage/sqlite"
)

var listProcessesFunc = ps.Processes

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Settings readable
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (database not reachable)\n")
	}

	// Check 5: Counter integrity
	if dbReachable {
		if err := checkCounterIntegrity(ctx); err != nil {
			fmt.Printf("❌ Counter integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Counter integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Counter integrity: SKIPPED (database not reachable)\n")
	}

	// Check 6: Snapshots present (warning only)
	if err := checkSnapshotsPresent(ctx); err != nil {
		fmt.Printf("⚠ Snapshots present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Snapshots present: OK\n")
	}

	// Check 7: Other running instances (warning only)
	if err := checkOtherInstances(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	// Check 8: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if store, ok := ctx.Store.(*sqlite.Store); ok {
		db := store.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaRunner(ctx *cli.Context) (*migration.Runner, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil
	}
	db := store.DB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	migrationFS, err := store.MigrationFS()
	if err != nil {
		return nil, err
	}
	return migration.NewRunner(db, migrationFS), nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if runner == nil || err != nil {
		return err
	}

	current, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := schemaRunner(ctx)
	if runner == nil || err != nil {
		return err
	}

	current, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.SOSDefaultMinutes <= 0 {
		return fmt.Errorf("sos default minutes must be positive, got %d", settings.SOSDefaultMinutes)
	}
	if settings.CooldownMin < 0 {
		return fmt.Errorf("cooldown minutes must not be negative, got %d", settings.CooldownMin)
	}
	return nil
}

func checkCounterIntegrity(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := store.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Orphaned daily counts reference a deleted parent
	var orphaned int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM chant_logs cl
		LEFT JOIN mantras m ON cl.mantra_id = m.id
		WHERE m.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned chant logs: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d chant logs referencing non-existent mantras", orphaned)
	}

	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM homework_logs hl
		LEFT JOIN homeworks h ON hl.homework_id = h.id
		WHERE h.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned homework logs: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d homework logs referencing non-existent homeworks", orphaned)
	}

	var invalid int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM chant_logs
		WHERE date NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check chant log dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d chant logs with invalid date format", invalid)
	}

	return nil
}

func checkSnapshotsPresent(ctx *cli.Context) error {
	mgr := backup.NewSnapshotManager(ctx.Store.GetConfigPath())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshots found - consider creating one with 'urgecare backup snapshot'")
	}
	return nil
}

// checkOtherInstances looks for another running urgecare process. The
// database tolerates concurrent readers, but two writers race each other's
// change notifications.
func checkOtherInstances() error {
	procs, err := listProcessesFunc()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	binary := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == binary {
			return fmt.Errorf("another %s process is running (pid %d)", binary, p.Pid())
		}
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
