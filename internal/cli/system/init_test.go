package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/bus"
	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	changeBus := bus.New()
	t.Cleanup(func() {
		store.Close()
		changeBus.Close()
	})

	return &cli.Context{
		Store:  store,
		Bus:    changeBus,
		Backup: backup.NewService(store),
	}, dbPath
}

func TestInitCmd(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() after init error: %v", err)
	}
	if settings.SOSDefaultMinutes == 0 {
		t.Error("defaults not seeded")
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := ctx.Store.AddTodo("wiped by force"); err != nil {
		t.Fatalf("AddTodo() error: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}

	todos, err := ctx.Store.ListTodos()
	if err != nil {
		t.Fatalf("ListTodos() error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("forced init kept %d todos, want 0", len(todos))
	}
}

func TestDoctorCmd_HealthyDatabase(t *testing.T) {
	ctx, dbPath := setupTestContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// A snapshot satisfies the snapshots-present check
	if _, err := backup.NewSnapshotManager(dbPath).CreateSnapshot(); err != nil {
		t.Fatalf("CreateSnapshot() error: %v", err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor on healthy database failed: %v", err)
	}
}

func TestCheckClock(t *testing.T) {
	if err := checkClock(); err != nil {
		t.Errorf("checkClock() on a sane system: %v", err)
	}
}
