// Package backups implements portable JSON export/import and file-level
// snapshot subcommands.
package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/storage"
)

type ExportCmd struct {
	Out string `help:"Write the backup document to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Backup.ExportJSON()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Out == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(c.Out, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("✓ Backup written to %s\n", c.Out)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Backup document to import." type:"existingfile"`
	Mode string `help:"merge upserts by id, overwrite replaces every collection." enum:"merge,overwrite" default:"merge"`
	Yes  bool   `help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	mode := storage.ImportMode(c.Mode)

	if mode == storage.ImportOverwrite && !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Overwrite ALL local data?").
			Description("Every collection will be replaced by the backup's contents.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	// A snapshot first, so even an overwrite import stays reversible.
	ctx.PerformAutomaticSnapshot()

	if err := ctx.Backup.ImportJSON(data, mode); err != nil {
		return err
	}
	fmt.Printf("✓ Import complete (%s).\n", mode)
	return nil
}

type SnapshotCmd struct{}

func (c *SnapshotCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewSnapshotManager(ctx.Store.GetConfigPath())
	path, err := mgr.CreateSnapshot()
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	fmt.Printf("✓ Snapshot created: %s\n", filepath.Base(path))
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewSnapshotManager(ctx.Store.GetConfigPath())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		fmt.Printf("Snapshots are stored in: %s\n", mgr.GetSnapshotDir())
		return nil
	}

	fmt.Printf("Available snapshots (%d total, keeping most recent %d):\n\n", len(snapshots), backup.MaxSnapshots)
	for _, s := range snapshots {
		sizeKB := float64(s.Size) / 1024.0
		fmt.Printf("  %s  %s  (%.1f KB)\n", s.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(s.Path), sizeKB)
	}
	fmt.Printf("\nSnapshot directory: %s\n", mgr.GetSnapshotDir())
	return nil
}

type RestoreCmd struct {
	SnapshotFile string `arg:"" help:"Path or filename of the snapshot to restore."`
	Yes          bool   `help:"Skip the confirmation prompt."`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewSnapshotManager(ctx.Store.GetConfigPath())

	snapshotPath := c.SnapshotFile
	if filepath.IsAbs(snapshotPath) {
		if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
			return fmt.Errorf("snapshot file not found: %s", snapshotPath)
		}
	} else {
		if _, err := os.Stat(snapshotPath); err == nil {
			absPath, err := filepath.Abs(snapshotPath)
			if err != nil {
				return fmt.Errorf("failed to resolve snapshot path: %w", err)
			}
			snapshotPath = absPath
		} else {
			possible := filepath.Join(mgr.GetSnapshotDir(), c.SnapshotFile)
			if _, err := os.Stat(possible); err == nil {
				snapshotPath = possible
			} else {
				return fmt.Errorf("snapshot file not found: tried current directory and %s", mgr.GetSnapshotDir())
			}
		}
	}

	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Replace the current database with this snapshot?").
			Description(fmt.Sprintf("Restore from %s. A snapshot of the current database is taken first.", filepath.Base(snapshotPath))).
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	if err := mgr.RestoreSnapshot(snapshotPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println("✓ Database restored successfully!")
	return nil
}
