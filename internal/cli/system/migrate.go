package system

import (
	"fmt"

	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/migration"
	"github.com/urgecare/urgecare/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports sqlite storage")
	}

	db := store.DB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	migrationFS, err := store.MigrationFS()
	if err != nil {
		return err
	}

	runner := migration.NewRunner(db, migrationFS)
	count, err := runner.Apply(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
