// Package experiences implements the experience-wall subcommands.
package experiences

import (
	"fmt"
	"os"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
)

type AddCmd struct {
	Text string `arg:"" help:"Reflection text."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	exp, err := ctx.Store.AddExperience(c.Text)
	if err != nil {
		return err
	}
	if exp.ID == "" {
		fmt.Println("Nothing to add.")
		return nil
	}
	fmt.Printf("Added experience %s\n", exp.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.ListExperiences()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No experiences yet.")
		return nil
	}
	for _, e := range items {
		fmt.Printf("%s  %s  %s\n", e.ID, cli.FormatTimestamp(e.CreatedAt), cli.Truncate(e.Text, 60))
	}
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Experience id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteExperience(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed experience %s\n", c.ID)
	return nil
}

type ExportCmd struct {
	Out string `help:"Write CSV to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.ListExperiences()
	if err != nil {
		return err
	}

	csv := backup.ExperiencesCSV(items)
	if c.Out == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(csv), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d experiences to %s\n", len(items), c.Out)
	return nil
}
