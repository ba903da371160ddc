// Package journal implements the diary subcommands.
package journal

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
)

type AddCmd struct {
	Text   string   `arg:"" optional:"" help:"Entry text."`
	Image  []string `help:"Image file to attach (repeatable)." type:"existingfile"`
	Always bool     `help:"Skip the duplicate cooldown check."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	images, err := encodeImages(c.Image)
	if err != nil {
		return err
	}

	if c.Always {
		entry, err := ctx.Store.AddDiaryEntry(c.Text, images)
		if err != nil {
			return err
		}
		if entry.ID == "" {
			fmt.Println("Nothing to add.")
			return nil
		}
		fmt.Printf("Added entry %s\n", entry.ID)
		return nil
	}

	entry, deduped, err := ctx.Store.AddDiaryEntrySmart(c.Text, images, ctx.CooldownMin())
	if err != nil {
		return err
	}
	if entry.ID == "" {
		fmt.Println("Nothing to add.")
		return nil
	}
	if deduped {
		fmt.Printf("Duplicate within cooldown, kept existing entry %s\n", entry.ID)
		return nil
	}
	fmt.Printf("Added entry %s\n", entry.ID)
	return nil
}

type ListCmd struct {
	Limit int `help:"Show at most N entries." default:"20"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.ListDiaryEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}

	shown := entries
	if c.Limit > 0 && len(shown) > c.Limit {
		shown = shown[:c.Limit]
	}
	for _, e := range shown {
		extra := ""
		if n := len(e.Images); n > 0 {
			extra = fmt.Sprintf("  [%d image(s)]", n)
		}
		fmt.Printf("%s  %s  %s%s\n", e.ID, cli.FormatTimestamp(e.CreatedAt), cli.Truncate(e.Text, 60), extra)
	}
	if len(entries) > len(shown) {
		fmt.Printf("... and %d more\n", len(entries)-len(shown))
	}
	return nil
}

type EditCmd struct {
	ID   string `arg:"" help:"Entry id."`
	Text string `arg:"" help:"Replacement text."`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.UpdateDiaryEntry(c.ID, c.Text); err != nil {
		return err
	}
	fmt.Printf("Updated entry %s\n", c.ID)
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Entry id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteDiaryEntry(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed entry %s\n", c.ID)
	return nil
}

type ExportCmd struct {
	Out string `help:"Write CSV to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.ListDiaryEntries()
	if err != nil {
		return err
	}

	csv := backup.JournalCSV(entries)
	if c.Out == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(csv), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d entries to %s\n", len(entries), c.Out)
	return nil
}

// encodeImages reads image files into base64 data URLs, the storage format
// shared with the mobile surfaces.
func encodeImages(paths []string) ([]string, error) {
	var images []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read image %s: %w", path, err)
		}
		images = append(images, "data:image/*;base64,"+base64.StdEncoding.EncodeToString(data))
	}
	return images, nil
}
