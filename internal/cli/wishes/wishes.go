// Package wishes implements the wish-list subcommands.
package wishes

import (
	"fmt"
	"os"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
)

type AddCmd struct {
	Text string `arg:"" help:"Wish text."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	wish, err := ctx.Store.AddWish(c.Text)
	if err != nil {
		return err
	}
	if wish.ID == "" {
		fmt.Println("Nothing to add.")
		return nil
	}
	fmt.Printf("Added wish %s\n", wish.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	wishes, err := ctx.Store.ListWishes()
	if err != nil {
		return err
	}
	if len(wishes) == 0 {
		fmt.Println("No wishes yet.")
		return nil
	}
	for _, w := range wishes {
		fmt.Printf("%s  %3d votes  %s\n", w.ID, w.Votes, cli.Truncate(w.Text, 60))
	}
	return nil
}

type UpvoteCmd struct {
	ID string `arg:"" help:"Wish id."`
}

func (c *UpvoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.UpvoteWish(c.ID); err != nil {
		return err
	}
	fmt.Printf("Upvoted wish %s\n", c.ID)
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Wish id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteWish(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed wish %s\n", c.ID)
	return nil
}

type ExportCmd struct {
	Out string `help:"Write CSV to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	wishes, err := ctx.Store.ListWishes()
	if err != nil {
		return err
	}

	csv := backup.WishesCSV(wishes)
	if c.Out == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(csv), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d wishes to %s\n", len(wishes), c.Out)
	return nil
}
