// Package supports implements the support-wall subcommands.
package supports

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/urgecare/urgecare/internal/cli"
)

type AddCmd struct {
	Text  string `help:"Support card text."`
	Image string `help:"Image file to embed." type:"existingfile"`
	File  string `help:"Reference a file without embedding it." type:"path"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	image := ""
	if c.Image != "" {
		data, err := os.ReadFile(c.Image)
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", c.Image, err)
		}
		image = "data:image/*;base64," + base64.StdEncoding.EncodeToString(data)
	}

	item, err := ctx.Store.AddSupport(c.Text, image, c.File)
	if err != nil {
		return err
	}
	fmt.Printf("Added support card %s\n", item.ID)
	return nil
}

type ListCmd struct {
	Limit int `help:"Show at most N cards, newest first. 0 means all." default:"0"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.ListSupports(c.Limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No support cards yet.")
		return nil
	}
	for _, item := range items {
		kind := "text"
		switch {
		case item.Image != "":
			kind = "image"
		case item.FilePath != "":
			kind = "file"
		}
		fmt.Printf("%s  %-5s  %s  %s\n", item.ID, kind, cli.FormatTimestamp(item.CreatedAt), cli.Truncate(item.Text, 50))
	}
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Support card id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteSupport(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed support card %s\n", c.ID)
	return nil
}
