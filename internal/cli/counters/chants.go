// Package counters implements the chant and homework subcommands.
package counters

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/urgecare/urgecare/internal/cli"
)

type ChantAddCmd struct {
	Name string `arg:"" help:"Mantra name."`
}

func (c *ChantAddCmd) Run(ctx *cli.Context) error {
	mantra, err := ctx.Store.AddMantra(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Added mantra %s (%s)\n", mantra.Name, mantra.ID)
	return nil
}

type ChantRemoveCmd struct {
	ID string `arg:"" help:"Mantra id."`
}

func (c *ChantRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteMantra(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed mantra %s and its counts\n", c.ID)
	return nil
}

type ChantIncCmd struct {
	ID    string `arg:"" help:"Mantra id."`
	Count int    `help:"Amount to add." default:"1"`
}

func (c *ChantIncCmd) Run(ctx *cli.Context) error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if err := ctx.Store.IncrementChant(c.ID, c.Count); err != nil {
		return err
	}
	today, err := ctx.Store.ChantToday(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Today: %d\n", today)
	return nil
}

type ChantListCmd struct{}

func (c *ChantListCmd) Run(ctx *cli.Context) error {
	mantras, err := ctx.Store.ListMantras()
	if err != nil {
		return err
	}
	if len(mantras) == 0 {
		fmt.Println("No mantras yet.")
		return nil
	}
	for _, m := range mantras {
		today, err := ctx.Store.ChantToday(m.ID)
		if err != nil {
			return err
		}
		total, err := ctx.Store.ChantTotal(m.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %-20s  today %5d  total %7d\n", m.ID, cli.Truncate(m.Name, 20), today, total)
	}
	return nil
}

type ChantClearTodayCmd struct {
	ID string `arg:"" help:"Mantra id."`
}

func (c *ChantClearTodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ClearChantToday(c.ID); err != nil {
		return err
	}
	fmt.Println("Today's count cleared.")
	return nil
}

type ChantClearTotalCmd struct {
	ID  string `arg:"" help:"Mantra id."`
	Yes bool   `help:"Skip the confirmation prompt."`
}

func (c *ChantClearTotalCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Clear ALL counts for this mantra?").
			Description("Every day's history will be deleted. This cannot be undone.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Store.ClearChantTotal(c.ID); err != nil {
		return err
	}
	fmt.Println("All counts cleared.")
	return nil
}
