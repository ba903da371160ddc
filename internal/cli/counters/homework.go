package counters

import (
	"fmt"

	"github.com/urgecare/urgecare/internal/cli"
)

type HomeworkAddCmd struct {
	Title string `arg:"" help:"Homework title."`
}

func (c *HomeworkAddCmd) Run(ctx *cli.Context) error {
	hw, err := ctx.Store.AddHomework(c.Title)
	if err != nil {
		return err
	}
	fmt.Printf("Added homework %s (%s)\n", hw.Title, hw.ID)
	return nil
}

type HomeworkRemoveCmd struct {
	ID string `arg:"" help:"Homework id."`
}

func (c *HomeworkRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteHomework(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed homework %s and its logs\n", c.ID)
	return nil
}

type HomeworkLogCmd struct {
	ID     string  `arg:"" help:"Homework id."`
	Amount float64 `arg:"" help:"Amount to add to today's progress."`
}

func (c *HomeworkLogCmd) Run(ctx *cli.Context) error {
	if c.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if err := ctx.Store.LogHomework(c.ID, c.Amount); err != nil {
		return err
	}
	today, err := ctx.Store.HomeworkToday(c.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Today: %g\n", today)
	return nil
}

type HomeworkListCmd struct{}

func (c *HomeworkListCmd) Run(ctx *cli.Context) error {
	homeworks, err := ctx.Store.ListHomeworks()
	if err != nil {
		return err
	}
	if len(homeworks) == 0 {
		fmt.Println("No homework yet.")
		return nil
	}
	for _, hw := range homeworks {
		today, err := ctx.Store.HomeworkToday(hw.ID)
		if err != nil {
			return err
		}
		total, err := ctx.Store.HomeworkTotal(hw.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %-20s  today %8g  total %10g\n", hw.ID, cli.Truncate(hw.Title, 20), today, total)
	}
	return nil
}
