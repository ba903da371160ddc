// Package timers implements the SOS delay and pomodoro subcommands.
package timers

import (
	"fmt"
	"time"

	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/constants"
	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
	"github.com/urgecare/urgecare/internal/tui"
)

type SOSStartCmd struct {
	Minutes int    `help:"Timer length in minutes. Defaults to the configured SOS duration."`
	Note    string `help:"Note to attach to the delay record."`
}

func (c *SOSStartCmd) Run(ctx *cli.Context) error {
	minutes := c.Minutes
	if minutes <= 0 {
		minutes = ctx.SOSMinutes()
	}

	supports, err := sosSupports(ctx.Store)
	if err != nil {
		return err
	}
	for _, item := range supports {
		switch {
		case item.Text != "":
			fmt.Printf("  ♥ %s\n", cli.Truncate(item.Text, 60))
		case item.FilePath != "":
			fmt.Printf("  ♥ photo: %s\n", item.FilePath)
		default:
			fmt.Println("  ♥ photo")
		}
	}

	completed, elapsed, err := tui.Run("SOS — ride it out", time.Duration(minutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("timer failed: %w", err)
	}

	// Partial delays count too: what matters is the time actually waited.
	delayed := elapsed.Minutes()
	if completed {
		delayed = float64(minutes)
	}
	if delayed < 1 {
		fmt.Println("Timer stopped early, nothing recorded.")
		return nil
	}

	desc := c.Note
	if desc == "" {
		desc = "SOS timer"
	}
	rec, deduped, err := ctx.Store.AddDelaySmart(models.SourceManual, delayed, desc, ctx.CooldownMin())
	if err != nil {
		return err
	}
	if deduped {
		fmt.Printf("Merged into recent delay %s\n", rec.ID)
		return nil
	}
	if completed {
		fmt.Printf("Well done. Recorded a %d minute delay (%s).\n", minutes, rec.ID)
	} else {
		fmt.Printf("Recorded a %.1f minute delay (%s).\n", delayed, rec.ID)
	}
	return nil
}

// sosSupports returns the support cards shown while riding out an urge,
// newest first, never more than the per-flow photo cap.
func sosSupports(store storage.Provider) ([]models.SupportItem, error) {
	return store.ListSupports(constants.MaxSOSPhotos)
}

type SOSLogCmd struct {
	Minutes float64 `arg:"" help:"Minutes delayed."`
	Source  string  `help:"Delay source: chant, prayer, system, or manual." default:"manual"`
	Note    string  `help:"Description."`
	At      string  `help:"Event time as RFC 3339. Defaults to now."`
}

func (c *SOSLogCmd) Run(ctx *cli.Context) error {
	source, err := cli.ParseDelaySource(c.Source)
	if err != nil {
		return err
	}
	rec, err := ctx.Store.AddDelay(source, c.Minutes, c.At, c.Note)
	if err != nil {
		return err
	}
	fmt.Printf("Logged delay %s (%.1f min, %s)\n", rec.ID, rec.Minutes, rec.Source)
	return nil
}

type SOSHistoryCmd struct {
	Days int `help:"Look back this many days." default:"7"`
}

func (c *SOSHistoryCmd) Run(ctx *cli.Context) error {
	since := time.Now().AddDate(0, 0, -c.Days).UTC().Format(time.RFC3339)
	records, err := ctx.Store.ListDelaysSince(since)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No delays in the last %d day(s).\n", c.Days)
		return nil
	}

	var total float64
	for _, r := range records {
		total += r.Minutes
		fmt.Printf("%s  %-6s  %6.1f min  %s\n",
			cli.FormatTimestamp(r.OccurredAt), r.Source, r.Minutes, cli.Truncate(r.Description, 40))
	}
	fmt.Printf("\n%d delay(s), %.1f minutes total.\n", len(records), total)

	for _, source := range []models.DelaySource{models.SourceChant, models.SourcePrayer, models.SourceSystem, models.SourceManual} {
		count, err := ctx.Store.CountBySource(source)
		if err != nil {
			return err
		}
		if count == 0 {
			continue
		}
		minutes, err := ctx.Store.TotalMinutesBySource(source)
		if err != nil {
			return err
		}
		fmt.Printf("  all time %-6s: %d delay(s), %.1f minutes\n", source, count, minutes)
	}
	return nil
}
