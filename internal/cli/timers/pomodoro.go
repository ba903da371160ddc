package timers

import (
	"fmt"
	"time"

	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/tui"
)

type PomodoroRunCmd struct {
	Minutes int    `help:"Session length in minutes." default:"25"`
	Label   string `help:"What this session is for."`
}

func (c *PomodoroRunCmd) Run(ctx *cli.Context) error {
	if c.Minutes <= 0 {
		return fmt.Errorf("session length must be positive")
	}

	title := "Pomodoro"
	if c.Label != "" {
		title = "Pomodoro — " + c.Label
	}

	started := time.Now()
	completed, _, err := tui.Run(title, time.Duration(c.Minutes)*time.Minute)
	if err != nil {
		return fmt.Errorf("timer failed: %w", err)
	}
	if !completed {
		fmt.Println("Session abandoned, nothing recorded.")
		return nil
	}

	session, err := ctx.Store.AddPomodoroSession(
		started.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		c.Minutes,
		c.Label,
	)
	if err != nil {
		return err
	}
	fmt.Printf("Session complete! Recorded %d minutes (%s).\n", c.Minutes, session.ID)
	return nil
}

type PomodoroRecordCmd struct {
	Minutes int    `arg:"" help:"Minutes worked."`
	Label   string `help:"What the session was for."`
	EndedAt string `help:"Session end as RFC 3339. Defaults to now."`
}

func (c *PomodoroRecordCmd) Run(ctx *cli.Context) error {
	if c.Minutes <= 0 {
		return fmt.Errorf("session length must be positive")
	}

	ended := time.Now()
	if c.EndedAt != "" {
		t, err := time.Parse(time.RFC3339, c.EndedAt)
		if err != nil {
			return fmt.Errorf("invalid --ended-at: %w", err)
		}
		ended = t
	}
	started := ended.Add(-time.Duration(c.Minutes) * time.Minute)

	session, err := ctx.Store.AddPomodoroSession(
		started.UTC().Format(time.RFC3339),
		ended.UTC().Format(time.RFC3339),
		c.Minutes,
		c.Label,
	)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %d minute session (%s).\n", c.Minutes, session.ID)
	return nil
}

type PomodoroListCmd struct {
	Limit int `help:"Show the most recent N sessions." default:"10"`
}

func (c *PomodoroListCmd) Run(ctx *cli.Context) error {
	sessions, err := ctx.Store.ListRecentPomodoroSessions(c.Limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return nil
	}
	for _, s := range sessions {
		label := s.Label
		if label == "" {
			label = "-"
		}
		fmt.Printf("%s  %3d min  %s\n", cli.FormatTimestamp(s.StartedAt), s.Minutes, cli.Truncate(label, 40))
	}
	return nil
}
