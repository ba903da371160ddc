package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/bus"
	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/cli/backups"
	"github.com/urgecare/urgecare/internal/cli/counters"
	"github.com/urgecare/urgecare/internal/cli/experiences"
	"github.com/urgecare/urgecare/internal/cli/journal"
	"github.com/urgecare/urgecare/internal/cli/settings"
	"github.com/urgecare/urgecare/internal/cli/supports"
	"github.com/urgecare/urgecare/internal/cli/system"
	"github.com/urgecare/urgecare/internal/cli/timers"
	"github.com/urgecare/urgecare/internal/cli/todos"
	"github.com/urgecare/urgecare/internal/cli/wishes"
	apperrors "github.com/urgecare/urgecare/internal/errors"
	"github.com/urgecare/urgecare/internal/logger"
	"github.com/urgecare/urgecare/internal/storage"
	"github.com/urgecare/urgecare/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"~/.config/urgecare/urgecare.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize urgecare storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Journal struct {
		Add    journal.AddCmd    `cmd:"" help:"Add a journal entry."`
		List   journal.ListCmd   `cmd:"" help:"List journal entries."`
		Edit   journal.EditCmd   `cmd:"" help:"Edit an entry's text."`
		Remove journal.RemoveCmd `cmd:"" help:"Remove an entry."`
		Export journal.ExportCmd `cmd:"" help:"Export entries as CSV."`
	} `cmd:"" help:"Manage journal entries."`

	Todo struct {
		Add    todos.AddCmd    `cmd:"" help:"Add a todo."`
		Toggle todos.ToggleCmd `cmd:"" help:"Toggle a todo's done state."`
		List   todos.ListCmd   `cmd:"" help:"List todos."`
		Remove todos.RemoveCmd `cmd:"" help:"Remove a todo."`
		Clear  todos.ClearCmd  `cmd:"" help:"Delete all todos."`
		Export todos.ExportCmd `cmd:"" help:"Export todos as CSV."`
	} `cmd:"" help:"Manage todos."`

	Wish struct {
		Add    wishes.AddCmd    `cmd:"" help:"Add a wish."`
		Upvote wishes.UpvoteCmd `cmd:"" help:"Upvote a wish."`
		List   wishes.ListCmd   `cmd:"" help:"List wishes by votes."`
		Remove wishes.RemoveCmd `cmd:"" help:"Remove a wish."`
		Export wishes.ExportCmd `cmd:"" help:"Export wishes as CSV."`
	} `cmd:"" help:"Manage the wish list."`

	Support struct {
		Add    supports.AddCmd    `cmd:"" help:"Add a support card."`
		List   supports.ListCmd   `cmd:"" help:"List support cards."`
		Remove supports.RemoveCmd `cmd:"" help:"Remove a support card."`
	} `cmd:"" help:"Manage the support wall."`

	Experience struct {
		Add    experiences.AddCmd    `cmd:"" help:"Add an experience reflection."`
		List   experiences.ListCmd   `cmd:"" help:"List experiences."`
		Remove experiences.RemoveCmd `cmd:"" help:"Remove an experience."`
		Export experiences.ExportCmd `cmd:"" help:"Export experiences as CSV."`
	} `cmd:"" help:"Manage the experience wall."`

	Sos struct {
		Start   timers.SOSStartCmd   `cmd:"" help:"Start an SOS delay timer." default:"1"`
		Log     timers.SOSLogCmd     `cmd:"" help:"Log a delay directly."`
		History timers.SOSHistoryCmd `cmd:"" help:"Show recent delays and totals."`
	} `cmd:"" help:"Delay an urge."`

	Chant struct {
		Add        counters.ChantAddCmd        `cmd:"" help:"Add a mantra."`
		Remove     counters.ChantRemoveCmd     `cmd:"" help:"Remove a mantra and its counts."`
		Inc        counters.ChantIncCmd        `cmd:"" help:"Add to today's count."`
		List       counters.ChantListCmd       `cmd:"" help:"List mantras with counts." default:"1"`
		ClearToday counters.ChantClearTodayCmd `cmd:"" help:"Reset today's count."`
		ClearTotal counters.ChantClearTotalCmd `cmd:"" help:"Delete all counts."`
	} `cmd:"" help:"Manage chant counters."`

	Homework struct {
		Add    counters.HomeworkAddCmd    `cmd:"" help:"Add a homework."`
		Remove counters.HomeworkRemoveCmd `cmd:"" help:"Remove a homework and its logs."`
		Log    counters.HomeworkLogCmd    `cmd:"" help:"Add to today's progress."`
		List   counters.HomeworkListCmd   `cmd:"" help:"List homework with progress." default:"1"`
	} `cmd:"" help:"Manage homework progress."`

	Pomodoro struct {
		Run    timers.PomodoroRunCmd    `cmd:"" help:"Run a focus session." default:"1"`
		Record timers.PomodoroRecordCmd `cmd:"" help:"Record a finished session."`
		List   timers.PomodoroListCmd   `cmd:"" help:"List recent sessions."`
	} `cmd:"" help:"Pomodoro focus sessions."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`

	Backup struct {
		Export   backups.ExportCmd   `cmd:"" help:"Export all data as a JSON document."`
		Import   backups.ImportCmd   `cmd:"" help:"Import a JSON backup document."`
		Snapshot backups.SnapshotCmd `cmd:"" help:"Snapshot the database file."`
		List     backups.ListCmd     `cmd:"" help:"List database snapshots."`
		Restore  backups.RestoreCmd  `cmd:"" help:"Restore a database snapshot."`
	} `cmd:"" help:"Backup and restore."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("urgecare"),
		kong.Description("Local-first urge delay and habit companion"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.3.0"},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)

	changeBus := bus.New()
	defer changeBus.Close()
	store.SetNotifier(bus.NewPublisher(changeBus))

	if CLI.Debug {
		watchToken := changeBus.NewToken()
		for _, topic := range storage.AllTopics() {
			changeBus.Subscribe(topic, watchToken, func() {
				logger.Debug("collection changed", "topic", topic)
			})
		}
	}

	appCtx := &cli.Context{
		Store:  store,
		Bus:    changeBus,
		Backup: backup.NewService(store),
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		changeBus.Close()
		apperrors.Fatal(err)
	}
}
