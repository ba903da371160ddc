// Package todos implements the todo-list subcommands.
package todos

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/cli"
	"github.com/urgecare/urgecare/internal/constants"
)

type AddCmd struct {
	Text   string `arg:"" help:"Todo text."`
	Always bool   `help:"Skip the duplicate cooldown check."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if c.Always {
		todo, err := ctx.Store.AddTodo(c.Text)
		if err != nil {
			return err
		}
		if todo.ID == "" {
			fmt.Println("Nothing to add.")
			return nil
		}
		fmt.Printf("Added todo %s\n", todo.ID)
		return nil
	}

	todo, deduped, err := ctx.Store.AddTodoSmart(c.Text, ctx.CooldownMin())
	if err != nil {
		return err
	}
	if todo.ID == "" {
		fmt.Println("Nothing to add.")
		return nil
	}
	if deduped {
		fmt.Printf("Duplicate within cooldown, kept existing todo %s\n", todo.ID)
		return nil
	}
	fmt.Printf("Added todo %s\n", todo.ID)
	return nil
}

type ToggleCmd struct {
	ID string `arg:"" help:"Todo id."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ToggleTodo(c.ID); err != nil {
		return err
	}
	fmt.Printf("Toggled todo %s\n", c.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	todos, err := ctx.Store.ListTodos()
	if err != nil {
		return err
	}
	if len(todos) == 0 {
		fmt.Println("No todos yet.")
		return nil
	}
	for _, t := range todos {
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		fmt.Printf("%s %s  %s  %s\n", mark, t.ID, cli.FormatTimestamp(t.CreatedAt), cli.Truncate(t.Text, 60))
	}
	return nil
}

type RemoveCmd struct {
	ID string `arg:"" help:"Todo id."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteTodo(c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed todo %s\n", c.ID)
	return nil
}

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		err := huh.NewConfirm().
			Title("Delete ALL todos?").
			Description("This cannot be undone.").
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

	if err := ctx.Store.ClearTodos(); err != nil {
		return err
	}
	fmt.Println("All todos cleared.")
	return nil
}

type ExportCmd struct {
	Out string `help:"Write CSV to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	todos, err := ctx.Store.ListTodos()
	if err != nil {
		return err
	}

	csv := backup.TodosCSV(todos)
	if c.Out == "" {
		fmt.Print(csv)
		return nil
	}
	if err := os.WriteFile(c.Out, []byte(csv), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d todos to %s (%s/%s/%s)\n",
		len(todos), c.Out,
		constants.TodoCSVHeaderText, constants.TodoCSVHeaderDone, constants.TodoCSVHeaderCreated)
	return nil
}
