// Package settings implements the settings subcommand.
package settings

import (
	"fmt"

	"github.com/urgecare/urgecare/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	SOSMinutes  *int `help:"Default SOS timer length in minutes."`
	CooldownMin *int `help:"Smart-insert duplicate window in minutes."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  SOS Default Minutes: %d\n", settings.SOSDefaultMinutes)
		fmt.Printf("  Cooldown Minutes:    %d\n", settings.CooldownMin)
		return nil
	}

	updated := false
	if c.SOSMinutes != nil {
		if *c.SOSMinutes <= 0 {
			return fmt.Errorf("sos minutes must be positive")
		}
		settings.SOSDefaultMinutes = *c.SOSMinutes
		updated = true
	}
	if c.CooldownMin != nil {
		if *c.CooldownMin < 0 {
			return fmt.Errorf("cooldown minutes must not be negative")
		}
		settings.CooldownMin = *c.CooldownMin
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}
