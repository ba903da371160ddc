package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/urgecare/urgecare/internal/backup"
	"github.com/urgecare/urgecare/internal/bus"
	"github.com/urgecare/urgecare/internal/constants"
	"github.com/urgecare/urgecare/internal/logger"
	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

// Context carries the shared services every command runs against.
type Context struct {
	Store  storage.Provider
	Bus    *bus.Bus
	Backup *backup.Service
}

// CooldownMin reads the dedup window from settings, falling back to the
// default when settings are unreadable.
func (c *Context) CooldownMin() int {
	settings, err := c.Store.GetSettings()
	if err != nil || settings.CooldownMin <= 0 {
		return constants.DefaultCooldownMin
	}
	return settings.CooldownMin
}

// SOSMinutes reads the default SOS delay duration from settings.
func (c *Context) SOSMinutes() int {
	settings, err := c.Store.GetSettings()
	if err != nil || settings.SOSDefaultMinutes <= 0 {
		return constants.DefaultSOSMinutes
	}
	return settings.SOSDefaultMinutes
}

// PerformAutomaticSnapshot snapshots the database file and silently handles
// errors so a failed snapshot never interrupts the user's workflow.
func (c *Context) PerformAutomaticSnapshot() {
	mgr := backup.NewSnapshotManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateSnapshot(); err != nil {
		logger.Warn("Automatic snapshot failed", "error", err)
	}
}

// FormatTimestamp renders a stored RFC 3339 timestamp in local wall time
// for display. Unparseable values pass through untouched.
func FormatTimestamp(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format(constants.LocalTimeFormat)
}

// Truncate shortens s to max runes for table display.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// ParseDelaySource maps a user-supplied source name onto the known set.
func ParseDelaySource(s string) (models.DelaySource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chant":
		return models.SourceChant, nil
	case "prayer":
		return models.SourcePrayer, nil
	case "system":
		return models.SourceSystem, nil
	case "manual", "":
		return models.SourceManual, nil
	default:
		return "", fmt.Errorf("unknown delay source %q (want chant, prayer, system, or manual)", s)
	}
}
