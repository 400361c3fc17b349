package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/config"
	"github.com/julianstephens/tracker/internal/events"
	"github.com/julianstephens/tracker/internal/keyring"
	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/trackers"
	"github.com/julianstephens/tracker/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Service *trackers.Service
	Bus     *events.Bus
	Config  *config.Config
	Keyring keyring.Secret
}

// NewContext wires the domain service to store. cfg may be nil, in which case
// defaults apply.
func NewContext(store storage.Provider, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = &config.Config{}
	}
	ctx := &Context{
		Store:   store,
		Bus:     events.NewBus(),
		Config:  cfg,
		Keyring: keyring.Default(),
	}
	if cfg.Keyring.Service != "" && cfg.Keyring.User != "" {
		ctx.Keyring = keyring.Secret{Service: cfg.Keyring.Service, User: cfg.Keyring.User}
	}
	ctx.Service = trackers.NewService(store, ctx.Bus, ctx.Today)
	return ctx
}

// Timezone returns the configured override, falling back to the stored setting.
func (c *Context) Timezone() (string, error) {
	if c.Config != nil && c.Config.Timezone != "" {
		return c.Config.Timezone, nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Timezone, nil
}

// Today returns today's day key in the effective timezone.
func (c *Context) Today() (string, error) {
	tz, err := c.Timezone()
	if err != nil {
		return "", err
	}
	return utils.TodayInTimezone(tz)
}

// ResolveDay returns day when set, today otherwise, validated either way.
func (c *Context) ResolveDay(day string) (string, error) {
	if day == "" {
		return c.Today()
	}
	if err := utils.ValidateDay(day); err != nil {
		return "", err
	}
	return day, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only file-backed stores are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Swatch renders a small block in the tracker's color. Invalid colors render
// as blank space so listings stay aligned.
func Swatch(hex string) string {
	if _, err := colorful.Hex(hex); err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// FormatTracker renders a one-line description of t.
func FormatTracker(t models.Tracker) string {
	var b strings.Builder
	b.WriteString(Swatch(t.Color))
	b.WriteString(" ")
	if t.Emoji != "" {
		b.WriteString(t.Emoji)
		b.WriteString(" ")
	}
	b.WriteString(t.Name)
	fmt.Fprintf(&b, "  [%s]", t.Kind)
	if t.Kind == models.KindHabit || t.Schedule != models.EveryDay {
		fmt.Fprintf(&b, "  %s", t.Schedule)
	}
	return b.String()
}
