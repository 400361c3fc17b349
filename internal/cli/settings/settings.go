package settings

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Filter    *string `help:"Default day filter: all, today, completed or not-completed."`
	Timezone  *string `help:"IANA timezone used to decide what 'today' is, or Local."`
	Onboarded *bool   `help:"Mark the onboarding screen as seen. Use --onboarded=false to show it again."`
	Language  *string `help:"Plural rules for completion counts: ru or en."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Onboarded:       %v\n", settings.Onboarded)
		fmt.Printf("  Selected Filter: %s\n", settings.SelectedFilter)
		fmt.Printf("  Timezone:        %s\n", settings.Timezone)
		fmt.Printf("  Language:        %s\n", settings.Language)
		if ctx.Config != nil && ctx.Config.Timezone != "" {
			fmt.Printf("  (timezone overridden by config: %s)\n", ctx.Config.Timezone)
		}
		return nil
	}

	updated := false
	if c.Filter != nil {
		filter, err := models.ParseFilter(*c.Filter)
		if err != nil {
			return err
		}
		settings.SelectedFilter = filter
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Language != nil {
		lang, err := models.ParseLanguage(*c.Language)
		if err != nil {
			return err
		}
		settings.Language = lang
		updated = true
	}
	if c.Onboarded != nil {
		settings.Onboarded = *c.Onboarded
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
