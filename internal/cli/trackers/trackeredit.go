package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerEditCmd struct {
	Tracker  string  `arg:"" help:"Name or ID of the tracker to edit."`
	Name     *string `help:"New name."`
	Category *string `help:"Move to another category." short:"c"`
	Emoji    *string `help:"New emoji." short:"e"`
	Color    *string `help:"New hex color."`
	Schedule *string `help:"New comma-separated weekdays or 'daily'." short:"s"`
}

func (c *TrackerEditCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.Trackers.Resolve(c.Tracker)
	if err != nil {
		return err
	}

	updated := false
	category := t.CategoryTitle
	if c.Name != nil {
		t.Name = *c.Name
		updated = true
	}
	if c.Category != nil {
		category = *c.Category
		updated = true
	}
	if c.Emoji != nil {
		t.Emoji = *c.Emoji
		updated = true
	}
	if c.Color != nil {
		t.Color = *c.Color
		updated = true
	}
	if c.Schedule != nil {
		schedule, err := models.ParseSchedule(*c.Schedule)
		if err != nil {
			return err
		}
		t.Schedule = schedule
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := ctx.Service.Trackers.Update(t, category); err != nil {
		return err
	}
	fmt.Printf("Updated tracker: %s\n", t.Name)
	return nil
}
