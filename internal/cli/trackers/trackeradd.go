package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerAddCmd struct {
	Name     string `arg:"" help:"Tracker name (up to 38 characters)."`
	Category string `help:"Category the tracker belongs to." short:"c" required:""`
	Emoji    string `help:"A single emoji shown next to the name." short:"e"`
	Color    string `help:"Hex color, e.g. #FD4C49." default:"#FD4C49"`
	Schedule string `help:"Comma-separated weekdays (mon,wed,fri) or 'daily'." short:"s"`
	Event    bool   `help:"Create an irregular event instead of a habit; shown every day."`
}

func (c *TrackerAddCmd) Run(ctx *cli.Context) error {
	schedule, err := models.ParseSchedule(c.Schedule)
	if err != nil {
		return err
	}

	kind := models.KindHabit
	if c.Event {
		kind = models.KindEvent
	}

	t, err := ctx.Service.Trackers.Add(models.Tracker{
		Name:     c.Name,
		Emoji:    c.Emoji,
		Color:    c.Color,
		Schedule: schedule,
		Kind:     kind,
	}, c.Category)
	if err != nil {
		return err
	}

	fmt.Printf("Added tracker: %s (ID: %s)\n", t.Name, t.ID)
	return nil
}
