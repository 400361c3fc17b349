package days

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/trackers"
	"github.com/julianstephens/tracker/internal/utils"
)

type DayCmd struct {
	Date   string `help:"Day to show (YYYY-MM-DD). Defaults to today." short:"d"`
	Search string `help:"Only show trackers whose name contains this text." short:"s"`
	Filter string `help:"One of all, today, completed, not-completed. Defaults to the saved filter." short:"f"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	filter, err := c.filter(ctx)
	if err != nil {
		return err
	}

	view, err := ctx.Service.Day(trackers.Query{Day: day, Today: today, Search: c.Search, Filter: filter})
	if err != nil {
		return err
	}

	weekday, err := utils.WeekdayOfDay(view.Day)
	if err != nil {
		return err
	}
	fmt.Printf("%s, %s  [%s]\n\n", weekday.FullName(), view.Day, filter)

	if !view.Scheduled {
		fmt.Println("Nothing planned for this day.")
		return nil
	}
	if len(view.Categories) == 0 {
		fmt.Println("Nothing found.")
		return nil
	}

	for _, category := range view.Categories {
		fmt.Println(category.Title)
		for _, t := range category.Trackers {
			mark := " "
			if view.Done[t.ID] {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\n", mark, cli.FormatTracker(t))
		}
	}
	return nil
}

func (c *DayCmd) filter(ctx *cli.Context) (models.Filter, error) {
	if c.Filter != "" {
		return models.ParseFilter(c.Filter)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.SelectedFilter, nil
}
