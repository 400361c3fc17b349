package categories

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/utils"
)

type CategoryAddCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Service.Categories.Add(c.Title); err != nil {
		return err
	}
	fmt.Printf("Added category: %s\n", c.Title)
	return nil
}

type CategoryListCmd struct {
	Trackers bool `help:"Show the trackers of each category." short:"t"`
}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Service.Categories.List()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	for _, category := range categories {
		fmt.Printf("%s (%d)\n", category.Title, len(category.Trackers))
		if !c.Trackers {
			continue
		}
		for _, t := range category.Trackers {
			completions, err := ctx.Service.Records.CountCompletions(t.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  %s  %s\n", cli.FormatTracker(t), utils.FormatDays(settings.Language, completions))
		}
	}
	return nil
}

type CategoryDeleteCmd struct {
	Title string `arg:"" help:"Category title."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()
	if err := ctx.Service.Categories.Delete(c.Title); err != nil {
		return err
	}
	fmt.Printf("Deleted category: %s\n", c.Title)
	return nil
}
