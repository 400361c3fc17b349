package days

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/utils"
)

type StatsCmd struct {
	Lang string `help:"Language for day counts (ru or en). Defaults to the saved language."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	stats, err := ctx.Service.Statistics()
	if err != nil {
		return err
	}
	if stats.IsEmpty() {
		fmt.Println("Nothing to analyze yet.")
		return nil
	}

	lang, err := c.language(ctx)
	if err != nil {
		return err
	}
	days := func(n int) string { return utils.FormatDays(lang, n) }

	fmt.Printf("Best period:     %s\n", days(stats.BestPeriod))
	fmt.Printf("Perfect days:    %s\n", days(stats.PerfectDays))
	fmt.Printf("Completed:       %d\n", stats.Completed)
	fmt.Printf("Average per day: %d\n", stats.Average)
	return nil
}

func (c *StatsCmd) language(ctx *cli.Context) (models.Language, error) {
	if c.Lang != "" {
		return models.ParseLanguage(c.Lang)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Language, nil
}
