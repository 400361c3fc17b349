package trackers

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
)

type TrackerListCmd struct {
	Deleted bool `help:"List deleted trackers instead."`
}

func (c *TrackerListCmd) Run(ctx *cli.Context) error {
	var (
		list []models.Tracker
		err  error
	)
	if c.Deleted {
		list, err = ctx.Service.Trackers.ListDeleted()
	} else {
		list, err = ctx.Service.Trackers.List()
	}
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No trackers found.")
		return nil
	}

	for _, t := range list {
		fmt.Printf("%s  %s  (%s)\n", cli.FormatTracker(t), t.CategoryTitle, t.ID)
	}
	return nil
}
