package days

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/cli"
)

// MarkCmd toggles a tracker's completion for a day.
type MarkCmd struct {
	Tracker string `arg:"" help:"Name or ID of the tracker."`
	Date    string `help:"Day to mark (YYYY-MM-DD). Defaults to today." short:"d"`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.Trackers.Resolve(c.Tracker)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	done, err := ctx.Service.Records.Toggle(t.ID, day)
	if err != nil {
		return err
	}

	completions, err := ctx.Service.Records.CountCompletions(t.ID)
	if err != nil {
		return err
	}

	state := "not done"
	if done {
		state = "done"
	}
	fmt.Printf("%s marked %s on %s (%d total)\n", t.Name, state, day, completions)
	return nil
}
