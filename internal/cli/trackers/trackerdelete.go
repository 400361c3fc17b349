package trackers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

type TrackerDeleteCmd struct {
	Tracker string `arg:"" help:"Name or ID of the tracker to delete."`
}

func (c *TrackerDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Service.Trackers.Resolve(c.Tracker)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Service.Trackers.Delete(t); err != nil {
		return err
	}
	fmt.Printf("Deleted tracker: %s (restore with 'tracker restore %s')\n", t.Name, t.ID)
	return nil
}

type TrackerRestoreCmd struct {
	Tracker string `arg:"" help:"Name or ID of the deleted tracker."`
}

func (c *TrackerRestoreCmd) Run(ctx *cli.Context) error {
	deleted, err := ctx.Service.Trackers.ListDeleted()
	if err != nil {
		return err
	}

	var matches []models.Tracker
	for _, t := range deleted {
		if t.ID == c.Tracker {
			matches = []models.Tracker{t}
			break
		}
		if t.Name == c.Tracker {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return fmt.Errorf("deleted tracker %q: %w", c.Tracker, storage.ErrNotFound)
	case 1:
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = t.ID
		}
		return fmt.Errorf("several deleted trackers are named %q, restore one by ID: %s", c.Tracker, strings.Join(ids, ", "))
	}

	t := matches[0]
	if err := ctx.Service.Trackers.Restore(t.ID); err != nil {
		if errors.Is(err, storage.ErrDuplicateValue) {
			return fmt.Errorf("cannot restore %q: another tracker already uses that name: %w", t.Name, err)
		}
		return err
	}
	fmt.Printf("Restored tracker: %s\n", t.Name)
	return nil
}
