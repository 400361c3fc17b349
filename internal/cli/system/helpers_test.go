package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/config"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(store, &config.Config{Timezone: "UTC"})

	cleanup := func() {
		store.Close()
	}
	return ctx, cleanup
}

// seedTrackers adds a "Health" category holding two "Drink water" trackers:
// "retired" is soft-deleted and "current" is live. Each has one completion.
func seedTrackers(t *testing.T, ctx *cli.Context) {
	t.Helper()
	if err := ctx.Store.AddCategory("Health"); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}
	add := func(id string) {
		tr := models.Tracker{ID: id, Name: "Drink water", Emoji: "💧", Schedule: models.EveryDay, Kind: models.KindHabit, CategoryTitle: "Health"}
		if err := ctx.Store.AddTracker(tr); err != nil {
			t.Fatalf("failed to add tracker %s: %v", id, err)
		}
		if err := ctx.Store.AddRecord(models.TrackerRecord{TrackerID: id, Day: "2024-01-08"}); err != nil {
			t.Fatalf("failed to add record: %v", err)
		}
	}
	add("retired")
	if err := ctx.Store.DeleteTracker("retired"); err != nil {
		t.Fatalf("failed to delete tracker: %v", err)
	}
	add("current")
}
