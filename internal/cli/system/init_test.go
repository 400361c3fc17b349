package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/config"
	"github.com/julianstephens/tracker/internal/storage/postgres"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	ctx := cli.NewContext(store, &config.Config{Timezone: "UTC"})

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := ctx.Service.Categories.Add("Health"); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}

	count, err := ctx.Service.Categories.Count()
	if err != nil {
		t.Fatalf("failed to count categories: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty database after --force, got %d categories", count)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Force: true, Source: dbPath}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	src, cleanupSrc := setupTestDB(t)
	seedTrackers(t, src)
	srcPath := src.Store.GetConfigPath()
	cleanupSrc()

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{Source: srcPath}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	all, err := ctx.Store.GetAllTrackersIncludingDeleted()
	if err != nil {
		t.Fatalf("failed to list trackers: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 trackers, got %d", len(all))
	}

	retired, err := ctx.Store.GetTracker("retired")
	if err != nil {
		t.Fatalf("retired tracker missing: %v", err)
	}
	if !retired.IsDeleted() {
		t.Error("retired tracker should stay deleted")
	}

	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		t.Fatalf("failed to list records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestInitCmd_ForceRejectsPostgres(t *testing.T) {
	ctx := cli.NewContext(postgres.New("postgres://user@localhost:5432/tracker"), nil)
	cmd := &InitCmd{Force: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected --force to be rejected for non-SQLite stores")
	}
}
