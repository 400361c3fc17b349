package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/postgres"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return errors.New("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tracker storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}

	return nil
}

func openSource(source string) (storage.Provider, error) {
	if postgres.IsConnString(source) {
		if valid, err := postgres.ValidateConnString(source); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(source), nil
	}
	return sqlite.NewStore(source), nil
}

func (c *InitCmd) copyData(ctx *cli.Context, source string) error {
	src, err := openSource(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying categories...")
	categories, err := src.GetAllCategories()
	if err != nil {
		return fmt.Errorf("failed to get categories from source: %w", err)
	}
	for _, category := range categories {
		if err := ctx.Store.AddCategory(category.Title); err != nil && !errors.Is(err, storage.ErrDuplicateValue) {
			return fmt.Errorf("failed to add category %q: %w", category.Title, err)
		}
	}
	fmt.Printf("    Copied %d categories\n", len(categories))

	// Records can only be attached to live trackers, so deleted trackers are
	// added live and soft-deleted once their records are in. They go first so
	// a deleted tracker never collides with a live one of the same name.
	fmt.Println("  Copying trackers and records...")
	all, err := src.GetAllTrackersIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get trackers from source: %w", err)
	}
	records, err := src.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records from source: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].IsDeleted() && !all[j].IsDeleted() })

	byTracker := make(map[string][]int)
	for i, r := range records {
		byTracker[r.TrackerID] = append(byTracker[r.TrackerID], i)
	}

	for _, t := range all {
		deleted := t.IsDeleted()
		t.DeletedAt = nil
		if err := ctx.Store.AddTracker(t); err != nil {
			return fmt.Errorf("failed to add tracker %s: %w", t.ID, err)
		}
		for _, i := range byTracker[t.ID] {
			if err := ctx.Store.AddRecord(records[i]); err != nil {
				return fmt.Errorf("failed to add record %s: %w", records[i].ID, err)
			}
		}
		if deleted {
			if err := ctx.Store.DeleteTracker(t.ID); err != nil {
				return fmt.Errorf("failed to delete tracker %s: %w", t.ID, err)
			}
		}
	}
	fmt.Printf("    Copied %d trackers\n", len(all))
	fmt.Printf("    Copied %d records\n", len(records))

	return nil
}
