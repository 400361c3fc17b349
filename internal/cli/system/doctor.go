package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/tracker/internal/backup"
	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/constants"
	"github.com/julianstephens/tracker/internal/migration"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
	"github.com/julianstephens/tracker/internal/utils"
)

// migratable is implemented by both SQL backends.
type migratable interface {
	MigrationRunner() (*migration.Runner, error)
	DB() *sqlx.DB
}

// processLister is swapped out in tests.
var processLister = ps.Processes

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Record integrity", run: checkRecordIntegrity, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone, needsDB: true},
	{name: "Other instances", run: checkOtherInstances, warnOnly: true},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if m, ok := ctx.Store.(migratable); ok {
		db := m.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.Get(&result, "SELECT 1"); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func versions(ctx *cli.Context) (current, latest int, err error) {
	m, ok := ctx.Store.(migratable)
	if !ok {
		return 0, 0, nil
	}
	runner, err := m.MigrationRunner()
	if err != nil {
		return 0, 0, err
	}
	current, err = runner.GetCurrentVersion(context.Background())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err = runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := versions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	all, err := ctx.Store.GetAllTrackersIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get trackers: %w", err)
	}
	var problems []string
	for _, t := range all {
		if err := t.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s (%s): %v", t.Name, t.ID, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d invalid trackers: %s", len(problems), strings.Join(problems, "; "))
	}
	return nil
}

func checkRecordIntegrity(ctx *cli.Context) error {
	records, err := ctx.Store.GetAllRecords()
	if err != nil {
		return fmt.Errorf("failed to get records: %w", err)
	}
	trackers, err := ctx.Store.GetAllTrackersIncludingDeleted()
	if err != nil {
		return fmt.Errorf("failed to get trackers: %w", err)
	}
	known := make(map[string]bool, len(trackers))
	for _, t := range trackers {
		known[t.ID] = true
	}

	var orphaned, badDays int
	for _, r := range records {
		if !known[r.TrackerID] {
			orphaned++
		}
		if utils.ValidateDay(r.Day) != nil {
			badDays++
		}
	}
	var errs []error
	if orphaned > 0 {
		errs = append(errs, fmt.Errorf("found %d records referencing non-existent trackers", orphaned))
	}
	if badDays > 0 {
		errs = append(errs, fmt.Errorf("found %d records with invalid day format", badDays))
	}
	return errors.Join(errs...)
}

func checkClockTimezone(ctx *cli.Context) error {
	tz, err := ctx.Timezone()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(tz) {
		return fmt.Errorf("timezone %q is not a valid IANA timezone", tz)
	}

	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkOtherInstances warns when another tracker process may hold the
// SQLite file open.
func checkOtherInstances(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	procs, err := processLister()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	self := os.Getpid()
	var pids []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(filepath.Base(p.Executable()), ".exe") == constants.AppName {
			pids = append(pids, fmt.Sprint(p.Pid()))
		}
	}
	if len(pids) > 0 {
		return fmt.Errorf("other %s processes are running (pid %s); stop them before restoring backups", constants.AppName, strings.Join(pids, ", "))
	}
	return nil
}
