package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/tracker/internal/cli"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := cli.NewContext(store, nil)
	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, cleanup
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("run without flags failed: %v", err)
	}

	cmd := &SettingsCmd{
		Filter:    ptr("not-completed"),
		Timezone:  ptr("Europe/Moscow"),
		Onboarded: ptr(true),
		Language:  ptr("en"),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := models.Settings{Onboarded: true, SelectedFilter: models.FilterNotCompleted, Timezone: "Europe/Moscow", Language: models.LanguageEN}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}

	if err := (&SettingsCmd{Onboarded: ptr(false)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctx.Store.GetSettings(); got.Onboarded {
		t.Error("expected onboarding to be reset")
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"unknown filter", SettingsCmd{Filter: ptr("weekly")}},
		{"empty filter", SettingsCmd{Filter: ptr("")}},
		{"unknown timezone", SettingsCmd{Timezone: ptr("Mars/Olympus_Mons")}},
		{"unknown language", SettingsCmd{Language: ptr("de")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got != models.DefaultSettings() {
		t.Errorf("rejected updates must not be saved, got %+v", got)
	}
}
