package transfer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
	"github.com/julianstephens/tracker/internal/storage/sqlite"
)

func newStore(t *testing.T) storage.Provider {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, p storage.Provider) {
	t.Helper()
	require.NoError(t, p.AddCategory("Health"))
	require.NoError(t, p.AddCategory("Empty"))
	require.NoError(t, p.AddTracker(models.Tracker{
		ID: "t-water", Name: "Drink water", Emoji: "💧", Color: "#fd4c49",
		Schedule: models.NewSchedule(models.Monday, models.Wednesday),
		Kind:     models.KindHabit, CategoryTitle: "Health",
	}))
	require.NoError(t, p.AddTracker(models.Tracker{
		ID: "t-run", Name: "Run", Emoji: "🏃", Schedule: models.NewSchedule(models.Friday),
		Kind: models.KindHabit, CategoryTitle: "Health",
	}))
	require.NoError(t, p.AddRecord(models.TrackerRecord{TrackerID: "t-water", Day: "2024-01-08"}))
	require.NoError(t, p.AddRecord(models.TrackerRecord{TrackerID: "t-water", Day: "2024-01-10"}))
	require.NoError(t, p.AddRecord(models.TrackerRecord{TrackerID: "t-run", Day: "2024-01-05"}))
	require.NoError(t, p.DeleteTracker("t-run"))
	require.NoError(t, p.SaveSettings(models.Settings{
		Onboarded: true, SelectedFilter: models.FilterCompleted, Timezone: "Europe/Moscow", Language: models.LanguageEN,
	}))
}

func TestExport(t *testing.T) {
	src := newStore(t)
	seed(t, src)

	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	doc, err := Export(src, now)
	require.NoError(t, err)

	assert.Equal(t, FormatVersion, doc.Version)
	assert.Equal(t, now, doc.ExportedAt)
	assert.Equal(t, SettingsDoc{Onboarded: true, SelectedFilter: "completed", Timezone: "Europe/Moscow", Language: "en"}, doc.Settings)

	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "Empty", doc.Categories[0].Title)
	assert.Empty(t, doc.Categories[0].Trackers)

	health := doc.Categories[1]
	require.Len(t, health.Trackers, 2)
	assert.Equal(t, "Drink water", health.Trackers[0].Name)
	assert.Equal(t, []string{"Mon", "Wed"}, health.Trackers[0].Schedule)
	assert.Equal(t, []string{"2024-01-08", "2024-01-10"}, health.Trackers[0].Done)
	assert.False(t, health.Trackers[0].Deleted)
	assert.Equal(t, "Run", health.Trackers[1].Name)
	assert.True(t, health.Trackers[1].Deleted)
}

func TestRoundTrip(t *testing.T) {
	src := newStore(t)
	seed(t, src)

	doc, err := Export(src, time.Now())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, doc))
	assert.Contains(t, buf.String(), "schedule: [Mon, Wed]")

	read, err := Read(&buf)
	require.NoError(t, err)

	dst := newStore(t)
	summary, err := Import(dst, read)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Categories)
	assert.Equal(t, 2, summary.Trackers)
	assert.Equal(t, 3, summary.Records)
	assert.Empty(t, summary.SkippedTrackers)

	settings, err := dst.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, models.FilterCompleted, settings.SelectedFilter)
	assert.True(t, settings.Onboarded)
	assert.Equal(t, models.LanguageEN, settings.Language)

	live, err := dst.GetAllTrackers()
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "t-water", live[0].ID)
	assert.Equal(t, models.NewSchedule(models.Monday, models.Wednesday), live[0].Schedule)

	run, err := dst.GetTracker("t-run")
	require.NoError(t, err)
	assert.True(t, run.IsDeleted())

	n, err := dst.CountRecords("t-run")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportSkipsExistingTrackers(t *testing.T) {
	src := newStore(t)
	seed(t, src)
	doc, err := Export(src, time.Now())
	require.NoError(t, err)

	summary, err := Import(src, doc)
	require.NoError(t, err)
	assert.Zero(t, summary.Categories)
	assert.Zero(t, summary.Trackers)
	assert.ElementsMatch(t, []string{"Drink water", "Run"}, summary.SkippedTrackers)

	records, err := src.GetAllRecords()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "wrong version", input: "version: 9\n", want: "unsupported export version 9"},
		{name: "unknown field", input: "version: 1\nbogus: true\n", want: "decoding import"},
		{name: "not yaml", input: "version: [\n", want: "decoding import"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestImportRejectsInvalidTrackers(t *testing.T) {
	tests := []struct {
		name    string
		tracker TrackerDoc
		want    string
	}{
		{
			name:    "unknown weekday",
			tracker: TrackerDoc{Name: "Read", Emoji: "📚", Schedule: []string{"Someday"}},
			want:    "unknown weekday",
		},
		{
			name:    "bad day",
			tracker: TrackerDoc{Name: "Read", Emoji: "📚", Schedule: []string{"Mon"}, Done: []string{"10.01.2024"}},
			want:    "invalid day",
		},
		{
			name:    "habit without emoji",
			tracker: TrackerDoc{Name: "Read", Schedule: []string{"Mon"}},
			want:    "Read",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newStore(t)
			doc := Document{
				Version:    FormatVersion,
				Categories: []CategoryDoc{{Title: "Books", Trackers: []TrackerDoc{tt.tracker}}},
			}
			_, err := Import(dst, doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
