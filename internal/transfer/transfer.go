// Package transfer exports the whole dataset to YAML and imports it back.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// FormatVersion is bumped when the document layout changes incompatibly.
const FormatVersion = 1

type Document struct {
	Version    int           `yaml:"version"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Settings   SettingsDoc   `yaml:"settings"`
	Categories []CategoryDoc `yaml:"categories"`
}

type SettingsDoc struct {
	Onboarded      bool   `yaml:"onboarded"`
	SelectedFilter string `yaml:"selected_filter"`
	Timezone       string `yaml:"timezone"`
	Language       string `yaml:"language,omitempty"`
}

type CategoryDoc struct {
	Title    string       `yaml:"title"`
	Trackers []TrackerDoc `yaml:"trackers,omitempty"`
}

type TrackerDoc struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Color    string   `yaml:"color,omitempty"`
	Emoji    string   `yaml:"emoji,omitempty"`
	Schedule []string `yaml:"schedule,flow"`
	Deleted  bool     `yaml:"deleted,omitempty"`
	Done     []string `yaml:"done,omitempty"`
}

// Summary counts what an import created or skipped.
type Summary struct {
	Categories      int
	Trackers        int
	Records         int
	SkippedTrackers []string
}

// Export snapshots settings, every category and every tracker (including
// soft-deleted ones) with its completion days.
func Export(p storage.Provider, now time.Time) (Document, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return Document{}, err
	}
	categories, err := p.GetAllCategories()
	if err != nil {
		return Document{}, err
	}
	trackers, err := p.GetAllTrackersIncludingDeleted()
	if err != nil {
		return Document{}, err
	}
	records, err := p.GetAllRecords()
	if err != nil {
		return Document{}, err
	}

	days := make(map[string][]string)
	for _, r := range records {
		days[r.TrackerID] = append(days[r.TrackerID], r.Day)
	}

	byCategory := make(map[string][]TrackerDoc)
	for _, t := range trackers {
		byCategory[t.CategoryTitle] = append(byCategory[t.CategoryTitle], TrackerDoc{
			ID:       t.ID,
			Name:     t.Name,
			Kind:     string(t.Kind),
			Color:    t.Color,
			Emoji:    t.Emoji,
			Schedule: scheduleNames(t.Schedule),
			Deleted:  t.IsDeleted(),
			Done:     days[t.ID],
		})
	}

	doc := Document{
		Version:    FormatVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		Settings: SettingsDoc{
			Onboarded:      settings.Onboarded,
			SelectedFilter: string(settings.SelectedFilter),
			Timezone:       settings.Timezone,
			Language:       string(settings.Language),
		},
	}
	for _, c := range categories {
		docs := byCategory[c.Title]
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
		doc.Categories = append(doc.Categories, CategoryDoc{Title: c.Title, Trackers: docs})
	}
	return doc, nil
}

func Write(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return enc.Close()
}

func Read(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding import: %w", err)
	}
	if doc.Version != FormatVersion {
		return Document{}, fmt.Errorf("unsupported export version %d (expected %d)", doc.Version, FormatVersion)
	}
	return doc, nil
}

// Import merges doc into p. Existing categories are reused, trackers whose
// id or live name already exists are skipped, and completion marks are
// insert-or-ignore. Settings are replaced.
func Import(p storage.Provider, doc Document) (Summary, error) {
	var summary Summary

	settings := models.Settings{
		Onboarded: doc.Settings.Onboarded,
		Timezone:  doc.Settings.Timezone,
	}
	if doc.Settings.SelectedFilter != "" {
		filter, err := models.ParseFilter(doc.Settings.SelectedFilter)
		if err != nil {
			return summary, err
		}
		settings.SelectedFilter = filter
	}
	if doc.Settings.Language != "" {
		lang, err := models.ParseLanguage(doc.Settings.Language)
		if err != nil {
			return summary, err
		}
		settings.Language = lang
	}
	models.ApplyDefaultSettings(&settings)
	if err := p.SaveSettings(settings); err != nil {
		return summary, err
	}

	for _, c := range doc.Categories {
		if err := p.AddCategory(c.Title); err == nil {
			summary.Categories++
		} else if !errors.Is(err, storage.ErrDuplicateValue) {
			return summary, err
		}
	}

	// Deleted trackers go first: each is added live, given its records and
	// deleted again before a live tracker can claim the same name.
	for _, deleted := range []bool{true, false} {
		for _, c := range doc.Categories {
			for _, td := range c.Trackers {
				if td.Deleted != deleted {
					continue
				}
				if err := importTracker(p, c.Title, td, &summary); err != nil {
					return summary, err
				}
			}
		}
	}

	logger.Info("Import finished", "categories", summary.Categories, "trackers", summary.Trackers,
		"records", summary.Records, "skipped", len(summary.SkippedTrackers))
	return summary, nil
}

func importTracker(p storage.Provider, category string, td TrackerDoc, summary *Summary) error {
	t, err := td.toModel(category)
	if err != nil {
		return err
	}

	if _, err := p.GetTracker(t.ID); err == nil {
		summary.SkippedTrackers = append(summary.SkippedTrackers, t.Name)
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	if err := p.AddTracker(t); err != nil {
		if errors.Is(err, storage.ErrDuplicateValue) {
			summary.SkippedTrackers = append(summary.SkippedTrackers, t.Name)
			return nil
		}
		return err
	}
	summary.Trackers++

	for _, day := range td.Done {
		if err := p.AddRecord(models.TrackerRecord{TrackerID: t.ID, Day: day}); err != nil {
			return err
		}
		summary.Records++
	}

	if td.Deleted {
		return p.DeleteTracker(t.ID)
	}
	return nil
}

func (td TrackerDoc) toModel(category string) (models.Tracker, error) {
	var schedule models.Schedule
	for _, name := range td.Schedule {
		wd, ok := models.LookupWeekday(name)
		if !ok {
			return models.Tracker{}, fmt.Errorf("tracker %q: unknown weekday %q", td.Name, name)
		}
		schedule = schedule.Add(wd)
	}

	id := td.ID
	if id == "" {
		id = uuid.NewString()
	}
	t := models.Tracker{
		ID:            id,
		Name:          td.Name,
		Color:         td.Color,
		Emoji:         td.Emoji,
		Schedule:      schedule,
		Kind:          models.TrackerKind(td.Kind),
		CategoryTitle: category,
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return models.Tracker{}, fmt.Errorf("tracker %q: %w", td.Name, err)
	}
	for _, day := range td.Done {
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return models.Tracker{}, fmt.Errorf("tracker %q: invalid day %q", td.Name, day)
		}
	}
	return t, nil
}

func scheduleNames(s models.Schedule) []string {
	names := []string{}
	for _, wd := range s.Weekdays() {
		names = append(names, wd.ShortName())
	}
	return names
}
