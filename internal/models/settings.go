package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tracker/internal/constants"
)

// Filter selects which trackers of the chosen day are listed.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterToday        Filter = "today"
	FilterCompleted    Filter = "completed"
	FilterNotCompleted Filter = "not-completed"
)

// Filters lists the filters in menu order.
var Filters = []Filter{FilterAll, FilterToday, FilterCompleted, FilterNotCompleted}

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (expected one of all, today, completed, not-completed)", s)
}

// Next returns the filter following f in menu order.
func (f Filter) Next() Filter {
	for i, cur := range Filters {
		if cur == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Language selects the plural rules used for day counts.
type Language string

const (
	LanguageRU Language = "ru"
	LanguageEN Language = "en"
)

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageRU, LanguageEN:
		return Language(s), nil
	}
	return "", fmt.Errorf("unknown language %q (expected ru or en)", s)
}

// Settings holds user preferences persisted in the store.
type Settings struct {
	Onboarded      bool     `json:"onboarded"`       // whether the onboarding screen has been dismissed
	SelectedFilter Filter   `json:"selected_filter"` // the last filter chosen in the day view
	Timezone       string   `json:"timezone"`        // IANA timezone name or "Local"
	Language       Language `json:"language"`        // plural rules for completion counts
}

// DefaultSettings returns the settings written on init.
func DefaultSettings() Settings {
	return Settings{
		Onboarded:      constants.DefaultOnboarded,
		SelectedFilter: constants.DefaultSelectedFilter,
		Timezone:       constants.DefaultTimezone,
		Language:       constants.DefaultLanguage,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingOnboarded:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.Onboarded = b
		case constants.SettingSelectedFilter:
			f, err := ParseFilter(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.SelectedFilter = f
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingLanguage:
			lang, err := ParseLanguage(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.Language = lang
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	ApplyDefaultSettings(&settings)
	return map[string]string{
		constants.SettingOnboarded:      strconv.FormatBool(settings.Onboarded),
		constants.SettingSelectedFilter: string(settings.SelectedFilter),
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingLanguage:       string(settings.Language),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.SelectedFilter == "" {
		settings.SelectedFilter = constants.DefaultSelectedFilter
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Language == "" {
		settings.Language = constants.DefaultLanguage
	}
}
