package models

import (
	"testing"

	"github.com/julianstephens/tracker/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{Onboarded: true, SelectedFilter: FilterCompleted, Timezone: "Europe/Moscow", Language: LanguageEN}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsDefaults(t *testing.T) {
	out, err := MapToSettings(map[string]string{})
	if err != nil {
		t.Fatalf("MapToSettings() error: %v", err)
	}
	if out != DefaultSettings() {
		t.Errorf("empty map = %+v, want defaults", out)
	}
}

func TestMapToSettingsInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad bool":     {constants.SettingOnboarded: "maybe"},
		"bad filter":   {constants.SettingSelectedFilter: "pinned"},
		"bad language": {constants.SettingLanguage: "de"},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := MapToSettings(data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFilterNext(t *testing.T) {
	f := FilterAll
	for i := 0; i < len(Filters); i++ {
		f = f.Next()
	}
	if f != FilterAll {
		t.Errorf("cycling through all filters should return to all, got %q", f)
	}
	if Filter("bogus").Next() != FilterAll {
		t.Error("unknown filter should reset to all")
	}
}
