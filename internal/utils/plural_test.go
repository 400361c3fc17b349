package utils

import (
	"testing"

	"github.com/julianstephens/tracker/internal/models"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want PluralForm
	}{
		{0, PluralMany},
		{1, PluralOne},
		{2, PluralFew},
		{3, PluralFew},
		{4, PluralFew},
		{5, PluralMany},
		{11, PluralMany},
		{12, PluralMany},
		{13, PluralMany},
		{14, PluralMany},
		{21, PluralOne},
		{22, PluralFew},
		{101, PluralOne},
		{111, PluralMany},
		{112, PluralMany},
		{122, PluralFew},
	}

	for _, tt := range tests {
		if got := Plural(tt.n); got != tt.want {
			t.Errorf("Plural(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPluralizeDays(t *testing.T) {
	tests := map[int]string{
		1:  "1 день",
		3:  "3 дня",
		5:  "5 дней",
		11: "11 дней",
		21: "21 день",
	}
	for n, want := range tests {
		if got := PluralizeDays(n); got != want {
			t.Errorf("PluralizeDays(%d) = %q, want %q", n, got, want)
		}
	}

	if got := PluralizeDaysEN(1); got != "1 day" {
		t.Errorf("PluralizeDaysEN(1) = %q", got)
	}
	if got := PluralizeDaysEN(0); got != "0 days" {
		t.Errorf("PluralizeDaysEN(0) = %q", got)
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		lang models.Language
		n    int
		want string
	}{
		{models.LanguageRU, 1, "1 день"},
		{models.LanguageRU, 3, "3 дня"},
		{models.LanguageRU, 5, "5 дней"},
		{models.LanguageRU, 11, "11 дней"},
		{models.LanguageRU, 21, "21 день"},
		{models.LanguageEN, 1, "1 day"},
		{models.LanguageEN, 21, "21 days"},
		{"", 3, "3 дня"},
	}
	for _, tt := range tests {
		if got := FormatDays(tt.lang, tt.n); got != tt.want {
			t.Errorf("FormatDays(%q, %d) = %q, want %q", tt.lang, tt.n, got, tt.want)
		}
	}
}
