package utils

import (
	"fmt"

	"github.com/julianstephens/tracker/internal/models"
)

// PluralForm is a Russian grammatical number category.
type PluralForm int

const (
	PluralOne PluralForm = iota
	PluralFew
	PluralMany
)

func (f PluralForm) String() string {
	switch f {
	case PluralOne:
		return "one"
	case PluralFew:
		return "few"
	default:
		return "many"
	}
}

// Plural returns the Russian plural category for n:
// n%10 == 1 && n%100 != 11 is one, n%10 in 2..4 outside 12..14 is few,
// everything else is many.
func Plural(n int) PluralForm {
	if n < 0 {
		n = -n
	}
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return PluralOne
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return PluralFew
	default:
		return PluralMany
	}
}

// PluralizeDays renders "N days completed" in Russian, e.g. "1 день", "3 дня", "5 дней".
func PluralizeDays(n int) string {
	forms := [...]string{"день", "дня", "дней"}
	return fmt.Sprintf("%d %s", n, forms[Plural(n)])
}

// PluralizeDaysEN renders the English form, e.g. "1 day", "5 days".
func PluralizeDaysEN(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// FormatDays renders a day count with the plural rules of lang. Unknown
// languages fall back to Russian.
func FormatDays(lang models.Language, n int) string {
	if lang == models.LanguageEN {
		return PluralizeDaysEN(n)
	}
	return PluralizeDays(n)
}
