package views

import (
	"time"

	"golang.org/x/text/language"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate reads the date formats the content pipeline emits.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders date as a long-form display date for locale.
// US English gets "January 2, 2006", everything else "2 January 2006".
// Dates that do not parse are returned unchanged.
func FormatDate(date, locale string) string {
	t, ok := ParseDate(date)
	if !ok {
		return date
	}
	if monthFirst(locale) {
		return t.Format("January 2, 2006")
	}
	return t.Format("2 January 2006")
}

func monthFirst(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return true
	}
	base, _ := tag.Base()
	if base.String() != "en" {
		return false
	}
	// A bare "en" resolves to the US region.
	region, _ := tag.Region()
	return region.String() == "US"
}
