// Package schedule interprets the free-text availability a volunteer
// declares on an offer ("Segunda e Quarta", "ter/qui"). The backend never
// validates a requested date against these days, so the parsed result is
// used for suggestions only, never for rejection.
package schedule

import (
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// dayTokens maps normalized Portuguese day-name prefixes to weekdays.
// Abbreviations ("seg", "ter") and long forms ("segunda-feira") share the
// same prefix.
var dayTokens = []struct {
	prefix string
	day    rrule.Weekday
}{
	{"dom", rrule.SU},
	{"seg", rrule.MO},
	{"ter", rrule.TU},
	{"qua", rrule.WE},
	{"qui", rrule.TH},
	{"sex", rrule.FR},
	{"sab", rrule.SA},
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "ã", "a", "â", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "õ", "o", "ô", "o",
	"ú", "u",
	"ç", "c",
)

// ParseDays extracts the weekdays named in free text, in week order
// starting from Sunday, without duplicates. Unrecognized text yields nil.
func ParseDays(text string) []rrule.Weekday {
	normalized := accentReplacer.Replace(strings.ToLower(text))
	words := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '-' || r == ';'
	})

	seen := make(map[rrule.Weekday]bool)
	var days []rrule.Weekday
	for _, tok := range dayTokens {
		for _, word := range words {
			if strings.HasPrefix(word, tok.prefix) && !seen[tok.day] {
				seen[tok.day] = true
				days = append(days, tok.day)
				break
			}
		}
	}

	return days
}

// NextDates proposes the next n calendar dates, on or after from, that
// fall on one of the days named in text. Returns nil when no day can be
// parsed, which callers treat as "no suggestion available".
func NextDates(text string, from time.Time, n int) []time.Time {
	days := ParseDays(text)
	if len(days) == 0 || n <= 0 {
		return nil
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
		Dtstart:   start,
		Count:     n,
	})
	if err != nil {
		return nil
	}

	return r.All()
}

// Window is an offer's daily time window in HH:MM form.
type Window struct {
	Start string
	End   string
}

// Ordered reports whether the window's start precedes its end.
// Lexicographic comparison is correct for zero-padded HH:MM values. The
// backend does not enforce this, so callers warn rather than reject.
func (w Window) Ordered() bool {
	return w.Start < w.End
}
