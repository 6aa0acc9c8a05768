// Package weekday resolves recurrence day tokens to weekdays.
package weekday

import (
	"strings"
	"time"
)

// tokens maps normalized lowercase day names and abbreviations (English and
// German) to a weekday. New locales are additive rows in this table, not new
// control flow.
var tokens = map[string]time.Weekday{
	"mo": time.Monday, "mon": time.Monday, "monday": time.Monday, "montag": time.Monday,
	"di": time.Tuesday, "tue": time.Tuesday, "tuesday": time.Tuesday, "dienstag": time.Tuesday,
	"mi": time.Wednesday, "wed": time.Wednesday, "wednesday": time.Wednesday, "mittwoch": time.Wednesday,
	"do": time.Thursday, "thu": time.Thursday, "thursday": time.Thursday, "donnerstag": time.Thursday,
	"fr": time.Friday, "fri": time.Friday, "friday": time.Friday, "freitag": time.Friday,
	"sa": time.Saturday, "sat": time.Saturday, "saturday": time.Saturday, "samstag": time.Saturday,
	"so": time.Sunday, "sun": time.Sunday, "sunday": time.Sunday, "sonntag": time.Sunday,
}

// Parse resolves a day token, case-insensitively and ignoring surrounding
// whitespace.
func Parse(token string) (time.Weekday, bool) {
	d, ok := tokens[strings.ToLower(strings.TrimSpace(token))]
	return d, ok
}

// ScheduledOn reports whether a recurrence set includes day. An empty set
// means every day. Unknown tokens are ignored.
func ScheduledOn(days []string, day time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, t := range days {
		if d, ok := Parse(t); ok && d == day {
			return true
		}
	}
	return false
}
