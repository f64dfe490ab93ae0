package doctor

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for appointment dates.
const DateLayout = "2006-01-02"

// weekdayNames indexes time.Weekday (Sunday = 0) to the lowercase names used
// as availability map keys. An explicit table keeps the lookup independent of
// the runtime locale.
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayName returns the lowercase availability key for a date.
func WeekdayName(t time.Time) string {
	return weekdayNames[int(t.Weekday())]
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// SlotsForDate returns the configured slots for the date's weekday, in stored
// order. A day with no configured slots yields an empty list, not an error.
func (d *Doctor) SlotsForDate(date time.Time) []string {
	slots := d.Availability[WeekdayName(date)]
	if slots == nil {
		return []string{}
	}
	return slots
}

// HasSlot reports whether the given time is one of the configured slots for
// the date's weekday.
func (d *Doctor) HasSlot(date time.Time, slot string) bool {
	for _, s := range d.SlotsForDate(date) {
		if s == slot {
			return true
		}
	}
	return false
}
