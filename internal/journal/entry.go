package journal

import "time"

// DateFormat is the calendar-date layout used everywhere entries cross a
// boundary (CSV, JSON, filter inputs).
const DateFormat = "2006-01-02"

// DayOrder is the canonical weekday order used for grouping and report axes.
var DayOrder = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// TimeOrder is the canonical time-of-day order used for grouping and report axes.
var TimeOrder = []string{"morning", "afternoon", "evening"}

// Entry is one journal record. Entries are read-only after load; the store
// populates them once per process run and every filter or aggregate
// operation returns a new slice instead of mutating in place.
type Entry struct {
	Date      time.Time
	DayOfWeek string
	TimeOfDay string
	Text      string
}

// Month returns the entry's month label in YYYY-MM form.
func (e Entry) Month() string {
	return e.Date.Format("2006-01")
}

// IsKnownDay reports whether the entry's day-of-week is one of the seven
// canonical weekday names. Entries with unknown days are dropped from
// day-of-week grouping.
func (e Entry) IsKnownDay() bool {
	for _, d := range DayOrder {
		if e.DayOfWeek == d {
			return true
		}
	}
	return false
}
