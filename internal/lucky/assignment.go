package lucky

import (
	"fmt"
	"time"
)

// Day is a calendar date with no time component.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf truncates t to its calendar day in loc. A nil loc means UTC.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns the day n calendar days after d.
func (d Day) AddDays(n int) Day {
	return DayOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC), time.UTC)
}

// Assignment is one user's lucky draw for one day. Once stored it never
// changes for that day.
type Assignment struct {
	UserID    string
	Day       Day
	SpeciesID int
	Shiny     bool
	CreatedAt time.Time
}

type key struct {
	userID string
	day    Day
}

func (a Assignment) key() key { return key{userID: a.UserID, day: a.Day} }
