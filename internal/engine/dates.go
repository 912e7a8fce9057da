package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/medconnect/internal/config"
)

// DateOnly strips the time of day, keeping t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(config.DateFormatISO)
}

// ParseDate reads a YYYY-MM-DD string as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(config.DateFormatISO, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", config.ErrDateParse, value, err)
	}
	return t, nil
}

// ParseSlot reads an HH:MM slot and returns its offset from midnight.
func ParseSlot(value string) (time.Duration, error) {
	t, err := time.Parse(config.TimeFormatHM, value)
	if err != nil {
		return 0, fmt.Errorf("invalid slot %q: %w", value, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// SlotStart combines a YYYY-MM-DD date and an HH:MM slot into a time in loc.
func SlotStart(date, slot string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	offset, err := ParseSlot(slot)
	if err != nil {
		return time.Time{}, err
	}
	// Built from components so DST transitions don't shift the wall clock.
	return time.Date(day.Year(), day.Month(), day.Day(),
		int(offset/time.Hour), int((offset%time.Hour)/time.Minute), 0, 0, loc), nil
}

// DateSet is a set of calendar dates keyed by their YYYY-MM-DD form.
type DateSet map[string]struct{}

// NewDateSet builds a set from the given dates, ignoring their time of day.
func NewDateSet(dates ...time.Time) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts the calendar date of t.
func (s DateSet) Add(t time.Time) {
	s[FormatDate(t)] = struct{}{}
}

// Has reports whether the calendar date of t is in the set. A nil set is empty.
func (s DateSet) Has(t time.Time) bool {
	_, ok := s[FormatDate(t)]
	return ok
}

// WeekdaysWithin lists every date in [from, from+days) falling on one of the
// given weekdays.
func WeekdaysWithin(from time.Time, days int, weekdays ...time.Weekday) []time.Time {
	if len(weekdays) == 0 {
		return nil
	}
	start := DateOnly(from)
	var out []time.Time
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		for _, wd := range weekdays {
			if d.Weekday() == wd {
				out = append(out, d)
				break
			}
		}
	}
	return out
}
