package engine

import (
	"slices"
	"time"

	"github.com/tartampluch/medconnect/internal/config"
)

// DatePolicy decides which calendar dates can be booked. All comparisons
// are on the calendar date only, so a MinDate carrying a time of day still
// allows that day itself.
type DatePolicy struct {
	MinDate  time.Time
	MaxDate  *time.Time
	Disabled DateSet

	// ExcludedWeekdays are never bookable. Nil means config.ExcludedWeekdays.
	ExcludedWeekdays []time.Weekday
}

// IsDisabled reports whether date violates any rule of the policy.
func (p DatePolicy) IsDisabled(date time.Time) bool {
	day := FormatDate(date)
	if !p.MinDate.IsZero() && day < FormatDate(p.MinDate) {
		return true
	}
	if p.MaxDate != nil && day > FormatDate(*p.MaxDate) {
		return true
	}
	if p.Disabled.Has(date) {
		return true
	}
	excluded := p.ExcludedWeekdays
	if excluded == nil {
		excluded = config.ExcludedWeekdays
	}
	return slices.Contains(excluded, date.Weekday())
}

// IsDisabled applies the default policy: before minDate, after maxDate (when
// set), listed in disabled, or on an excluded weekday (Sunday).
func IsDisabled(date, minDate time.Time, maxDate *time.Time, disabled DateSet) bool {
	return DatePolicy{MinDate: minDate, MaxDate: maxDate, Disabled: disabled}.IsDisabled(date)
}

// BookingPolicy is what a new appointment must satisfy: a date from today
// up to the booking horizon, never on an excluded or closed weekday.
func BookingPolicy(now time.Time) DatePolicy {
	limit := DateOnly(now).AddDate(0, 0, config.DisabledHorizonDays)
	return DatePolicy{
		MinDate:          now,
		MaxDate:          &limit,
		ExcludedWeekdays: slices.Concat(config.ExcludedWeekdays, config.ClosedWeekdays),
	}
}
