package engine

import (
	"time"

	"github.com/tartampluch/medconnect/internal/config"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date           string // YYYY-MM-DD
	DayOfMonth     int
	IsCurrentMonth bool
	IsToday        bool
	IsSelected     bool
	IsDisabled     bool
	IsMarked       bool
	DotColor       string // empty when unmarked
}

// Mark annotates a date with a coloured dot.
type Mark struct {
	Marked   bool
	DotColor string
}

// GridParams holds the inputs of GenerateGrid.
type GridParams struct {
	// Month is any instant inside the displayed month.
	Month time.Time
	// Selected is the selected YYYY-MM-DD date, or empty.
	Selected string
	// MinDate defaults to Now when zero.
	MinDate       time.Time
	MaxDate       *time.Time
	DisabledDates DateSet
	MarkedDates   map[string]Mark
	Now           time.Time
	// WeekStart is the first column; the zero value is Sunday.
	WeekStart time.Weekday
}

// GenerateGrid lays out the six weeks covering p.Month, starting on the last
// WeekStart on or before the first of the month.
func GenerateGrid(p GridParams) []CalendarDay {
	loc := p.Month.Location()
	first := time.Date(p.Month.Year(), p.Month.Month(), 1, 0, 0, 0, 0, loc)
	lead := (int(first.Weekday()) - int(p.WeekStart) + config.DaysPerWeek) % config.DaysPerWeek

	minDate := p.MinDate
	if minDate.IsZero() {
		minDate = p.Now
	}
	policy := DatePolicy{MinDate: minDate, MaxDate: p.MaxDate, Disabled: p.DisabledDates}
	today := FormatDate(p.Now)

	days := make([]CalendarDay, 0, config.GridCells)
	for i := 0; i < config.GridCells; i++ {
		d := time.Date(first.Year(), first.Month(), first.Day()-lead+i, 0, 0, 0, 0, loc)
		key := FormatDate(d)
		day := CalendarDay{
			Date:           key,
			DayOfMonth:     d.Day(),
			IsCurrentMonth: d.Month() == first.Month(),
			IsToday:        key == today,
			IsSelected:     p.Selected != "" && key == p.Selected,
			IsDisabled:     policy.IsDisabled(d),
		}
		if mark, ok := p.MarkedDates[key]; ok && mark.Marked {
			day.IsMarked = true
			day.DotColor = mark.DotColor
			if day.DotColor == "" {
				day.DotColor = config.Theme.Primary
			}
		}
		days = append(days, day)
	}
	return days
}

// Calendar is the navigation state of a month view.
type Calendar struct {
	// Month is always the first day of the displayed month.
	Month    time.Time
	Selected string
}

// NewCalendar opens on the month containing now with nothing selected.
func NewCalendar(now time.Time) *Calendar {
	return &Calendar{Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())}
}

// NextMonth advances one month. The selection is kept.
func (c *Calendar) NextMonth() { c.Month = c.Month.AddDate(0, 1, 0) }

// PrevMonth goes back one month. The selection is kept.
func (c *Calendar) PrevMonth() { c.Month = c.Month.AddDate(0, -1, 0) }

// Select makes day the selection unless it is disabled or belongs to an
// adjacent month. It reports whether the selection changed hands to day.
func (c *Calendar) Select(day CalendarDay) bool {
	if day.IsDisabled || !day.IsCurrentMonth {
		return false
	}
	c.Selected = day.Date
	return true
}

// MarkAppointments builds the dot map for one doctor: confirmed bookings in
// the success colour, other active bookings in the warning colour.
func MarkAppointments(appts []Appointment, doctorID string) map[string]Mark {
	marks := make(map[string]Mark)
	for _, a := range appts {
		if a.DoctorID != doctorID || !a.Active() {
			continue
		}
		colour := config.Theme.Warning
		if a.Status == StatusConfirmed {
			colour = config.Theme.Success
		}
		// A confirmed booking wins over a pending one on the same day.
		if prev, ok := marks[a.Date]; ok && prev.DotColor == config.Theme.Success {
			continue
		}
		marks[a.Date] = Mark{Marked: true, DotColor: colour}
	}
	return marks
}
