package ui

import (
	"image/color"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
)

const dotSize = 6

type dayCell struct {
	btn *widget.Button
	dot *canvas.Circle
}

// calendarView draws the 42-cell month grid and forwards taps on bookable
// days to OnSelect.
type calendarView struct {
	app   *MedConnectApp
	state *engine.Calendar

	Disabled engine.DateSet
	MaxDate  *time.Time
	Marks    map[string]engine.Mark
	OnSelect func(date string)

	title *widget.Label
	prev  *widget.Button
	next  *widget.Button
	cells []dayCell
	days  []engine.CalendarDay
	root  fyne.CanvasObject
}

func (app *MedConnectApp) newCalendarView() *calendarView {
	c := &calendarView{
		app:   app,
		state: engine.NewCalendar(app.Clock.Now()),
		title: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	c.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		c.state.PrevMonth()
		c.Refresh()
	})
	c.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		c.state.NextMonth()
		c.Refresh()
	})

	weekdays := container.NewGridWithColumns(config.DaysPerWeek)
	for i := 0; i < config.DaysPerWeek; i++ {
		d := time.Weekday((int(config.WeekStart) + i) % config.DaysPerWeek)
		l := widget.NewLabelWithStyle(c.app.weekdayName(d), fyne.TextAlignCenter, fyne.TextStyle{})
		l.Importance = widget.LowImportance
		weekdays.Add(l)
	}

	grid := container.NewGridWithColumns(config.DaysPerWeek)
	c.cells = make([]dayCell, config.GridCells)
	for i := range c.cells {
		idx := i
		cell := dayCell{
			btn: widget.NewButton("", func() { c.tap(idx) }),
			dot: canvas.NewCircle(color.Transparent),
		}
		dot := container.NewGridWrap(fyne.NewSize(dotSize, dotSize), cell.dot)
		c.cells[i] = cell
		grid.Add(container.NewBorder(nil, container.NewCenter(dot), nil, nil, cell.btn))
	}

	c.root = container.NewVBox(
		container.NewBorder(nil, nil, c.prev, c.next, c.title),
		weekdays,
		grid,
	)
	c.Refresh()
	return c
}

// Selected is the chosen YYYY-MM-DD date, or empty.
func (c *calendarView) Selected() string { return c.state.Selected }

// ClearSelection forgets the chosen date.
func (c *calendarView) ClearSelection() {
	c.state.Selected = ""
	c.Refresh()
}

// Refresh regenerates the grid from the current state.
func (c *calendarView) Refresh() {
	now := c.app.Clock.Now()
	c.days = engine.GenerateGrid(engine.GridParams{
		Month:         c.state.Month,
		Selected:      c.state.Selected,
		MinDate:       now,
		MaxDate:       c.MaxDate,
		DisabledDates: c.Disabled,
		MarkedDates:   c.Marks,
		Now:           now,
		WeekStart:     config.WeekStart,
	})

	c.title.SetText(c.app.GetMsgData(config.TKeyFormatMonthYear, map[string]interface{}{
		"Month": c.app.monthName(c.state.Month.Month()),
		"Year":  c.state.Month.Year(),
	}))

	for i, d := range c.days {
		cell := c.cells[i]
		cell.btn.SetText(strconv.Itoa(d.DayOfMonth))
		switch {
		case d.IsSelected:
			cell.btn.Importance = widget.HighImportance
		case d.IsToday:
			cell.btn.Importance = widget.WarningImportance
		case !d.IsCurrentMonth:
			cell.btn.Importance = widget.LowImportance
		default:
			cell.btn.Importance = widget.MediumImportance
		}
		if d.IsDisabled || !d.IsCurrentMonth {
			cell.btn.Disable()
		} else {
			cell.btn.Enable()
		}
		cell.btn.Refresh()

		if d.IsMarked {
			cell.dot.FillColor = parseHexColor(d.DotColor)
			cell.dot.Show()
		} else {
			cell.dot.Hide()
		}
		cell.dot.Refresh()
	}
}

func (c *calendarView) tap(i int) {
	if i < 0 || i >= len(c.days) {
		return
	}
	if !c.state.Select(c.days[i]) {
		return
	}
	c.Refresh()
	if c.OnSelect != nil {
		c.OnSelect(c.state.Selected)
	}
}

// parseHexColor reads "#RRGGBB". Anything else falls back to the primary colour.
func parseHexColor(s string) color.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(s) != 7 {
		if s != config.Theme.Primary {
			return parseHexColor(config.Theme.Primary)
		}
		return color.Black
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
