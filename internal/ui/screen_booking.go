package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/tartampluch/medconnect/internal/validation"
)

type bookingScreen struct {
	doctors      []engine.Doctor
	booked       []engine.Appointment
	doctorSelect *widget.Select
	calendar     *calendarView
	slots        *fyne.Container
	slotButtons  map[string]*widget.Button
	noSlots      *widget.Label
	notes        *widget.Entry

	doctorMsg fieldMessage
	dateMsg   fieldMessage
	timeMsg   fieldMessage

	submit *widget.Button
	back   *widget.Button

	doctor *engine.Doctor
	slot   string
}

// ShowBooking opens the appointment form. Changing the doctor clears the
// date and time; changing the date clears the time.
func (app *MedConnectApp) ShowBooking() {
	if _, ok := app.CurrentUser(); !ok {
		app.ShowLogin()
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	doctors, err := app.Store.Doctors(ctx)
	var booked []engine.Appointment
	if err == nil {
		booked, err = app.Store.Appointments(ctx)
	}
	if err != nil {
		slog.Error(config.MsgLoadFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastLoadFailed)
		return
	}

	v := &bookingScreen{doctors: doctors, booked: booked}
	app.bookingView = v
	v.doctorMsg = newFieldMessage()
	v.dateMsg = newFieldMessage()
	v.timeMsg = newFieldMessage()
	v.slots = container.NewGridWithColumns(config.LayoutSlotColumns)
	v.noSlots = widget.NewLabel(app.GetMsg(config.TKeyLblNoSlots))
	v.noSlots.Importance = widget.LowImportance
	v.noSlots.Hide()
	v.notes = widget.NewMultiLineEntry()
	v.notes.Wrapping = fyne.TextWrapWord

	options := make([]string, len(v.doctors))
	for i, d := range v.doctors {
		options[i] = app.doctorOption(d)
	}
	v.doctorSelect = widget.NewSelect(options, nil)
	v.doctorSelect.OnChanged = func(string) { app.selectDoctor(v.doctorSelect.SelectedIndex()) }

	now := app.Clock.Now()
	horizon := bookingDeadline(now)
	v.calendar = app.newCalendarView()
	v.calendar.Disabled = engine.NewDateSet(engine.WeekdaysWithin(now, config.DisabledHorizonDays, config.ClosedWeekdays...)...)
	v.calendar.MaxDate = &horizon
	v.calendar.OnSelect = app.selectDate
	v.calendar.Refresh()

	v.submit = widget.NewButton(app.GetMsg(config.TKeyBtnBook), app.submitBooking)
	v.submit.Importance = widget.HighImportance
	v.back = widget.NewButton(app.GetMsg(config.TKeyBtnBack), app.ShowHome)
	v.back.Importance = widget.LowImportance

	app.renderSlots()
	app.show(screenBooking, func() fyne.CanvasObject {
		return container.NewVBox(
			header(app.GetMsg(config.TKeyTitleNewAppt), app.GetMsg(config.TKeySubtitleNewApp)),
			widget.NewCard(app.GetMsg(config.TKeyLblDoctor), "", container.NewVBox(v.doctorSelect, v.doctorMsg.Label)),
			widget.NewCard(app.GetMsg(config.TKeyLblDate), "", container.NewVBox(v.calendar.root, v.dateMsg.Label)),
			widget.NewCard(app.GetMsg(config.TKeyLblTime), "", container.NewVBox(v.slots, v.noSlots, v.timeMsg.Label)),
			widget.NewCard(app.GetMsg(config.TKeyLblNotes), "", v.notes),
			container.NewGridWithColumns(config.LayoutColumnsDouble, v.back, v.submit),
		)
	})
}

func (app *MedConnectApp) doctorOption(d engine.Doctor) string {
	return app.GetMsgData(config.TKeyFormatDoctorOpt, map[string]interface{}{
		"Name":      d.Name,
		"Specialty": d.Specialty,
	})
}

func (app *MedConnectApp) selectDoctor(i int) {
	v := app.bookingView
	if v == nil || i < 0 || i >= len(v.doctors) {
		return
	}
	d := v.doctors[i]
	v.doctor = &d
	v.slot = ""
	v.doctorMsg.clear()

	if drift := engine.CatalogDrift(engine.DefaultSlotCatalog, d); len(drift) > 0 {
		slog.Warn(config.MsgCatalogDrift,
			config.LogKeyDoctorID, d.ID,
			config.LogKeySlots, drift,
			config.LogKeyComponent, config.CompUI)
	}

	v.calendar.Marks = engine.MarkAppointments(v.booked, d.ID)
	v.calendar.ClearSelection()
	app.renderSlots()
}

func (app *MedConnectApp) selectDate(string) {
	v := app.bookingView
	if v == nil {
		return
	}
	v.slot = ""
	v.dateMsg.clear()
	app.renderSlots()
}

func (app *MedConnectApp) selectSlot(slot string) {
	v := app.bookingView
	if v == nil {
		return
	}
	v.slot = slot
	v.timeMsg.clear()
	for s, btn := range v.slotButtons {
		if s == slot {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// availableSlots lists the free slots of the chosen doctor and date.
// Past slots are dropped when the date is today.
func (app *MedConnectApp) availableSlots() []string {
	v := app.bookingView
	date := v.calendar.Selected()
	if v.doctor == nil || date == "" {
		return nil
	}
	free := engine.AvailableSlots(engine.DefaultSlotCatalog, v.doctor.ID, date, v.booked)
	return engine.DropPastSlots(free, date, app.Clock.Now())
}

func (app *MedConnectApp) renderSlots() {
	v := app.bookingView
	v.slots.RemoveAll()
	v.slotButtons = make(map[string]*widget.Button)

	if v.doctor == nil || v.calendar.Selected() == "" {
		v.noSlots.Hide()
		v.slots.Refresh()
		return
	}

	free := app.availableSlots()
	for _, s := range free {
		slot := s
		btn := widget.NewButton(slot, func() { app.selectSlot(slot) })
		v.slotButtons[slot] = btn
		v.slots.Add(btn)
	}
	if len(free) == 0 {
		v.noSlots.Show()
	} else {
		v.noSlots.Hide()
	}
	v.slots.Refresh()
}

func (app *MedConnectApp) submitBooking() {
	v := app.bookingView
	user, ok := app.CurrentUser()
	if v == nil || !ok {
		return
	}

	date := v.calendar.Selected()
	valid := true
	if v.doctor == nil {
		v.doctorMsg.set(app.GetMsg(config.TKeyErrSelectDoctor), validation.SeverityError)
		valid = false
	}
	if date == "" {
		v.dateMsg.set(app.GetMsg(config.TKeyErrSelectDate), validation.SeverityError)
		valid = false
	}
	if v.slot == "" {
		v.timeMsg.set(app.GetMsg(config.TKeyErrSelectTime), validation.SeverityError)
		valid = false
	}
	if !valid {
		app.toastKey(toastError, config.TKeyToastFixForm)
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	appt, err := app.Store.CreateAppointment(ctx, store.Booking{
		Patient: user,
		Doctor:  *v.doctor,
		Date:    date,
		Time:    v.slot,
		Notes:   v.notes.Text,
	})
	switch {
	case errors.Is(err, store.ErrSlotTaken):
		app.toastKey(toastWarning, config.TKeyToastSlotTaken)
		app.reloadBooked(ctx)
		return
	case errors.Is(err, store.ErrDateUnavailable):
		v.dateMsg.set(app.GetMsg(config.TKeyErrSelectDate), validation.SeverityError)
		app.toastKey(toastWarning, config.TKeyToastDateClosed)
		return
	case err != nil:
		slog.Error(config.MsgBookFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastBookFailed)
		return
	}

	slog.Info(config.MsgBooked,
		config.LogKeyApptID, appt.ID,
		config.LogKeyDoctorID, appt.DoctorID,
		config.LogKeyDate, appt.Date,
		config.LogKeyTime, appt.Time,
		config.LogKeyComponent, config.CompUI)

	app.publishFeed()
	app.ShowHome()
	app.toastKey(toastSuccess, config.TKeyToastBookedOK)
}

// reloadBooked refreshes the taken slots after another booking won the race.
func (app *MedConnectApp) reloadBooked(ctx context.Context) {
	v := app.bookingView
	booked, err := app.Store.Appointments(ctx)
	if err != nil {
		slog.Error(config.MsgLoadFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	v.booked = booked
	v.slot = ""
	if v.doctor != nil {
		v.calendar.Marks = engine.MarkAppointments(booked, v.doctor.ID)
		v.calendar.Refresh()
	}
	app.renderSlots()
}

// bookingDeadline is the last bookable day.
func bookingDeadline(now time.Time) time.Time {
	return *engine.BookingPolicy(now).MaxDate
}
