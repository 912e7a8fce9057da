package ui

import (
	"context"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
)

type homeScreen struct {
	items   []engine.Appointment
	rows    *fyne.Container
	empty   *widget.Label
	cancels map[string]*widget.Button

	newAppt  *widget.Button
	refresh  *widget.Button
	profile  *widget.Button
	settings *widget.Button
}

// ShowHome lists the patient's appointments, soonest first.
func (app *MedConnectApp) ShowHome() {
	user, ok := app.CurrentUser()
	if !ok {
		app.ShowLogin()
		return
	}

	v := &homeScreen{
		rows:  container.NewVBox(),
		empty: widget.NewLabel(app.GetMsg(config.TKeyLblNoAppointments)),
	}
	v.empty.Importance = widget.LowImportance
	v.empty.Wrapping = fyne.TextWrapWord

	v.newAppt = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNewAppt), theme.ContentAddIcon(), app.ShowBooking)
	v.newAppt.Importance = widget.HighImportance
	v.refresh = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRefresh), theme.ViewRefreshIcon(), app.reloadHome)
	v.profile = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnProfile), theme.AccountIcon(), app.ShowProfile)
	v.settings = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	app.homeView = v
	app.reloadHome()

	app.show(screenHome, func() fyne.CanvasObject {
		greeting := app.GetMsgData(config.TKeyFormatGreeting, map[string]interface{}{"Name": user.Name})
		return container.NewVBox(
			header(greeting, app.GetMsg(config.TKeyTitleHome)),
			v.newAppt,
			container.NewGridWithColumns(3, v.refresh, v.profile, v.settings),
			widget.NewSeparator(),
			v.empty,
			v.rows,
		)
	})
}

// reloadHome re-reads the appointments from the store and redraws the list.
func (app *MedConnectApp) reloadHome() {
	v := app.homeView
	user, ok := app.CurrentUser()
	if v == nil || !ok {
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	items, err := app.Store.AppointmentsForPatient(ctx, user.ID)
	if err != nil {
		slog.Error(config.MsgLoadFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastLoadFailed)
		return
	}

	v.items = items
	v.cancels = make(map[string]*widget.Button, len(items))
	v.rows.RemoveAll()
	for _, a := range items {
		v.rows.Add(app.appointmentRow(v, a))
	}
	if len(items) == 0 {
		v.empty.Show()
	} else {
		v.empty.Hide()
	}
	v.rows.Refresh()
}

func (app *MedConnectApp) appointmentRow(v *homeScreen, a engine.Appointment) fyne.CanvasObject {
	doctor := widget.NewLabelWithStyle(a.DoctorName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	when := widget.NewLabel(app.GetMsgData(config.TKeyFormatApptWhen, map[string]interface{}{
		"Date":      app.formatDate(a.Date),
		"Time":      a.Time,
		"Specialty": a.Specialty,
	}))
	status := widget.NewLabel(app.statusLabel(a.Status))
	switch a.Status {
	case engine.StatusConfirmed:
		status.Importance = widget.SuccessImportance
	case engine.StatusCancelled:
		status.Importance = widget.LowImportance
	default:
		status.Importance = widget.WarningImportance
	}

	details := container.NewVBox(doctor, when, status)
	if a.Notes != "" {
		notes := widget.NewLabel(a.Notes)
		notes.Wrapping = fyne.TextWrapWord
		notes.Importance = widget.LowImportance
		details.Add(notes)
	}

	var action fyne.CanvasObject
	if a.Active() {
		btn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancelAppt), theme.CancelIcon(), func() {
			app.confirmCancel(a)
		})
		btn.Importance = widget.DangerImportance
		v.cancels[a.ID] = btn
		action = container.NewCenter(btn)
	}

	return widget.NewCard("", "", container.NewBorder(nil, nil, nil, action, details))
}

func (app *MedConnectApp) confirmCancel(a engine.Appointment) {
	q := app.GetMsgData(config.TKeyConfirmCancelQ, map[string]interface{}{
		"Doctor": a.DoctorName,
		"Date":   app.formatDate(a.Date),
		"Time":   a.Time,
	})
	dialog.ShowConfirm(app.GetMsg(config.TKeyConfirmCancel), q, func(ok bool) {
		if ok {
			app.cancelAppointment(a.ID)
		}
	}, app.Window)
}

// cancelAppointment cancels one of the session's appointments and refreshes
// the list and the feed.
func (app *MedConnectApp) cancelAppointment(id string) {
	user, ok := app.CurrentUser()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	if _, err := app.Store.CancelAppointment(ctx, id, user.ID); err != nil {
		slog.Error(config.MsgCancelFailed, config.LogKeyApptID, id, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastCancelFailed)
		app.reloadHome()
		return
	}
	slog.Info(config.MsgCancelled, config.LogKeyApptID, id, config.LogKeyUserID, user.ID, config.LogKeyComponent, config.CompUI)

	app.reloadHome()
	app.publishFeed()
	app.toastKey(toastSuccess, config.TKeyToastCancelledOK)
}
