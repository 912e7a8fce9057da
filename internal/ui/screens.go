package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
)

const (
	screenLogin    = "login"
	screenRegister = "register"
	screenHome     = "home"
	screenBooking  = "booking"
	screenProfile  = "profile"
)

// show replaces the main window content with the screen returned by build.
// The toast banner stays on top of every screen.
func (app *MedConnectApp) show(name string, build func() fyne.CanvasObject) {
	app.screenName = name

	slog.Debug(config.MsgScreen, config.LogKeyScreen, name, config.LogKeyComponent, config.CompUI)

	if app.Window == nil {
		app.setupWindow()
	}
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(container.NewBorder(app.toast.label, nil, nil, nil,
		container.NewVScroll(container.NewPadded(build()))))
}

// header is the title block at the top of a screen.
func header(title, subtitle string) fyne.CanvasObject {
	t := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	t.SizeName = theme.SizeNameSubHeadingText
	if subtitle == "" {
		return t
	}
	s := widget.NewLabel(subtitle)
	s.Importance = widget.LowImportance
	s.Wrapping = fyne.TextWrapWord
	return container.NewVBox(t, s)
}

// rerenderScreen rebuilds the current screen, e.g. after a language change.
func (app *MedConnectApp) rerenderScreen() {
	switch app.screenName {
	case screenLogin:
		app.ShowLogin()
	case screenRegister:
		app.ShowRegister()
	case screenHome:
		app.ShowHome()
	case screenBooking:
		app.ShowBooking()
	case screenProfile:
		app.ShowProfile()
	}
}
