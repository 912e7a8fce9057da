package ui

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/store"
	"github.com/tartampluch/medconnect/internal/validation"
)

type loginScreen struct {
	email       *widget.Entry
	password    *widget.Entry
	emailMsg    fieldMessage
	passwordMsg fieldMessage
	submit      *widget.Button
	register    *widget.Button
}

// ShowLogin displays the sign-in screen with the demo account hints.
func (app *MedConnectApp) ShowLogin() {
	v := &loginScreen{
		email:       widget.NewEntry(),
		password:    widget.NewPasswordEntry(),
		emailMsg:    newFieldMessage(),
		passwordMsg: newFieldMessage(),
	}
	v.email.PlaceHolder = "email@example.com"
	v.email.OnChanged = func(string) { v.emailMsg.clear() }
	v.password.OnChanged = func(string) { v.passwordMsg.clear() }
	v.password.OnSubmitted = func(string) { app.submitLogin(v) }

	v.submit = widget.NewButton(app.GetMsg(config.TKeyBtnLogin), func() { app.submitLogin(v) })
	v.submit.Importance = widget.HighImportance
	v.register = widget.NewButton(app.GetMsg(config.TKeyBtnGoRegister), app.ShowRegister)
	v.register.Importance = widget.LowImportance

	app.loginView = v
	app.show(screenLogin, func() fyne.CanvasObject {
		form := widget.NewForm(
			field(app.GetMsg(config.TKeyLblEmail), v.email, v.emailMsg),
			field(app.GetMsg(config.TKeyLblPassword), v.password, v.passwordMsg),
		)
		return container.NewVBox(
			header(config.AppName, config.AppTagline),
			widget.NewCard(app.GetMsg(config.TKeyTitleLogin), "", form),
			v.submit,
			v.register,
			app.demoAccountsCard(),
		)
	})
}

func (app *MedConnectApp) demoAccountsCard() fyne.CanvasObject {
	box := container.NewVBox()
	for _, acc := range store.DemoAccounts {
		l := widget.NewLabel(app.GetMsgData(config.TKeyFormatDemoHint, map[string]interface{}{
			"Email":    acc.User.Email,
			"Password": acc.Password,
			"Role":     app.roleLabel(acc.User.Role),
		}))
		l.Importance = widget.LowImportance
		box.Add(l)
	}
	return widget.NewCard("", app.GetMsg(config.TKeyLblDemoAccounts), box)
}

func (app *MedConnectApp) submitLogin(v *loginScreen) {
	res := validation.Login(v.email.Text, v.password.Text)
	app.showFailure(v.emailMsg, res, validation.FieldEmail)
	app.showFailure(v.passwordMsg, res, validation.FieldPassword)
	if !res.IsValid {
		app.toastKey(toastError, config.TKeyToastFixForm)
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	u, err := app.Store.Authenticate(ctx, v.email.Text, v.password.Text)
	switch {
	case errors.Is(err, store.ErrInvalidCredentials):
		app.toastKey(toastError, config.TKeyToastBadLogin)
		return
	case err != nil:
		slog.Error(config.MsgLoginFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastLoginFailed)
		return
	}

	app.login(u)
	app.ShowHome()
	app.toastKey(toastSuccess, config.TKeyToastLoginOK)
}
