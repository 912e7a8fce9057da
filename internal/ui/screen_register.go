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

type registerScreen struct {
	name     *widget.Entry
	email    *widget.Entry
	password *widget.Entry
	confirm  *widget.Entry
	phone    *DigitEntry
	cpf      *DigitEntry

	msgs map[string]fieldMessage

	submit *widget.Button
	back   *widget.Button
}

// ShowRegister displays the patient sign-up screen.
func (app *MedConnectApp) ShowRegister() {
	v := &registerScreen{
		name:     widget.NewEntry(),
		email:    widget.NewEntry(),
		password: widget.NewPasswordEntry(),
		confirm:  widget.NewPasswordEntry(),
		phone:    NewDigitEntry(config.PhoneMaxDigits),
		cpf:      NewDigitEntry(config.CPFDigits),
		msgs:     make(map[string]fieldMessage),
	}
	for _, f := range []string{
		validation.FieldName, validation.FieldEmail, validation.FieldPassword,
		validation.FieldConfirmPassword, validation.FieldPhone, validation.FieldCPF,
	} {
		v.msgs[f] = newFieldMessage()
	}

	clearOn := func(f string) func(string) { return func(string) { v.msgs[f].clear() } }
	v.name.OnChanged = clearOn(validation.FieldName)
	v.email.OnChanged = clearOn(validation.FieldEmail)
	v.confirm.OnChanged = clearOn(validation.FieldConfirmPassword)
	v.phone.OnChanged = clearOn(validation.FieldPhone)
	v.cpf.OnChanged = clearOn(validation.FieldCPF)
	// The password line doubles as a strength meter.
	v.password.OnChanged = func(s string) {
		if s == "" {
			v.msgs[validation.FieldPassword].clear()
			return
		}
		r := validation.Password(s)
		v.msgs[validation.FieldPassword].set(app.resultText(r), r.Type)
	}

	v.submit = widget.NewButton(app.GetMsg(config.TKeyBtnRegister), func() { app.submitRegister(v) })
	v.submit.Importance = widget.HighImportance
	v.back = widget.NewButton(app.GetMsg(config.TKeyBtnGoLogin), app.ShowLogin)
	v.back.Importance = widget.LowImportance

	app.registerView = v
	app.show(screenRegister, func() fyne.CanvasObject {
		form := widget.NewForm(
			field(app.GetMsg(config.TKeyLblName), v.name, v.msgs[validation.FieldName]),
			field(app.GetMsg(config.TKeyLblEmail), v.email, v.msgs[validation.FieldEmail]),
			field(app.GetMsg(config.TKeyLblPassword), v.password, v.msgs[validation.FieldPassword]),
			field(app.GetMsg(config.TKeyLblConfirmPassword), v.confirm, v.msgs[validation.FieldConfirmPassword]),
			field(app.GetMsg(config.TKeyLblPhone), v.phone, v.msgs[validation.FieldPhone]),
			field(app.GetMsg(config.TKeyLblCPF), v.cpf, v.msgs[validation.FieldCPF]),
		)
		return container.NewVBox(
			header(app.GetMsg(config.TKeyTitleRegister), config.AppTagline),
			form,
			v.submit,
			v.back,
		)
	})
}

func (app *MedConnectApp) submitRegister(v *registerScreen) {
	res := validation.Registration(validation.RegisterForm{
		Name:            v.name.Text,
		Email:           v.email.Text,
		Password:        v.password.Text,
		ConfirmPassword: v.confirm.Text,
		Phone:           v.phone.Text,
		CPF:             v.cpf.Text,
	})
	for f, msg := range v.msgs {
		if f == validation.FieldPassword {
			if _, failed := res.Failed(f); !failed {
				continue
			}
		}
		app.showFailure(msg, res, f)
	}
	if !res.IsValid {
		app.toastKey(toastError, config.TKeyToastFixForm)
		return
	}

	ctx, cancel := context.WithTimeout(app.Ctx, config.StoreTimeout)
	defer cancel()
	u, err := app.Store.Register(ctx, store.Registration{
		Name:     v.name.Text,
		Email:    v.email.Text,
		Password: v.password.Text,
		Phone:    v.phone.Text,
		CPF:      v.cpf.Text,
	})
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		v.msgs[validation.FieldEmail].set(app.GetMsg(config.TKeyToastEmailTaken), validation.SeverityError)
		app.toastKey(toastError, config.TKeyToastEmailTaken)
		return
	case err != nil:
		slog.Error(config.MsgRegisterFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.toastKey(toastError, config.TKeyToastRegFailed)
		return
	}
	slog.Info(config.MsgRegistered, config.LogKeyUserID, u.ID, config.LogKeyComponent, config.CompUI)

	// Sign in with the fresh credentials, as a returning user would.
	authed, err := app.Store.Authenticate(ctx, v.email.Text, v.password.Text)
	if err != nil {
		slog.Warn(config.MsgLoginFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		app.ShowLogin()
		app.toastKey(toastWarning, config.TKeyToastRegisterAuto)
		return
	}
	app.login(authed)
	app.ShowHome()
	app.toastKey(toastSuccess, config.TKeyToastRegisterOK)
}
