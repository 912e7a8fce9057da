package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
	"github.com/tartampluch/medconnect/internal/engine"
)

// ShowProfile displays the account details and the calendar feed address.
func (app *MedConnectApp) ShowProfile() {
	user, ok := app.CurrentUser()
	if !ok {
		app.ShowLogin()
		return
	}

	app.show(screenProfile, func() fyne.CanvasObject {
		items := []*widget.FormItem{
			widget.NewFormItem(app.GetMsg(config.TKeyLblName), widget.NewLabel(user.Name)),
			widget.NewFormItem(app.GetMsg(config.TKeyLblEmail), widget.NewLabel(user.Email)),
			widget.NewFormItem(app.GetMsg(config.TKeyLblRole), widget.NewLabel(app.roleLabel(user.Role))),
		}
		if user.Role == engine.RoleDoctor && user.Specialty != "" {
			items = append(items, widget.NewFormItem(app.GetMsg(config.TKeyLblSpecialty), widget.NewLabel(user.Specialty)))
		}
		if user.Phone != "" {
			items = append(items, widget.NewFormItem(app.GetMsg(config.TKeyLblPhone), widget.NewLabel(user.Phone)))
		}
		if user.CPF != "" {
			items = append(items, widget.NewFormItem(app.GetMsg(config.TKeyLblCPF), widget.NewLabel(user.CPF)))
		}

		feed := widget.NewLabel(app.FeedURL())
		feed.Wrapping = fyne.TextWrapBreak
		feed.Importance = widget.LowImportance

		logout := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnLogout), theme.LogoutIcon(), app.Logout)
		logout.Importance = widget.DangerImportance
		back := widget.NewButton(app.GetMsg(config.TKeyBtnBack), app.ShowHome)

		return container.NewVBox(
			header(app.GetMsg(config.TKeyTitleProfile), ""),
			widget.NewCard(user.Name, "", widget.NewForm(items...)),
			widget.NewCard("", app.GetMsg(config.TKeyLblFeedURL), feed),
			container.NewGridWithColumns(config.LayoutColumnsDouble, back, logout),
		)
	})
}
