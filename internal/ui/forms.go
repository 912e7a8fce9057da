package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/validation"
)

// fieldMessage is the coloured line under a form input.
type fieldMessage struct {
	*widget.Label
}

func newFieldMessage() fieldMessage {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	l.Hide()
	return fieldMessage{l}
}

func (f fieldMessage) set(text string, sev validation.Severity) {
	switch sev {
	case validation.SeveritySuccess:
		f.Importance = widget.SuccessImportance
	case validation.SeverityWarning:
		f.Importance = widget.WarningImportance
	default:
		f.Importance = widget.DangerImportance
	}
	f.SetText(text)
	f.Show()
}

func (f fieldMessage) clear() {
	f.SetText("")
	f.Hide()
}

// showFailure displays the failing result of name, or clears the line.
func (app *MedConnectApp) showFailure(f fieldMessage, res validation.FormResult, name string) {
	r, failed := res.Failed(name)
	if !failed {
		f.clear()
		return
	}
	f.set(app.resultText(r), r.Type)
}

// field is a labelled input with its message line underneath.
func field(label string, input fyne.CanvasObject, msg fieldMessage) *widget.FormItem {
	return widget.NewFormItem(label, container.NewVBox(input, msg.Label))
}
