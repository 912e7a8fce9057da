package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/config"
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastWarning
	toastError
)

// toastBar is a one-line banner above the current screen that hides itself
// after config.ToastTimeout. A newer toast replaces the one on display.
type toastBar struct {
	label *widget.Label

	mu  sync.Mutex
	gen int
}

func newToastBar() *toastBar {
	l := widget.NewLabel("")
	l.Wrapping = fyne.TextWrapWord
	l.Alignment = fyne.TextAlignCenter
	l.TextStyle = fyne.TextStyle{Bold: true}
	l.Hide()
	return &toastBar{label: l}
}

func (t *toastBar) show(kind toastKind, msg string) {
	switch kind {
	case toastSuccess:
		t.label.Importance = widget.SuccessImportance
	case toastWarning:
		t.label.Importance = widget.WarningImportance
	case toastError:
		t.label.Importance = widget.DangerImportance
	default:
		t.label.Importance = widget.HighImportance
	}
	t.label.SetText(msg)
	t.label.Show()

	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	time.AfterFunc(config.ToastTimeout, func() {
		t.mu.Lock()
		current := t.gen == gen
		t.mu.Unlock()
		if current {
			fyne.Do(t.label.Hide)
		}
	})
}

func (app *MedConnectApp) toastKey(kind toastKind, key string) {
	app.toast.show(kind, app.GetMsg(key))
}
