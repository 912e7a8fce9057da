package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/medconnect/internal/validation"
)

// DigitEntry is an Entry that only accepts ASCII digits, up to MaxLen of
// them when MaxLen is positive. Pasted text is stripped of everything else.
type DigitEntry struct {
	widget.Entry
	MaxLen int
}

// NewDigitEntry creates a digit-only entry holding at most maxLen digits.
func NewDigitEntry(maxLen int) *DigitEntry {
	entry := &DigitEntry{MaxLen: maxLen}
	entry.ExtendBaseWidget(entry)
	return entry
}

func (e *DigitEntry) full() bool {
	return e.MaxLen > 0 && len(e.Text) >= e.MaxLen
}

// TypedRune drops anything but digits and stops at MaxLen.
func (e *DigitEntry) TypedRune(r rune) {
	if !validation.IsDigit(r) || e.full() {
		return
	}
	e.Entry.TypedRune(r)
}

// TypedShortcut filters pasted content through TypedRune.
func (e *DigitEntry) TypedShortcut(s fyne.Shortcut) {
	paste, ok := s.(*fyne.ShortcutPaste)
	if !ok || paste.Clipboard == nil {
		e.Entry.TypedShortcut(s)
		return
	}
	for _, r := range strings.TrimSpace(paste.Clipboard.Content()) {
		e.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *DigitEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
