package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ToastLevel selects toast styling.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// toastTTL is how long a toast stays on screen.
const toastTTL = 4 * time.Second

// ToastExpiredMsg clears a toast whose display window ended. Seq guards
// against an old expiry clearing a newer toast.
type ToastExpiredMsg struct{ Seq int }

// Toast is the one-line transient notice at the bottom of the dashboard.
type Toast struct {
	level   ToastLevel
	message string
	seq     int
}

// Show replaces the current toast and returns the expiry command.
func (t *Toast) Show(level ToastLevel, message string) tea.Cmd {
	t.level = level
	t.message = message
	t.seq++
	seq := t.seq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Expire clears the toast if msg matches the currently shown one.
func (t *Toast) Expire(msg ToastExpiredMsg) {
	if msg.Seq == t.seq {
		t.message = ""
	}
}

// Active reports whether a toast is visible.
func (t *Toast) Active() bool { return t.message != "" }

// View renders the toast line, or "" when inactive.
func (t *Toast) View(styles Styles) string {
	if t.message == "" {
		return ""
	}
	switch t.level {
	case ToastSuccess:
		return styles.Success.Render("✓ " + t.message)
	case ToastError:
		return styles.Error.Render("✗ " + t.message)
	default:
		return styles.Info.Render("· " + t.message)
	}
}
