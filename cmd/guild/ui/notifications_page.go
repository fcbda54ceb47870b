package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

// NotificationsPageModel lists notifications, unread first styling only.
// Marking one read is a single irreversible write, so there is no
// optimistic update here: the row shows a pending state until the server
// answers.
type NotificationsPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	notes   []types.Notification
	cursor  int
	pending map[string]bool
}

// NewNotificationsPageModel creates an empty notifications page.
func NewNotificationsPageModel(styles Styles) NotificationsPageModel {
	return NotificationsPageModel{
		styles:  styles,
		keys:    DefaultKeyMap(),
		width:   MinimumTerminalWidth,
		height:  MinimumTerminalHeight,
		pending: make(map[string]bool),
	}
}

// SetSize updates the render dimensions.
func (m *NotificationsPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData replaces the notification list (initial fetch and poll refresh).
func (m *NotificationsPageModel) SetData(notes []types.Notification) {
	m.notes = notes
	m.pending = make(map[string]bool)
	if m.cursor >= len(notes) {
		m.cursor = len(notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Settle applies the server's answer for one mark-read call.
func (m *NotificationsPageModel) Settle(notificationID string, ok bool) {
	delete(m.pending, notificationID)
	if !ok {
		return
	}
	for i := range m.notes {
		if m.notes[i].ID == notificationID {
			m.notes[i].IsRead = true
			break
		}
	}
}

// Unread counts unread notifications for the header badge.
func (m *NotificationsPageModel) Unread() int {
	n := 0
	for _, note := range m.notes {
		if !note.IsRead {
			n++
		}
	}
	return n
}

// Update handles key input.
func (m NotificationsPageModel) Update(msg tea.Msg) (NotificationsPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.notes)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.notes) {
			note := m.notes[m.cursor]
			if note.IsRead || m.pending[note.ID] {
				return m, nil
			}
			m.pending[note.ID] = true
			req := MarkReadRequestMsg{NotificationID: note.ID}
			return m, func() tea.Msg { return req }
		}
	}
	return m, nil
}

// View renders the notification rows.
func (m NotificationsPageModel) View() string {
	if len(m.notes) == 0 {
		return m.styles.Muted.Render("No notifications.")
	}

	var sb strings.Builder
	for i, note := range m.notes {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.RowSelected.Render("▸ ")
		}

		line := note.Message
		switch {
		case m.pending[note.ID]:
			line = m.styles.RowPending.Render(line + " (marking…)")
		case note.IsRead:
			line = m.styles.Muted.Render(line)
		default:
			line = m.styles.BadgeUnread.Render("● ") + m.styles.Body.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("enter: mark read"))
	return sb.String()
}
