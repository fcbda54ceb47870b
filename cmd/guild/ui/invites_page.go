package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

// InvitesPageModel lists the caller's pending role invitations. A row goes
// into a pending state while its response is in flight so the same invite
// cannot be answered twice.
type InvitesPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	invites []types.MissionInvite
	cursor  int
	pending map[string]bool
}

// NewInvitesPageModel creates an empty invites page.
func NewInvitesPageModel(styles Styles) InvitesPageModel {
	return InvitesPageModel{
		styles:  styles,
		keys:    DefaultKeyMap(),
		width:   MinimumTerminalWidth,
		height:  MinimumTerminalHeight,
		pending: make(map[string]bool),
	}
}

// SetSize updates the render dimensions.
func (m *InvitesPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData replaces the invite list. Only pending invites are shown.
func (m *InvitesPageModel) SetData(invites []types.MissionInvite) {
	shown := make([]types.MissionInvite, 0, len(invites))
	for _, inv := range invites {
		if inv.Status == types.InvitePending {
			shown = append(shown, inv)
		}
	}
	m.invites = shown
	m.pending = make(map[string]bool)
	if m.cursor >= len(shown) {
		m.cursor = len(shown) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Settle removes an invite whose response succeeded, or re-enables it on
// failure.
func (m *InvitesPageModel) Settle(inviteID string, ok bool) {
	delete(m.pending, inviteID)
	if !ok {
		return
	}
	kept := m.invites[:0]
	for _, inv := range m.invites {
		if inv.ID != inviteID {
			kept = append(kept, inv)
		}
	}
	m.invites = kept
	if m.cursor >= len(m.invites) && m.cursor > 0 {
		m.cursor--
	}
}

// Update handles key input.
func (m InvitesPageModel) Update(msg tea.Msg) (InvitesPageModel, tea.Cmd) {
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
		if m.cursor < len(m.invites)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Accept):
		return m.respond(true)
	case key.Matches(keyMsg, m.keys.Decline):
		return m.respond(false)
	}
	return m, nil
}

func (m InvitesPageModel) respond(accept bool) (InvitesPageModel, tea.Cmd) {
	if m.cursor >= len(m.invites) {
		return m, nil
	}
	inv := m.invites[m.cursor]
	if m.pending[inv.ID] {
		return m, nil
	}
	m.pending[inv.ID] = true
	req := RespondInviteRequestMsg{InviteID: inv.ID, Accept: accept}
	return m, func() tea.Msg { return req }
}

// View renders the invite cards.
func (m InvitesPageModel) View() string {
	if len(m.invites) == 0 {
		return m.styles.Muted.Render("No pending invitations.")
	}

	var sb strings.Builder
	for i, inv := range m.invites {
		title := "Unknown Mission"
		if inv.MissionRole.Mission != nil {
			title = inv.MissionRole.Mission.Title
		}

		marker := "  "
		rowStyle := m.styles.Body
		if i == m.cursor {
			marker = m.styles.RowSelected.Render("▸ ")
		}
		if m.pending[inv.ID] {
			rowStyle = m.styles.RowPending
		}

		sb.WriteString(marker + rowStyle.Render(fmt.Sprintf(
			"%s: %s invites you as %s (%s %s)",
			title,
			inv.InvitingUser.Name,
			inv.MissionRole.RoleDescription,
			inv.MissionRole.RequiredSkill.Name,
			inv.MissionRole.ProficiencyRequired)))
		if m.pending[inv.ID] {
			sb.WriteString(" " + m.styles.Muted.Render("responding…"))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("a: accept  x: decline"))
	return sb.String()
}
