package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

// opportunity is one unfilled role on a joinable mission.
type opportunity struct {
	mission types.Mission
	role    types.MissionRole
}

// OpportunitiesPageModel lists open roles the caller could pitch for:
// unfilled roles on proposed or active missions the caller is not already
// part of. Roles whose requirement the caller meets are marked.
type OpportunitiesPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	user   *types.User
	opps   []opportunity
	cursor int
}

// NewOpportunitiesPageModel creates an empty opportunities page.
func NewOpportunitiesPageModel(styles Styles) OpportunitiesPageModel {
	return OpportunitiesPageModel{
		styles: styles,
		keys:   DefaultKeyMap(),
		width:  MinimumTerminalWidth,
		height: MinimumTerminalHeight,
	}
}

// SetSize updates the render dimensions.
func (m *OpportunitiesPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData recomputes the opportunity list from the missions.
func (m *OpportunitiesPageModel) SetData(user *types.User, missions []types.Mission) {
	m.user = user
	m.opps = m.opps[:0]
	for _, mission := range missions {
		if mission.Status == types.StatusCompleted {
			continue
		}
		if user != nil && (mission.LeadUserID == user.ID || mission.HasAssignee(user.ID)) {
			continue
		}
		for _, role := range mission.Roles {
			if !role.Filled() {
				m.opps = append(m.opps, opportunity{mission: mission, role: role})
			}
		}
	}
	if m.cursor >= len(m.opps) {
		m.cursor = len(m.opps) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles key input.
func (m OpportunitiesPageModel) Update(msg tea.Msg) (OpportunitiesPageModel, tea.Cmd) {
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
		if m.cursor < len(m.opps)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PitchKey):
		if m.cursor < len(m.opps) {
			opp := m.opps[m.cursor]
			return m, func() tea.Msg {
				return OpenPitchFormMsg{MissionID: opp.mission.ID, MissionTitle: opp.mission.Title}
			}
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.opps) {
			id := m.opps[m.cursor].mission.ID
			return m, func() tea.Msg { return OpenMissionMsg{MissionID: id} }
		}
	}
	return m, nil
}

// View renders the opportunity rows.
func (m OpportunitiesPageModel) View() string {
	if len(m.opps) == 0 {
		return m.styles.Muted.Render("No open roles right now.")
	}

	var sb strings.Builder
	for i, opp := range m.opps {
		marker := "  "
		if i == m.cursor {
			marker = m.styles.RowSelected.Render("▸ ")
		}

		match := ""
		if m.user.HasSkill(opp.role.SkillIDRequired, opp.role.ProficiencyRequired) {
			match = " " + m.styles.Success.Render("match")
		}

		sb.WriteString(marker + fmt.Sprintf("%s · %s %s%s",
			truncate(opp.mission.Title, 32),
			opp.role.RoleDescription,
			m.styles.Muted.Render(fmt.Sprintf("(%s %s)", opp.role.RequiredSkill.Name, opp.role.ProficiencyRequired)),
			match))
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("p: pitch for role  enter: open mission"))
	return sb.String()
}
