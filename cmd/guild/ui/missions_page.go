package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

// MissionsPageModel lists every mission visible to the caller as rows.
type MissionsPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	missions []types.Mission
	cursor   int
}

// NewMissionsPageModel creates an empty missions page.
func NewMissionsPageModel(styles Styles) MissionsPageModel {
	return MissionsPageModel{
		styles: styles,
		keys:   DefaultKeyMap(),
		width:  MinimumTerminalWidth,
		height: MinimumTerminalHeight,
	}
}

// SetSize updates the render dimensions.
func (m *MissionsPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData replaces the mission list.
func (m *MissionsPageModel) SetData(missions []types.Mission) {
	m.missions = missions
	if m.cursor >= len(missions) {
		m.cursor = len(missions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles key input.
func (m MissionsPageModel) Update(msg tea.Msg) (MissionsPageModel, tea.Cmd) {
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
		if m.cursor < len(m.missions)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		if m.cursor < len(m.missions) {
			id := m.missions[m.cursor].ID
			return m, func() tea.Msg { return OpenMissionMsg{MissionID: id} }
		}
	}
	return m, nil
}

// View renders the mission rows.
func (m MissionsPageModel) View() string {
	if len(m.missions) == 0 {
		return m.styles.Muted.Render("No missions yet.")
	}

	var sb strings.Builder
	for i, mission := range m.missions {
		filled := 0
		for j := range mission.Roles {
			if mission.Roles[j].Filled() {
				filled++
			}
		}

		status := m.styles.Badge.
			BorderForeground(StatusAccent(string(mission.Status))).
			Render(string(mission.Status))
		line := fmt.Sprintf("%s  %s  %s  %s",
			status,
			truncate(mission.Title, 36),
			m.styles.Muted.Render("lead "+mission.Lead.Name),
			m.styles.Muted.Render(fmt.Sprintf("roles %d/%d", filled, len(mission.Roles))))

		if i == m.cursor {
			sb.WriteString(m.styles.RowSelected.Render("▸ ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + m.styles.Muted.Render("enter: open mission"))
	return sb.String()
}
