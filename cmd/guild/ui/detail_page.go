package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"guild/internal/types"
)

// DetailPageModel shows one mission: markdown description, roles, and (for
// the lead or a commander) its pitches. The role cursor drives the draft
// action.
type DetailPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	user     *types.User
	mission  *types.Mission
	pitches  []types.MissionPitch
	roleIdx  int
	viewport viewport.Model
	renderer *glamour.TermRenderer
}

// NewDetailPageModel creates an empty detail page.
func NewDetailPageModel(styles Styles) DetailPageModel {
	vp := viewport.New(MinimumTerminalWidth, 20)
	return DetailPageModel{
		styles:   styles,
		keys:     DefaultKeyMap(),
		width:    MinimumTerminalWidth,
		height:   MinimumTerminalHeight,
		viewport: vp,
	}
}

// SetSize updates the render dimensions and rebuilds the markdown renderer
// for the new wrap width.
func (m *DetailPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - ContentPaddingH*2
	m.viewport.Height = ContentHeight(height)
	wrap := width - ContentPaddingH*2
	if wrap > DetailDescriptionWidth {
		wrap = DetailDescriptionWidth
	}
	if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
		m.renderer = r
	}
	m.refreshContent()
}

// SetData replaces the displayed mission. The role cursor resets; field
// state never survives between missions.
func (m *DetailPageModel) SetData(user *types.User, mission *types.Mission, pitches []types.MissionPitch) {
	m.user = user
	m.mission = mission
	m.pitches = pitches
	m.roleIdx = 0
	m.refreshContent()
	m.viewport.GotoTop()
}

// Mission returns the mission on display, or nil.
func (m *DetailPageModel) Mission() *types.Mission { return m.mission }

// SelectedRole returns the role under the cursor, or nil.
func (m *DetailPageModel) SelectedRole() *types.MissionRole {
	if m.mission == nil || m.roleIdx >= len(m.mission.Roles) {
		return nil
	}
	return &m.mission.Roles[m.roleIdx]
}

// isLead reports whether the caller leads the displayed mission.
func (m *DetailPageModel) isLead() bool {
	return m.mission != nil && m.user != nil && m.user.ID == m.mission.LeadUserID
}

// Update handles key input.
func (m DetailPageModel) Update(msg tea.Msg) (DetailPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(keyMsg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(keyMsg, m.keys.NextTab):
		// Tab cycles the role cursor inside the detail view.
		if m.mission != nil && len(m.mission.Roles) > 0 {
			m.roleIdx = (m.roleIdx + 1) % len(m.mission.Roles)
			m.refreshContent()
		}
	case key.Matches(keyMsg, m.keys.PitchKey):
		if m.mission != nil {
			id := m.mission.ID
			title := m.mission.Title
			return m, func() tea.Msg { return OpenPitchFormMsg{MissionID: id, MissionTitle: title} }
		}
	case key.Matches(keyMsg, m.keys.Draft):
		if role := m.SelectedRole(); role != nil && m.isLead() && !role.Filled() {
			req := DraftCandidatesRequestMsg{
				RoleID:      role.ID,
				SkillName:   role.RequiredSkill.Name,
				Proficiency: role.ProficiencyRequired,
			}
			return m, func() tea.Msg { return req }
		}
	}
	return m, nil
}

// OpenPitchFormMsg asks the dashboard to show the pitch form for a mission.
type OpenPitchFormMsg struct {
	MissionID    string
	MissionTitle string
}

func (m *DetailPageModel) refreshContent() {
	if m.mission == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.renderMission())
}

func (m *DetailPageModel) renderMission() string {
	mission := m.mission
	var sb strings.Builder

	status := m.styles.Badge.
		BorderForeground(StatusAccent(string(mission.Status))).
		Render(string(mission.Status))
	sb.WriteString(m.styles.Title.Render(mission.Title) + " " + status + "\n")
	sb.WriteString(m.styles.Muted.Render("Lead: "+mission.Lead.Name) + "\n\n")

	if mission.Description != "" {
		desc := mission.Description
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(desc); err == nil {
				desc = rendered
			}
		}
		sb.WriteString(desc + "\n")
	}

	sb.WriteString(m.styles.Bold.Render("Roles") + "\n")
	if len(mission.Roles) == 0 {
		sb.WriteString(m.styles.Muted.Render("  No roles defined.") + "\n")
	}
	for i := range mission.Roles {
		role := &mission.Roles[i]
		marker := "  "
		if i == m.roleIdx {
			marker = m.styles.RowSelected.Render("▸ ")
		}
		assignee := m.styles.Muted.Render("unfilled")
		if role.Filled() {
			assignee = role.Assignee.Name
		}
		sb.WriteString(fmt.Sprintf("%s%s: %s %s · %s\n",
			marker,
			role.RoleDescription,
			role.RequiredSkill.Name,
			m.styles.Muted.Render("("+string(role.ProficiencyRequired)+")"),
			assignee))
	}

	if m.isLead() || m.user.IsCommander() {
		sb.WriteString("\n" + m.styles.Bold.Render("Pitches") + "\n")
		if len(m.pitches) == 0 {
			sb.WriteString(m.styles.Muted.Render("  No pitches yet.") + "\n")
		}
		for _, pitch := range m.pitches {
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n",
				m.styles.Badge.Render(string(pitch.Status)),
				pitch.User.Name,
				truncate(pitch.PitchText, 60)))
		}
	}

	hints := []string{"p: pitch"}
	if m.isLead() {
		hints = append(hints, "tab: next role", "d: draft member")
	}
	hints = append(hints, "esc: back")
	sb.WriteString("\n" + m.styles.Muted.Render(strings.Join(hints, "  ")))
	return sb.String()
}

// View renders the detail viewport.
func (m DetailPageModel) View() string {
	if m.mission == nil {
		return m.styles.Muted.Render("No mission selected.")
	}
	return m.viewport.View()
}
