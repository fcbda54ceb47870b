package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

// RosterPageModel is the commander talent-scout view: search users by
// skill and proficiency, then invite one to an open role.
type RosterPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	skillInput  textinput.Model
	proficiency int
	searching   bool
	results     []types.User
	cursor      int
	focusSearch bool
}

// NewRosterPageModel creates the roster page with the search form focused.
func NewRosterPageModel(styles Styles) RosterPageModel {
	ti := textinput.New()
	ti.Placeholder = "skill name"
	ti.CharLimit = 64
	ti.Width = 24
	ti.Focus()
	return RosterPageModel{
		styles:      styles,
		keys:        DefaultKeyMap(),
		width:       MinimumTerminalWidth,
		height:      MinimumTerminalHeight,
		skillInput:  ti,
		focusSearch: true,
	}
}

// SetSize updates the render dimensions.
func (m *RosterPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetResults replaces the search results after a search settles.
func (m *RosterPageModel) SetResults(users []types.User) {
	m.results = users
	m.searching = false
	m.cursor = 0
	m.focusSearch = false
	m.skillInput.Blur()
}

// SearchFailed clears the in-flight state without touching prior results.
func (m *RosterPageModel) SearchFailed() {
	m.searching = false
}

// SelectedUser returns the user under the cursor, or nil.
func (m *RosterPageModel) SelectedUser() *types.User {
	if m.focusSearch || m.cursor >= len(m.results) {
		return nil
	}
	return &m.results[m.cursor]
}

// Update handles key input.
func (m RosterPageModel) Update(msg tea.Msg) (RosterPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.focusSearch {
		switch {
		case key.Matches(keyMsg, m.keys.Select):
			return m.submitSearch()
		case keyMsg.String() == "ctrl+p":
			m.proficiency = (m.proficiency + 1) % len(types.AllProficiencies)
			return m, nil
		case key.Matches(keyMsg, m.keys.Back):
			m.focusSearch = false
			m.skillInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.skillInput, cmd = m.skillInput.Update(keyMsg)
		return m, cmd
	}

	switch {
	case keyMsg.String() == "/":
		m.focusSearch = true
		m.skillInput.Focus()
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Invite):
		if user := m.SelectedUser(); user != nil {
			u := *user
			return m, func() tea.Msg { return OpenInviteFormMsg{User: u} }
		}
	}
	return m, nil
}

// OpenInviteFormMsg asks the dashboard to show the invite form for a user.
type OpenInviteFormMsg struct{ User types.User }

func (m RosterPageModel) submitSearch() (RosterPageModel, tea.Cmd) {
	skill := strings.TrimSpace(m.skillInput.Value())
	if skill == "" || m.searching {
		return m, nil
	}
	m.searching = true
	req := SearchRequestMsg{
		SkillName:   skill,
		Proficiency: types.AllProficiencies[m.proficiency],
	}
	return m, func() tea.Msg { return req }
}

// View renders the search form and results.
func (m RosterPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.FormLabel.Render("Find talent by skill") + "\n")
	sb.WriteString(m.skillInput.View())
	sb.WriteString("  " + m.styles.Badge.Render(string(types.AllProficiencies[m.proficiency])))
	sb.WriteString(m.styles.Muted.Render("  ctrl+p: proficiency  enter: search") + "\n\n")

	switch {
	case m.searching:
		sb.WriteString(m.styles.Muted.Render("Searching…"))
	case len(m.results) == 0:
		sb.WriteString(m.styles.Muted.Render("No results. Press / to edit the search."))
	default:
		for i, user := range m.results {
			marker := "  "
			if !m.focusSearch && i == m.cursor {
				marker = m.styles.RowSelected.Render("▸ ")
			}
			skills := make([]string, 0, len(user.Skills))
			for _, s := range user.Skills {
				skills = append(skills, fmt.Sprintf("%s/%s", s.Skill.Name, s.Proficiency))
			}
			sb.WriteString(marker + fmt.Sprintf("%s %s  %s",
				user.Name,
				m.styles.Muted.Render("("+user.Title+")"),
				truncate(strings.Join(skills, ", "), 48)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n" + m.styles.Muted.Render("i: invite to a role  /: new search"))
	}
	return sb.String()
}
