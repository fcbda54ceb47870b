package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"guild/internal/board"
	"guild/internal/types"
)

// BoardPageModel is the mission status board. Columns are derived from the
// mission list on every render; the page never keeps its own buckets.
//
// Moving a card is a two-step gesture: `m` picks up the selected card,
// then the target column is chosen explicitly (arrow keys or the column's
// initial) and confirmed with enter. The target is always the selected
// column itself, so there is no ambiguity about what was "dropped on".
type BoardPageModel struct {
	width  int
	height int
	styles Styles
	keys   KeyMap

	user     *types.User
	missions []types.Mission

	colIdx    int
	rowIdx    int
	moving    *types.Mission
	targetIdx int
}

// NewBoardPageModel creates an empty board page.
func NewBoardPageModel(styles Styles) BoardPageModel {
	return BoardPageModel{
		styles: styles,
		keys:   DefaultKeyMap(),
		width:  MinimumTerminalWidth,
		height: MinimumTerminalHeight,
	}
}

// SetSize updates the render dimensions.
func (m *BoardPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetData replaces the mission list and clamps the cursor. Any in-flight
// move gesture is cancelled: the card it referenced may be gone.
func (m *BoardPageModel) SetData(user *types.User, missions []types.Mission) {
	m.user = user
	m.missions = missions
	m.moving = nil
	m.clampCursor()
}

// Missions returns the current list (the dashboard reads it back after a
// transition settles).
func (m *BoardPageModel) Missions() []types.Mission { return m.missions }

// Moving returns the card picked up in move mode, if any.
func (m *BoardPageModel) Moving() *types.Mission { return m.moving }

// columns and grouping are pure derivations, recomputed on demand.
func (m *BoardPageModel) columns() []types.MissionStatus {
	return board.ColumnsFor(m.user)
}

func (m *BoardPageModel) grouped() map[types.MissionStatus][]types.Mission {
	return board.GroupByStatus(board.VisibleTo(m.user, m.missions))
}

// selected returns the mission under the cursor, or nil.
func (m *BoardPageModel) selected() *types.Mission {
	cols := m.columns()
	if m.colIdx >= len(cols) {
		return nil
	}
	col := m.grouped()[cols[m.colIdx]]
	if m.rowIdx >= len(col) {
		return nil
	}
	mission := col[m.rowIdx]
	return &mission
}

func (m *BoardPageModel) clampCursor() {
	cols := m.columns()
	if m.colIdx >= len(cols) {
		m.colIdx = len(cols) - 1
	}
	if m.colIdx < 0 {
		m.colIdx = 0
	}
	if len(cols) == 0 {
		m.rowIdx = 0
		return
	}
	col := m.grouped()[cols[m.colIdx]]
	if m.rowIdx >= len(col) {
		m.rowIdx = len(col) - 1
	}
	if m.rowIdx < 0 {
		m.rowIdx = 0
	}
}

// Update handles key input for the board.
func (m BoardPageModel) Update(msg tea.Msg) (BoardPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.moving != nil {
		return m.updateMoving(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.rowIdx--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Down):
		m.rowIdx++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Left):
		m.colIdx--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Right):
		m.colIdx++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Move):
		if sel := m.selected(); sel != nil {
			m.moving = sel
			m.targetIdx = m.colIdx
		}
	case key.Matches(keyMsg, m.keys.Select):
		if sel := m.selected(); sel != nil {
			id := sel.ID
			return m, func() tea.Msg { return OpenMissionMsg{MissionID: id} }
		}
	}
	return m, nil
}

// updateMoving handles keys while a card is picked up.
func (m BoardPageModel) updateMoving(keyMsg tea.KeyMsg) (BoardPageModel, tea.Cmd) {
	cols := m.columns()

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		m.moving = nil
	case key.Matches(keyMsg, m.keys.Left):
		if m.targetIdx > 0 {
			m.targetIdx--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.targetIdx < len(cols)-1 {
			m.targetIdx++
		}
	case key.Matches(keyMsg, m.keys.Select):
		return m.confirmMove(cols[m.targetIdx])
	default:
		// Column initials select the target directly.
		for i, status := range cols {
			if keyMsg.String() == strings.ToLower(string(status[0:1])) {
				m.targetIdx = i
				return m.confirmMove(cols[i])
			}
		}
	}
	return m, nil
}

// confirmMove ends the gesture and emits the move request. A same-column
// target is a pure no-op: no request, no toast.
func (m BoardPageModel) confirmMove(target types.MissionStatus) (BoardPageModel, tea.Cmd) {
	moving := m.moving
	m.moving = nil
	if moving == nil || moving.Status == target {
		return m, nil
	}
	id := moving.ID
	return m, func() tea.Msg { return MoveRequestMsg{MissionID: id, Target: target} }
}

// View renders the board columns.
func (m BoardPageModel) View() string {
	cols := m.columns()
	if len(cols) == 0 {
		return m.styles.Muted.Render("No board to show.")
	}

	grouped := m.grouped()
	colWidth := ColumnWidth(m.width, len(cols))

	rendered := make([]string, 0, len(cols))
	for i, status := range cols {
		rendered = append(rendered, m.renderColumn(i, status, grouped[status], colWidth))
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if m.moving != nil {
		hint := m.styles.Info.Render(fmt.Sprintf(
			"Moving %q: ←/→ or column initial to choose, enter to confirm, esc to cancel",
			m.moving.Title))
		return boardView + "\n" + hint
	}
	return boardView
}

func (m BoardPageModel) renderColumn(idx int, status types.MissionStatus, missions []types.Mission, width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(StatusAccent(string(status))).
		Render(fmt.Sprintf("%s (%d)", status, len(missions)))

	var cards []string
	cards = append(cards, header)

	if len(missions) == 0 {
		cards = append(cards, m.styles.EmptyColumn.Render("No missions here."))
	}

	for rowIdx, mission := range missions {
		style := m.styles.Card
		switch {
		case m.moving != nil && m.moving.ID == mission.ID:
			style = m.styles.CardMoving
		case m.moving == nil && idx == m.colIdx && rowIdx == m.rowIdx:
			style = m.styles.CardSelected
		}
		body := fmt.Sprintf("%s\n%s\n%s",
			m.styles.Bold.Render(truncate(mission.Title, width-4)),
			m.styles.Muted.Render("Lead: "+truncate(mission.Lead.Name, width-10)),
			m.styles.Muted.Render(fmt.Sprintf("%d role(s)", len(mission.Roles))))
		cards = append(cards, style.Width(width-2).Render(body))
	}

	colStyle := m.styles.Column
	if m.moving != nil && idx == m.targetIdx {
		colStyle = m.styles.ColumnTarget
	}
	return colStyle.Width(width).Render(strings.Join(cards, "\n"))
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
