package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

func testLead() *types.User {
	return &types.User{ID: "u-lead", Name: "Astrid", Role: types.RoleManager}
}

func testMember() *types.User {
	return &types.User{ID: "u-member", Name: "Bran", Role: types.RoleMember}
}

func boardMissions() []types.Mission {
	return []types.Mission{
		{ID: "m1", Title: "Forge the beacon", LeadUserID: "u-lead", Status: types.StatusProposed,
			Lead: types.User{Name: "Astrid"}},
		{ID: "m2", Title: "Map the reach", LeadUserID: "u-lead", Status: types.StatusActive,
			Lead: types.User{Name: "Astrid"},
			Roles: []types.MissionRole{{ID: "r1", Assignee: &types.User{ID: "u-member"}}}},
		{ID: "m3", Title: "Archive the ledgers", LeadUserID: "u-lead", Status: types.StatusCompleted,
			Lead: types.User{Name: "Astrid"}},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBoardRendersAllColumnsForCommander(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	view := model.View()
	for _, want := range []string{"Proposed (1)", "Active (1)", "Completed (1)", "Forge the beacon", "Archive the ledgers"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in board view", want)
		}
	}
}

func TestBoardHidesCompletedColumnFromMember(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testMember(), boardMissions())

	view := model.View()
	if strings.Contains(view, "Completed") {
		t.Fatalf("member board must not show a Completed column")
	}
	if !strings.Contains(view, "Map the reach") {
		t.Fatalf("member holds a role on the active mission; it must be visible")
	}
	if strings.Contains(view, "Archive the ledgers") {
		t.Fatalf("completed mission must not leak into a member board")
	}
}

func TestMoveGestureEmitsRequestForChosenColumn(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	// Pick up the proposed mission, aim one column right, confirm.
	model, _ = model.Update(keyRune('m'))
	if model.Moving() == nil {
		t.Fatalf("expected a card to be picked up")
	}
	if !strings.Contains(model.View(), "Moving") {
		t.Fatalf("expected the move hint to be rendered")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a move request command")
	}

	msg, ok := cmd().(MoveRequestMsg)
	if !ok {
		t.Fatalf("expected MoveRequestMsg, got %T", cmd())
	}
	if msg.MissionID != "m1" || msg.Target != types.StatusActive {
		t.Fatalf("unexpected request %+v", msg)
	}
	if model.Moving() != nil {
		t.Fatalf("gesture must end after confirm")
	}
}

func TestMoveByColumnInitial(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	model, _ = model.Update(keyRune('m'))
	model, cmd := model.Update(keyRune('c'))
	if cmd == nil {
		t.Fatalf("expected a move request command")
	}
	msg := cmd().(MoveRequestMsg)
	if msg.Target != types.StatusCompleted {
		t.Fatalf("expected Completed target, got %v", msg.Target)
	}
}

func TestSameColumnDropIsSilent(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	model, _ = model.Update(keyRune('m'))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("dropping a card where it already is must not emit a request")
	}
	if model.Moving() != nil {
		t.Fatalf("gesture must still end")
	}
}

func TestEscapeCancelsMove(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	model, _ = model.Update(keyRune('m'))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || model.Moving() != nil {
		t.Fatalf("escape must cancel the gesture without a request")
	}
}

func TestSetDataCancelsInFlightGesture(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	model, _ = model.Update(keyRune('m'))
	if model.Moving() == nil {
		t.Fatalf("expected a card to be picked up")
	}

	// A refetch can remove the picked-up card; the gesture must not
	// survive it.
	model.SetData(testLead(), boardMissions()[1:])
	if model.Moving() != nil {
		t.Fatalf("data refresh must cancel the gesture")
	}
}

func TestEnterOpensMissionDetail(t *testing.T) {
	model := NewBoardPageModel(DefaultStyles())
	model.SetSize(120, 30)
	model.SetData(testLead(), boardMissions())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected an open request")
	}
	msg, ok := cmd().(OpenMissionMsg)
	if !ok || msg.MissionID != "m1" {
		t.Fatalf("expected OpenMissionMsg for m1, got %#v", cmd())
	}
}
