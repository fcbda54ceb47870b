package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

func typeInto(f ModalForm, text string) ModalForm {
	for _, r := range text {
		f, _ = f.Update(keyRune(r))
	}
	return f
}

func TestCreateMissionFormValidatesBeforeSubmit(t *testing.T) {
	var f ModalForm = NewCreateMissionForm()

	// Empty form: enter must not submit.
	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty form must not submit")
	}
	if !strings.Contains(f.View(DefaultStyles(), 100), "Title is required") {
		t.Fatalf("expected title validation message")
	}
}

func TestCreateMissionFormStagesRolesAndSubmits(t *testing.T) {
	var f ModalForm = NewCreateMissionForm()

	f = typeInto(f, "Forge the beacon")
	// tab to description, tab to role description.
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "Smith the frame")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "skill-forging")
	// Cycle proficiency once: Beginner -> Intermediate.
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	// Stage the role, then add a second one.
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if !strings.Contains(f.View(DefaultStyles(), 100), "1 staged") {
		t.Fatalf("expected one staged role")
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f = typeInto(f, "Enchant the core")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "skill-runes")

	// Submit: the complete unstaged role counts as the last role.
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a create request")
	}
	req, ok := cmd().(CreateMissionRequestMsg)
	if !ok {
		t.Fatalf("expected CreateMissionRequestMsg, got %T", cmd())
	}
	if req.Payload.Title != "Forge the beacon" {
		t.Fatalf("unexpected title %q", req.Payload.Title)
	}
	if len(req.Payload.Roles) != 2 {
		t.Fatalf("expected two roles, got %d", len(req.Payload.Roles))
	}
	if req.Payload.Roles[0].ProficiencyRequired != types.ProficiencyIntermediate {
		t.Fatalf("expected cycled proficiency on first role, got %v", req.Payload.Roles[0].ProficiencyRequired)
	}
	if req.Payload.Roles[1].SkillIDRequired != "skill-runes" {
		t.Fatalf("unexpected second role %+v", req.Payload.Roles[1])
	}
}

func TestCreateMissionFormIgnoresInputWhileSubmitting(t *testing.T) {
	var f ModalForm = NewCreateMissionForm()
	f = typeInto(f, "Forge the beacon")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "Smith")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeInto(f, "skill-forging")

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submission")
	}

	// While in flight a second enter is swallowed.
	_, cmd = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("submitting form must ignore further input")
	}

	// A backend rejection re-enables editing and shows the detail inline.
	f.Fail("Budget exceeds the guild treasury")
	view := f.View(DefaultStyles(), 100)
	if !strings.Contains(view, "Budget exceeds the guild treasury") {
		t.Fatalf("expected inline error after Fail")
	}
	if strings.Contains(view, "Submitting") {
		t.Fatalf("failed form must not stay in the submitting state")
	}
}

func TestPitchFormRequiresText(t *testing.T) {
	var f ModalForm = NewPitchForm("m1", "Map the reach")

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("empty pitch must not submit")
	}

	f = typeInto(f, "I mapped the northern passes")
	_, cmd = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a pitch request")
	}
	req := cmd().(PitchRequestMsg)
	if req.MissionID != "m1" || req.Text != "I mapped the northern passes" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestDraftFormPicksCandidate(t *testing.T) {
	var f ModalForm = NewDraftForm("r1", []types.User{
		{ID: "u1", Name: "Bran"},
		{ID: "u2", Name: "Wren"},
	})

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a draft request")
	}
	req := cmd().(DraftRequestMsg)
	if req.RoleID != "r1" || req.UserID != "u2" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestInviteFormOffersOnlyLeadsOpenRoles(t *testing.T) {
	lead := &types.User{ID: "u-lead", Role: types.RoleManager}
	missions := []types.Mission{
		{ID: "m1", Title: "Map the reach", LeadUserID: "u-lead",
			Roles: []types.MissionRole{
				{ID: "r1", RoleDescription: "Scout", RequiredSkill: types.Skill{Name: "Cartography"}},
				{ID: "r2", RoleDescription: "Cook", Assignee: &types.User{ID: "u-x"}},
			}},
		{ID: "m2", Title: "Someone else's mission", LeadUserID: "u-other",
			Roles: []types.MissionRole{{ID: "r3", RoleDescription: "Anything"}}},
	}

	var f ModalForm = NewInviteForm(types.User{ID: "u-bran", Name: "Bran"}, lead, missions)
	view := f.View(DefaultStyles(), 100)
	if !strings.Contains(view, "Invite Bran") {
		t.Fatalf("expected the invitee name in the title")
	}
	if !strings.Contains(view, "Scout") {
		t.Fatalf("expected the open role")
	}
	if strings.Contains(view, "Cook") || strings.Contains(view, "Anything") {
		t.Fatalf("filled roles and other leads' roles must not be offered")
	}

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected an invite request")
	}
	req := cmd().(InviteRequestMsg)
	if req.RoleID != "r1" || req.UserID != "u-bran" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestEscapeClosesForm(t *testing.T) {
	var f ModalForm = NewPitchForm("m1", "Map the reach")
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected a close command")
	}
	if _, ok := cmd().(CloseModalMsg); !ok {
		t.Fatalf("expected CloseModalMsg, got %T", cmd())
	}
}
