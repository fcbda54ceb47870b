package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/types"
)

func detailMission() *types.Mission {
	return &types.Mission{
		ID:          "m1",
		Title:       "Map the reach",
		Description: "Chart the **northern passes** before winter.",
		LeadUserID:  "u-lead",
		Status:      types.StatusActive,
		Lead:        types.User{ID: "u-lead", Name: "Astrid"},
		Roles: []types.MissionRole{
			{ID: "r1", RoleDescription: "Scout", RequiredSkill: types.Skill{Name: "Cartography"},
				ProficiencyRequired: types.ProficiencyAdvanced},
			{ID: "r2", RoleDescription: "Quartermaster", RequiredSkill: types.Skill{Name: "Logistics"},
				Assignee: &types.User{ID: "u-q", Name: "Wren"}},
		},
	}
}

func TestDetailPageRendersMissionAndRoles(t *testing.T) {
	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(100, 30)
	model.SetData(testLead(), detailMission(), nil)

	view := model.View()
	for _, want := range []string{"Map the reach", "Astrid", "Scout", "Quartermaster", "Wren", "unfilled"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in detail view", want)
		}
	}
}

func TestDetailPagePitchesVisibleToLeadOnly(t *testing.T) {
	pitches := []types.MissionPitch{
		{ID: "p1", User: types.User{Name: "Bran"}, PitchText: "I know the passes", Status: types.PitchSubmitted},
	}

	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(100, 30)
	model.SetData(testLead(), detailMission(), pitches)
	if !strings.Contains(model.View(), "I know the passes") {
		t.Fatalf("lead must see pitches")
	}

	model.SetData(testMember(), detailMission(), nil)
	if strings.Contains(model.View(), "Pitches") {
		t.Fatalf("member must not see the pitches section")
	}
}

func TestDetailPageDraftOnUnfilledRoleOnly(t *testing.T) {
	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(100, 30)
	model.SetData(testLead(), detailMission(), nil)

	// Cursor starts on the unfilled scout role.
	model, cmd := model.Update(keyRune('d'))
	if cmd == nil {
		t.Fatalf("expected a draft candidates request")
	}
	req := cmd().(DraftCandidatesRequestMsg)
	if req.RoleID != "r1" || req.SkillName != "Cartography" || req.Proficiency != types.ProficiencyAdvanced {
		t.Fatalf("unexpected request %+v", req)
	}

	// Tab to the filled role: no draft there.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = model.Update(keyRune('d'))
	if cmd != nil {
		t.Fatalf("filled roles must not be draftable")
	}
}

func TestDetailPageDraftRequiresLead(t *testing.T) {
	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(100, 30)
	model.SetData(testMember(), detailMission(), nil)

	_, cmd := model.Update(keyRune('d'))
	if cmd != nil {
		t.Fatalf("only the lead may draft")
	}
}

func TestDetailPagePitchKeyOpensForm(t *testing.T) {
	model := NewDetailPageModel(DefaultStyles())
	model.SetSize(100, 30)
	model.SetData(testMember(), detailMission(), nil)

	_, cmd := model.Update(keyRune('p'))
	if cmd == nil {
		t.Fatalf("expected a pitch form request")
	}
	msg := cmd().(OpenPitchFormMsg)
	if msg.MissionID != "m1" || msg.MissionTitle != "Map the reach" {
		t.Fatalf("unexpected request %+v", msg)
	}
}
