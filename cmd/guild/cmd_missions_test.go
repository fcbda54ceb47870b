package main

import (
	"strings"
	"testing"

	"guild/internal/types"
)

func TestParseRoleFlags(t *testing.T) {
	roles, err := parseRoleFlags([]string{"Scout: eyes ahead:skill-1:Advanced"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(roles) != 1 {
		t.Fatalf("expected one role, got %d", len(roles))
	}
	// Descriptions may contain colons; only the last two split.
	if roles[0].RoleDescription != "Scout: eyes ahead" {
		t.Fatalf("unexpected description %q", roles[0].RoleDescription)
	}
	if roles[0].SkillIDRequired != "skill-1" || roles[0].ProficiencyRequired != types.ProficiencyAdvanced {
		t.Fatalf("unexpected role %+v", roles[0])
	}
}

func TestParseRoleFlagsRejectsUnknownProficiency(t *testing.T) {
	_, err := parseRoleFlags([]string{"Scout:skill-1:Grandmaster"})
	if err == nil {
		t.Fatalf("expected a typo'd proficiency to be rejected")
	}
	if !strings.Contains(err.Error(), "Grandmaster") {
		t.Fatalf("error must name the bad token, got %v", err)
	}
}

func TestParseRoleFlagsRejectsMalformedSpec(t *testing.T) {
	if _, err := parseRoleFlags([]string{"just-a-description"}); err == nil {
		t.Fatalf("expected a spec without colons to be rejected")
	}
}
