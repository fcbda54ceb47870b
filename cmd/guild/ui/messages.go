package ui

import (
	"guild/internal/api"
	"guild/internal/types"
)

// Pages never talk to the network. User actions that need the backend are
// emitted as request messages; the dashboard model owns the API client and
// answers by calling the page's setters with fresh data.

// MoveRequestMsg asks for a mission status transition. The target column is
// always the explicitly selected column in move mode, never another card.
type MoveRequestMsg struct {
	MissionID string
	Target    types.MissionStatus
}

// OpenMissionMsg asks to open the detail view for a mission.
type OpenMissionMsg struct{ MissionID string }

// CreateMissionRequestMsg submits the create-mission form.
type CreateMissionRequestMsg struct{ Payload api.MissionCreatePayload }

// PitchRequestMsg submits a pitch for a mission.
type PitchRequestMsg struct {
	MissionID string
	Text      string
}

// DraftRequestMsg drafts a user into a role.
type DraftRequestMsg struct {
	RoleID string
	UserID string
}

// DraftCandidatesRequestMsg asks for users matching a role's requirement,
// to populate the draft form.
type DraftCandidatesRequestMsg struct {
	RoleID      string
	SkillName   string
	Proficiency types.SkillProficiency
}

// InviteRequestMsg offers a role to a user.
type InviteRequestMsg struct {
	RoleID string
	UserID string
}

// RespondInviteRequestMsg accepts or declines an invite.
type RespondInviteRequestMsg struct {
	InviteID string
	Accept   bool
}

// MarkReadRequestMsg marks one notification read.
type MarkReadRequestMsg struct{ NotificationID string }

// SearchRequestMsg runs a roster search.
type SearchRequestMsg struct {
	SkillName   string
	Proficiency types.SkillProficiency
}

// RefreshRequestMsg asks the dashboard to refetch a resource.
type RefreshRequestMsg struct{ Resource Resource }

// CloseModalMsg dismisses the active modal form.
type CloseModalMsg struct{}

// Resource names a refetchable data set.
type Resource int

const (
	ResourceMissions Resource = iota
	ResourceInvites
	ResourceNotifications
)
