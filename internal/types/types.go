// Package types defines the Guild wire records shared by the API client,
// the session store, and the dashboard. Field tags mirror the backend's
// snake_case JSON exactly; nothing here is persisted client-side.
package types

// UserRole is the account-level permission tier.
type UserRole string

const (
	RoleMember  UserRole = "Member"
	RoleManager UserRole = "Manager"
	RoleAdmin   UserRole = "Admin"
)

// SkillProficiency grades a skill on the four-step ladder used in role
// requirements and talent search.
type SkillProficiency string

const (
	ProficiencyBeginner     SkillProficiency = "Beginner"
	ProficiencyIntermediate SkillProficiency = "Intermediate"
	ProficiencyAdvanced     SkillProficiency = "Advanced"
	ProficiencyExpert       SkillProficiency = "Expert"
)

// Valid reports whether p is one of the four known proficiencies.
func (p SkillProficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// AllProficiencies lists proficiencies in ascending order.
var AllProficiencies = []SkillProficiency{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
	ProficiencyExpert,
}

// MissionStatus is the lifecycle state of a mission. Exactly three values
// exist; no other value is ever displayed or sent.
type MissionStatus string

const (
	StatusProposed  MissionStatus = "Proposed"
	StatusActive    MissionStatus = "Active"
	StatusCompleted MissionStatus = "Completed"
)

// AllMissionStatuses lists statuses in board column order.
var AllMissionStatuses = []MissionStatus{
	StatusProposed,
	StatusActive,
	StatusCompleted,
}

// Valid reports whether s is one of the three known statuses.
func (s MissionStatus) Valid() bool {
	switch s {
	case StatusProposed, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// PitchStatus is the review state of a pitch.
type PitchStatus string

const (
	PitchSubmitted PitchStatus = "Submitted"
	PitchAccepted  PitchStatus = "Accepted"
	PitchRejected  PitchStatus = "Rejected"
)

// InviteStatus is the response state of a role invitation.
type InviteStatus string

const (
	InvitePending  InviteStatus = "Pending"
	InviteAccepted InviteStatus = "Accepted"
	InviteDeclined InviteStatus = "Declined"
)

// Skill is a named entry in the skill ledger.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserSkill pairs a skill with the holder's proficiency.
type UserSkill struct {
	Skill       Skill            `json:"skill"`
	Proficiency SkillProficiency `json:"proficiency"`
}

// User is a guild member account.
type User struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Title    string      `json:"title"`
	PhotoURL string      `json:"photo_url,omitempty"`
	Role     UserRole    `json:"role"`
	Skills   []UserSkill `json:"skills"`
}

// IsCommander reports whether the user holds elevated dashboard permissions
// (mission creation, full board visibility, roster search).
func (u *User) IsCommander() bool {
	return u != nil && (u.Role == RoleManager || u.Role == RoleAdmin)
}

// HasSkill reports whether the user holds the named skill at or above the
// given proficiency.
func (u *User) HasSkill(skillID string, min SkillProficiency) bool {
	if u == nil {
		return false
	}
	for _, s := range u.Skills {
		if s.Skill.ID == skillID && proficiencyRank(s.Proficiency) >= proficiencyRank(min) {
			return true
		}
	}
	return false
}

func proficiencyRank(p SkillProficiency) int {
	for i, known := range AllProficiencies {
		if known == p {
			return i
		}
	}
	return -1
}

// Mission is a project-like unit of work. The client only ever holds a
// transient copy; the backend owns the record.
type Mission struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	LeadUserID  string         `json:"lead_user_id"`
	Status      MissionStatus  `json:"status"`
	CreatedAt   string         `json:"created_at"`
	Lead        User           `json:"lead"`
	Roles       []MissionRole  `json:"roles"`
	Pitches     []MissionPitch `json:"pitches"`
}

// HasAssignee reports whether userID fills any role on the mission.
func (m *Mission) HasAssignee(userID string) bool {
	for i := range m.Roles {
		if m.Roles[i].Assignee != nil && m.Roles[i].Assignee.ID == userID {
			return true
		}
	}
	return false
}

// MissionRole is a position within a mission. A role is unfilled until
// Assignee is set.
type MissionRole struct {
	ID                  string           `json:"id"`
	MissionID           string           `json:"mission_id"`
	RoleDescription     string           `json:"role_description"`
	SkillIDRequired     string           `json:"skill_id_required"`
	ProficiencyRequired SkillProficiency `json:"proficiency_required"`
	Assignee            *User            `json:"assignee,omitempty"`
	RequiredSkill       Skill            `json:"required_skill"`
}

// Filled reports whether the role has an assignee.
func (r *MissionRole) Filled() bool {
	return r.Assignee != nil
}

// MissionPitch is a member's unsolicited application to join a mission.
type MissionPitch struct {
	ID        string      `json:"id"`
	MissionID string      `json:"mission_id"`
	UserID    string      `json:"user_id"`
	PitchText string      `json:"pitch_text"`
	Status    PitchStatus `json:"status"`
	User      User        `json:"user"`
}

// MissionInvite is a lead-initiated offer of a specific role to a specific
// user.
type MissionInvite struct {
	ID           string       `json:"id"`
	MissionRole  InvitedRole  `json:"mission_role"`
	InvitedUser  User         `json:"invited_user"`
	InvitingUser User         `json:"inviting_user"`
	Status       InviteStatus `json:"status"`
	CreatedAt    string       `json:"created_at"`
}

// InvitedRole is a MissionRole plus the mission summary the invite listing
// endpoint embeds so the card can show a title.
type InvitedRole struct {
	MissionRole
	Mission *MissionSummary `json:"mission,omitempty"`
}

// MissionSummary is the shallow mission reference embedded in invites.
type MissionSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Notification is a user-facing event record.
type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
