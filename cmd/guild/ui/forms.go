package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"guild/internal/api"
	"guild/internal/types"
)

// ModalForm is a short-lived modal workflow: open, edit, validate, submit
// once, close on success. Forms never keep state between opens; each open
// constructs a fresh value. While a submission is in flight the form is
// disabled; on failure the server's message is shown inline and the form
// stays open for correction.
type ModalForm interface {
	Update(msg tea.Msg) (ModalForm, tea.Cmd)
	View(styles Styles, width int) string
	// Fail re-enables the form with an inline error after a rejected
	// submission.
	Fail(detail string)
}

// closeCmd dismisses the active modal.
func closeCmd() tea.Msg { return CloseModalMsg{} }

// --- Create mission ---

// CreateMissionForm proposes a new mission with one or more roles.
type CreateMissionForm struct {
	keys KeyMap

	title       textinput.Model
	description textinput.Model
	roleDesc    textinput.Model
	roleSkill   textinput.Model
	proficiency int
	stagedRoles []api.RolePayload

	focus      int
	submitting bool
	errMsg     string
}

// NewCreateMissionForm returns a fresh create-mission form.
func NewCreateMissionForm() *CreateMissionForm {
	f := &CreateMissionForm{keys: DefaultKeyMap()}
	f.title = newField("mission title", 80)
	f.description = newField("description (markdown, optional)", 400)
	f.roleDesc = newField("role description", 120)
	f.roleSkill = newField("required skill id", 64)
	f.title.Focus()
	return f
}

func newField(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func (f *CreateMissionForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.roleDesc, &f.roleSkill}
}

func (f *CreateMissionForm) setFocus(idx int) {
	inputs := f.inputs()
	for i, in := range inputs {
		if i == idx {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	f.focus = idx
}

// Fail re-enables the form with the server's message.
func (f *CreateMissionForm) Fail(detail string) {
	f.submitting = false
	f.errMsg = detail
}

// Update handles form input.
func (f *CreateMissionForm) Update(msg tea.Msg) (ModalForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || f.submitting {
		return f, nil
	}

	switch {
	case key.Matches(keyMsg, f.keys.Back):
		return f, closeCmd
	case keyMsg.String() == "tab", keyMsg.String() == "down":
		f.setFocus((f.focus + 1) % len(f.inputs()))
		return f, nil
	case keyMsg.String() == "shift+tab", keyMsg.String() == "up":
		f.setFocus((f.focus + len(f.inputs()) - 1) % len(f.inputs()))
		return f, nil
	case keyMsg.String() == "ctrl+p":
		f.proficiency = (f.proficiency + 1) % len(types.AllProficiencies)
		return f, nil
	case keyMsg.String() == "ctrl+a":
		f.stageRole()
		return f, nil
	case keyMsg.String() == "enter":
		return f.submit()
	}

	var cmd tea.Cmd
	in := f.inputs()[f.focus]
	*in, cmd = in.Update(keyMsg)
	return f, cmd
}

// stageRole appends the current role fields to the staged list and clears
// them for the next entry.
func (f *CreateMissionForm) stageRole() {
	desc := strings.TrimSpace(f.roleDesc.Value())
	skill := strings.TrimSpace(f.roleSkill.Value())
	if desc == "" || skill == "" {
		f.errMsg = "A role needs a description and a skill."
		return
	}
	f.stagedRoles = append(f.stagedRoles, api.RolePayload{
		RoleDescription:     desc,
		SkillIDRequired:     skill,
		ProficiencyRequired: types.AllProficiencies[f.proficiency],
	})
	f.roleDesc.SetValue("")
	f.roleSkill.SetValue("")
	f.errMsg = ""
}

func (f *CreateMissionForm) submit() (ModalForm, tea.Cmd) {
	// An unstaged but complete role entry counts as the last role.
	if strings.TrimSpace(f.roleDesc.Value()) != "" || strings.TrimSpace(f.roleSkill.Value()) != "" {
		before := len(f.stagedRoles)
		f.stageRole()
		if len(f.stagedRoles) == before {
			return f, nil
		}
	}

	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.errMsg = "Title is required."
		return f, nil
	}
	if len(f.stagedRoles) == 0 {
		f.errMsg = "At least one role is required."
		return f, nil
	}

	f.submitting = true
	f.errMsg = ""
	payload := api.MissionCreatePayload{
		Title:       title,
		Description: strings.TrimSpace(f.description.Value()),
		Roles:       f.stagedRoles,
	}
	return f, func() tea.Msg { return CreateMissionRequestMsg{Payload: payload} }
}

// View renders the form.
func (f *CreateMissionForm) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Propose New Mission") + "\n")
	sb.WriteString(styles.FormLabel.Render("Title") + "\n" + f.title.View() + "\n")
	sb.WriteString(styles.FormLabel.Render("Description") + "\n" + f.description.View() + "\n\n")

	sb.WriteString(styles.FormLabel.Render(fmt.Sprintf("Roles (%d staged, ctrl+a to add another)", len(f.stagedRoles))) + "\n")
	for _, r := range f.stagedRoles {
		sb.WriteString(styles.Muted.Render(fmt.Sprintf("  · %s (%s %s)", r.RoleDescription, r.SkillIDRequired, r.ProficiencyRequired)) + "\n")
	}
	sb.WriteString(f.roleDesc.View() + "\n")
	sb.WriteString(f.roleSkill.View() + "  " + styles.Badge.Render(string(types.AllProficiencies[f.proficiency])) +
		styles.Muted.Render("  ctrl+p: proficiency") + "\n")

	renderFormFooter(&sb, styles, f.submitting, f.errMsg, "enter: create  esc: cancel")
	return styles.Modal.Width(ModalWidth(width)).Render(sb.String())
}

// --- Pitch ---

// PitchForm submits a pitch for one mission.
type PitchForm struct {
	keys KeyMap

	missionID    string
	missionTitle string
	text         textinput.Model

	submitting bool
	errMsg     string
}

// NewPitchForm returns a fresh pitch form for a mission.
func NewPitchForm(missionID, missionTitle string) *PitchForm {
	f := &PitchForm{keys: DefaultKeyMap(), missionID: missionID, missionTitle: missionTitle}
	f.text = newField("why you are the right fit", 500)
	f.text.Width = 56
	f.text.Focus()
	return f
}

// Fail re-enables the form with the server's message.
func (f *PitchForm) Fail(detail string) {
	f.submitting = false
	f.errMsg = detail
}

// Update handles form input.
func (f *PitchForm) Update(msg tea.Msg) (ModalForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || f.submitting {
		return f, nil
	}

	switch {
	case key.Matches(keyMsg, f.keys.Back):
		return f, closeCmd
	case keyMsg.String() == "enter":
		text := strings.TrimSpace(f.text.Value())
		if text == "" {
			f.errMsg = "A pitch needs some text."
			return f, nil
		}
		f.submitting = true
		f.errMsg = ""
		req := PitchRequestMsg{MissionID: f.missionID, Text: text}
		return f, func() tea.Msg { return req }
	}

	var cmd tea.Cmd
	f.text, cmd = f.text.Update(keyMsg)
	return f, cmd
}

// View renders the form.
func (f *PitchForm) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Pitch for "+f.missionTitle) + "\n")
	sb.WriteString(f.text.View() + "\n")
	renderFormFooter(&sb, styles, f.submitting, f.errMsg, "enter: submit  esc: cancel")
	return styles.Modal.Width(ModalWidth(width)).Render(sb.String())
}

// --- Draft member ---

// DraftForm picks one candidate for an unfilled role from the users whose
// skills match the role's requirement.
type DraftForm struct {
	keys KeyMap

	roleID     string
	candidates []types.User
	cursor     int

	submitting bool
	errMsg     string
}

// NewDraftForm returns a fresh draft form over pre-fetched candidates.
func NewDraftForm(roleID string, candidates []types.User) *DraftForm {
	return &DraftForm{keys: DefaultKeyMap(), roleID: roleID, candidates: candidates}
}

// Fail re-enables the form with the server's message.
func (f *DraftForm) Fail(detail string) {
	f.submitting = false
	f.errMsg = detail
}

// Update handles form input.
func (f *DraftForm) Update(msg tea.Msg) (ModalForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || f.submitting {
		return f, nil
	}

	switch {
	case key.Matches(keyMsg, f.keys.Back):
		return f, closeCmd
	case key.Matches(keyMsg, f.keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(keyMsg, f.keys.Down):
		if f.cursor < len(f.candidates)-1 {
			f.cursor++
		}
	case key.Matches(keyMsg, f.keys.Select):
		if f.cursor < len(f.candidates) {
			f.submitting = true
			f.errMsg = ""
			req := DraftRequestMsg{RoleID: f.roleID, UserID: f.candidates[f.cursor].ID}
			return f, func() tea.Msg { return req }
		}
	}
	return f, nil
}

// View renders the candidate picker.
func (f *DraftForm) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Draft Member") + "\n")
	if len(f.candidates) == 0 {
		sb.WriteString(styles.Muted.Render("No matching members found.") + "\n")
	}
	for i, user := range f.candidates {
		marker := "  "
		if i == f.cursor {
			marker = styles.RowSelected.Render("▸ ")
		}
		sb.WriteString(marker + fmt.Sprintf("%s %s", user.Name, styles.Muted.Render("("+user.Title+")")) + "\n")
	}
	renderFormFooter(&sb, styles, f.submitting, f.errMsg, "enter: draft  esc: cancel")
	return styles.Modal.Width(ModalWidth(width)).Render(sb.String())
}

// --- Invite ---

// inviteRole is one open role on a mission the caller leads.
type inviteRole struct {
	missionTitle string
	role         types.MissionRole
}

// InviteForm offers one of the caller's open roles to a chosen user.
type InviteForm struct {
	keys KeyMap

	user   types.User
	roles  []inviteRole
	cursor int

	submitting bool
	errMsg     string
}

// NewInviteForm returns a fresh invite form for user, offering the
// unfilled roles on missions the lead runs.
func NewInviteForm(user types.User, lead *types.User, missions []types.Mission) *InviteForm {
	f := &InviteForm{keys: DefaultKeyMap(), user: user}
	for _, mission := range missions {
		if lead == nil || mission.LeadUserID != lead.ID {
			continue
		}
		for _, role := range mission.Roles {
			if !role.Filled() {
				f.roles = append(f.roles, inviteRole{missionTitle: mission.Title, role: role})
			}
		}
	}
	return f
}

// Fail re-enables the form with the server's message.
func (f *InviteForm) Fail(detail string) {
	f.submitting = false
	f.errMsg = detail
}

// Update handles form input.
func (f *InviteForm) Update(msg tea.Msg) (ModalForm, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || f.submitting {
		return f, nil
	}

	switch {
	case key.Matches(keyMsg, f.keys.Back):
		return f, closeCmd
	case key.Matches(keyMsg, f.keys.Up):
		if f.cursor > 0 {
			f.cursor--
		}
	case key.Matches(keyMsg, f.keys.Down):
		if f.cursor < len(f.roles)-1 {
			f.cursor++
		}
	case key.Matches(keyMsg, f.keys.Select):
		if f.cursor < len(f.roles) {
			f.submitting = true
			f.errMsg = ""
			req := InviteRequestMsg{RoleID: f.roles[f.cursor].role.ID, UserID: f.user.ID}
			return f, func() tea.Msg { return req }
		}
	}
	return f, nil
}

// View renders the role picker.
func (f *InviteForm) View(styles Styles, width int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Invite "+f.user.Name) + "\n")
	if len(f.roles) == 0 {
		sb.WriteString(styles.Muted.Render("You have no open roles to offer.") + "\n")
	}
	for i, r := range f.roles {
		marker := "  "
		if i == f.cursor {
			marker = styles.RowSelected.Render("▸ ")
		}
		sb.WriteString(marker + fmt.Sprintf("%s · %s %s",
			truncate(r.missionTitle, 28),
			r.role.RoleDescription,
			styles.Muted.Render(fmt.Sprintf("(%s %s)", r.role.RequiredSkill.Name, r.role.ProficiencyRequired))) + "\n")
	}
	renderFormFooter(&sb, styles, f.submitting, f.errMsg, "enter: invite  esc: cancel")
	return styles.Modal.Width(ModalWidth(width)).Render(sb.String())
}

// renderFormFooter writes the shared pending/error/hint footer.
func renderFormFooter(sb *strings.Builder, styles Styles, submitting bool, errMsg, hint string) {
	if errMsg != "" {
		sb.WriteString("\n" + styles.FormError.Render(errMsg) + "\n")
	}
	if submitting {
		sb.WriteString("\n" + styles.Muted.Render("Submitting…"))
	} else {
		sb.WriteString("\n" + styles.Muted.Render(hint))
	}
}
