// This file implements the interactive dashboard using bubbletea. The
// dashboard model owns all data and network access; the ui pages only
// render and emit request messages.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"guild/cmd/guild/ui"
	"guild/internal/api"
	"guild/internal/board"
	"guild/internal/session"
	"guild/internal/types"
)

// tabID indexes the dashboard pages.
type tabID int

const (
	tabBoard tabID = iota
	tabMissions
	tabActionItems
	tabOpportunities
	tabInvites
	tabRoster
	tabNotifications
)

// tabName returns the tab label.
func tabName(t tabID) string {
	switch t {
	case tabBoard:
		return "Board"
	case tabMissions:
		return "Missions"
	case tabActionItems:
		return "Action Items"
	case tabOpportunities:
		return "Opportunities"
	case tabInvites:
		return "Invites"
	case tabRoster:
		return "Roster"
	case tabNotifications:
		return "Notifications"
	}
	return ""
}

// Result messages carry a generation stamp. A result whose generation is
// older than the current one belongs to an abandoned fetch and is dropped,
// so a slow stale response can never clobber newer state.
type (
	initialLoadMsg struct {
		missionsGen   int
		invitesGen    int
		notesGen      int
		missions      []types.Mission
		invites       []types.MissionInvite
		notifications []types.Notification
		missionsErr   error
		invitesErr    error
		notesErr      error
	}
	missionsLoadedMsg struct {
		gen      int
		missions []types.Mission
		err      error
	}
	invitesLoadedMsg struct {
		gen     int
		invites []types.MissionInvite
		err     error
	}
	notificationsLoadedMsg struct {
		gen      int
		notes    []types.Notification
		err      error
		fromPoll bool
	}
	actionItemsLoadedMsg struct {
		gen      int
		missions []types.Mission
		err      error
	}
	missionDetailLoadedMsg struct {
		mission *types.Mission
		pitches []types.MissionPitch
		err     error
	}
	transitionSettledMsg struct {
		gen int
		err error
	}
	inviteRespondedMsg struct {
		inviteID string
		accepted bool
		err      error
	}
	markReadSettledMsg struct {
		notificationID string
		err            error
	}
	searchSettledMsg struct {
		users []types.User
		err   error
	}
	draftCandidatesMsg struct {
		roleID string
		users  []types.User
		err    error
	}
	formSettledMsg struct {
		action string
		err    error
	}
	pollTickMsg struct{}
)

// pendingMove is the retained snapshot of an in-flight optimistic
// transition.
type pendingMove struct {
	update *board.Update[[]types.Mission]
	gen    int
}

// dashboardModel is the top-level bubbletea model.
type dashboardModel struct {
	styles ui.Styles
	keys   ui.KeyMap
	client *api.Client
	store  *session.Store
	logger *zap.Logger

	pollInterval time.Duration

	width  int
	height int

	activeTab  tabID
	showDetail bool
	modal      ui.ModalForm

	boardPage     ui.BoardPageModel
	missionsPage  ui.MissionsPageModel
	actionsPage   ui.MissionsPageModel
	detailPage    ui.DetailPageModel
	invitesPage   ui.InvitesPageModel
	oppsPage      ui.OpportunitiesPageModel
	rosterPage    ui.RosterPageModel
	notesPage     ui.NotificationsPageModel

	missions []types.Mission
	move     *pendingMove

	// rootCtx is cancelled when the program exits; every fetch derives
	// from it.
	rootCtx    context.Context
	rootCancel context.CancelFunc

	// gen guards against stale responses per resource; cancels aborts the
	// previous in-flight fetch when a newer one starts.
	gen     map[ui.Resource]int
	cancels map[ui.Resource]context.CancelFunc

	toast ui.Toast
}

// newDashboard builds the dashboard for an authenticated session.
func newDashboard(store *session.Store, styles ui.Styles, pollInterval time.Duration, logger *zap.Logger) dashboardModel {
	ctx, cancel := context.WithCancel(context.Background())
	return dashboardModel{
		styles:       styles,
		keys:         ui.DefaultKeyMap(),
		client:       store.Client(),
		store:        store,
		logger:       logger,
		pollInterval: pollInterval,
		boardPage:    ui.NewBoardPageModel(styles),
		missionsPage: ui.NewMissionsPageModel(styles),
		actionsPage:  ui.NewMissionsPageModel(styles),
		detailPage:   ui.NewDetailPageModel(styles),
		invitesPage:  ui.NewInvitesPageModel(styles),
		oppsPage:     ui.NewOpportunitiesPageModel(styles),
		rosterPage:   ui.NewRosterPageModel(styles),
		notesPage:    ui.NewNotificationsPageModel(styles),
		rootCtx:      ctx,
		rootCancel:   cancel,
		gen:          make(map[ui.Resource]int),
		cancels:      make(map[ui.Resource]context.CancelFunc),
		width:        ui.MinimumTerminalWidth,
		height:       ui.MinimumTerminalHeight,
	}
}

// tabs returns the pages visible to the session user.
func (m dashboardModel) tabs() []tabID {
	user := m.store.User()
	if user.IsCommander() {
		return []tabID{tabBoard, tabMissions, tabActionItems, tabOpportunities, tabInvites, tabRoster, tabNotifications}
	}
	return []tabID{tabBoard, tabMissions, tabOpportunities, tabInvites, tabNotifications}
}

// Init starts the parallel initial load and the notification poll.
func (m dashboardModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initialLoad()}
	if m.pollInterval > 0 {
		cmds = append(cmds, m.pollTick())
	}
	if m.store.User().IsCommander() {
		cmds = append(cmds, m.fetchActionItems())
	}
	return tea.Batch(cmds...)
}

// fetchContext bumps the resource's generation, cancels its previous
// in-flight fetch, and returns a fresh context for the new one.
func (m *dashboardModel) fetchContext(res ui.Resource) (context.Context, int) {
	if cancel := m.cancels[res]; cancel != nil {
		cancel()
	}
	ctx, cancel := context.WithCancel(m.rootCtx)
	m.cancels[res] = cancel
	m.gen[res]++
	return ctx, m.gen[res]
}

// initialLoad fetches missions, invites, and notifications concurrently.
// Each list fails independently; a failed list surfaces a toast and stays
// empty rather than blocking the others.
func (m *dashboardModel) initialLoad() tea.Cmd {
	ctx, missionsGen := m.fetchContext(ui.ResourceMissions)
	m.gen[ui.ResourceInvites]++
	invitesGen := m.gen[ui.ResourceInvites]
	m.gen[ui.ResourceNotifications]++
	notesGen := m.gen[ui.ResourceNotifications]
	client := m.client

	return func() tea.Msg {
		msg := initialLoadMsg{missionsGen: missionsGen, invitesGen: invitesGen, notesGen: notesGen}
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			msg.missions, msg.missionsErr = client.ListMissions(ctx)
			return nil
		})
		g.Go(func() error {
			msg.invites, msg.invitesErr = client.ListMyInvites(ctx)
			return nil
		})
		g.Go(func() error {
			msg.notifications, msg.notesErr = client.MyNotifications(ctx)
			return nil
		})
		_ = g.Wait()
		return msg
	}
}

func (m *dashboardModel) fetchMissions() tea.Cmd {
	ctx, gen := m.fetchContext(ui.ResourceMissions)
	client := m.client
	return func() tea.Msg {
		missions, err := client.ListMissions(ctx)
		return missionsLoadedMsg{gen: gen, missions: missions, err: err}
	}
}

func (m *dashboardModel) fetchInvites() tea.Cmd {
	ctx, gen := m.fetchContext(ui.ResourceInvites)
	client := m.client
	return func() tea.Msg {
		invites, err := client.ListMyInvites(ctx)
		return invitesLoadedMsg{gen: gen, invites: invites, err: err}
	}
}

func (m *dashboardModel) fetchNotifications(fromPoll bool) tea.Cmd {
	ctx, gen := m.fetchContext(ui.ResourceNotifications)
	client := m.client
	return func() tea.Msg {
		notes, err := client.MyNotifications(ctx)
		return notificationsLoadedMsg{gen: gen, notes: notes, err: err, fromPoll: fromPoll}
	}
}

// actionGen is a private generation counter for the action-items list.
const actionItemsResource ui.Resource = 100

func (m *dashboardModel) fetchActionItems() tea.Cmd {
	ctx, gen := m.fetchContext(actionItemsResource)
	client := m.client
	return func() tea.Msg {
		missions, err := client.ActionItems(ctx)
		return actionItemsLoadedMsg{gen: gen, missions: missions, err: err}
	}
}

func (m *dashboardModel) openMission(missionID string) tea.Cmd {
	ctx := m.rootCtx
	client := m.client
	user := m.store.User()
	return func() tea.Msg {
		mission, err := client.GetMission(ctx, missionID)
		if err != nil {
			return missionDetailLoadedMsg{err: err}
		}
		var pitches []types.MissionPitch
		if user != nil && (user.IsCommander() || user.ID == mission.LeadUserID) {
			// Pitch visibility is a lead/commander privilege; a failure
			// here degrades to an empty list rather than failing the view.
			if p, perr := client.ListPitches(ctx, missionID); perr == nil {
				pitches = p
			}
		}
		return missionDetailLoadedMsg{mission: mission, pitches: pitches}
	}
}

func (m *dashboardModel) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

// Update routes messages.
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case ui.ToastExpiredMsg:
		m.toast.Expire(msg)
		return m, nil

	case pollTickMsg:
		// Poll failures must not interrupt the UI; the settle handler
		// logs them without a toast.
		return m, tea.Batch(m.fetchNotifications(true), m.pollTick())

	case initialLoadMsg:
		return m.applyInitialLoad(msg)

	case missionsLoadedMsg:
		if msg.gen != m.gen[ui.ResourceMissions] {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("missions fetch failed", zap.Error(msg.err))
			return m, m.toast.Show(ui.ToastError, "An error occurred while fetching missions.")
		}
		m.setMissions(msg.missions)
		return m, nil

	case invitesLoadedMsg:
		if msg.gen != m.gen[ui.ResourceInvites] {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("invites fetch failed", zap.Error(msg.err))
			return m, m.toast.Show(ui.ToastError, "Failed to load invitations.")
		}
		m.invitesPage.SetData(msg.invites)
		return m, nil

	case notificationsLoadedMsg:
		if msg.gen != m.gen[ui.ResourceNotifications] {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("notifications fetch failed", zap.Error(msg.err), zap.Bool("poll", msg.fromPoll))
			if msg.fromPoll {
				return m, nil
			}
			return m, m.toast.Show(ui.ToastError, "Failed to load notifications.")
		}
		m.notesPage.SetData(msg.notes)
		return m, nil

	case actionItemsLoadedMsg:
		if msg.gen != m.gen[actionItemsResource] {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("action items fetch failed", zap.Error(msg.err))
			return m, m.toast.Show(ui.ToastError, "Failed to load action items.")
		}
		m.actionsPage.SetData(msg.missions)
		return m, nil

	case missionDetailLoadedMsg:
		if msg.err != nil {
			return m, m.toast.Show(ui.ToastError, api.Detail(msg.err))
		}
		m.detailPage.SetData(m.store.User(), msg.mission, msg.pitches)
		m.showDetail = true
		return m, nil

	case transitionSettledMsg:
		return m.settleTransition(msg)

	case inviteRespondedMsg:
		m.invitesPage.Settle(msg.inviteID, msg.err == nil)
		if msg.err != nil {
			return m, m.toast.Show(ui.ToastError, api.Detail(msg.err))
		}
		verb := "declined"
		if msg.accepted {
			verb = "accepted"
		}
		return m, m.toast.Show(ui.ToastSuccess, "Invitation "+verb+".")

	case markReadSettledMsg:
		m.notesPage.Settle(msg.notificationID, msg.err == nil)
		if msg.err != nil {
			return m, m.toast.Show(ui.ToastError, api.Detail(msg.err))
		}
		return m, nil

	case searchSettledMsg:
		if msg.err != nil {
			m.rosterPage.SearchFailed()
			return m, m.toast.Show(ui.ToastError, api.Detail(msg.err))
		}
		m.rosterPage.SetResults(msg.users)
		return m, nil

	case draftCandidatesMsg:
		if msg.err != nil {
			return m, m.toast.Show(ui.ToastError, api.Detail(msg.err))
		}
		m.modal = ui.NewDraftForm(msg.roleID, msg.users)
		return m, nil

	case formSettledMsg:
		return m.settleForm(msg)

	case ui.CloseModalMsg:
		m.modal = nil
		return m, nil
	}

	// Request messages emitted by pages and forms.
	if model, cmd, handled := m.handleRequests(msg); handled {
		return model, cmd
	}
	return m, nil
}

// handleRequests services the ui request messages.
func (m dashboardModel) handleRequests(msg tea.Msg) (tea.Model, tea.Cmd, bool) {
	ctx := m.rootCtx
	client := m.client

	switch msg := msg.(type) {
	case ui.MoveRequestMsg:
		model, cmd := m.startTransition(msg)
		return model, cmd, true

	case ui.OpenMissionMsg:
		return m, m.openMission(msg.MissionID), true

	case ui.OpenPitchFormMsg:
		m.modal = ui.NewPitchForm(msg.MissionID, msg.MissionTitle)
		return m, nil, true

	case ui.OpenInviteFormMsg:
		m.modal = ui.NewInviteForm(msg.User, m.store.User(), m.missions)
		return m, nil, true

	case ui.DraftCandidatesRequestMsg:
		roleID := msg.RoleID
		skill := msg.SkillName
		prof := msg.Proficiency
		return m, func() tea.Msg {
			users, err := client.SearchUsers(ctx, skill, prof)
			return draftCandidatesMsg{roleID: roleID, users: users, err: err}
		}, true

	case ui.SearchRequestMsg:
		skill := msg.SkillName
		prof := msg.Proficiency
		return m, func() tea.Msg {
			users, err := client.SearchUsers(ctx, skill, prof)
			return searchSettledMsg{users: users, err: err}
		}, true

	case ui.CreateMissionRequestMsg:
		payload := msg.Payload
		return m, func() tea.Msg {
			_, err := client.CreateMission(ctx, payload)
			return formSettledMsg{action: "create", err: err}
		}, true

	case ui.PitchRequestMsg:
		missionID, text := msg.MissionID, msg.Text
		return m, func() tea.Msg {
			_, err := client.Pitch(ctx, missionID, text)
			return formSettledMsg{action: "pitch", err: err}
		}, true

	case ui.DraftRequestMsg:
		roleID, userID := msg.RoleID, msg.UserID
		return m, func() tea.Msg {
			_, err := client.DraftUserToRole(ctx, roleID, userID)
			return formSettledMsg{action: "draft", err: err}
		}, true

	case ui.InviteRequestMsg:
		roleID, userID := msg.RoleID, msg.UserID
		return m, func() tea.Msg {
			_, err := client.CreateInvite(ctx, roleID, userID)
			return formSettledMsg{action: "invite", err: err}
		}, true

	case ui.RespondInviteRequestMsg:
		inviteID := msg.InviteID
		status := types.InviteDeclined
		if msg.Accept {
			status = types.InviteAccepted
		}
		accepted := msg.Accept
		return m, func() tea.Msg {
			_, err := client.RespondToInvite(ctx, inviteID, status)
			return inviteRespondedMsg{inviteID: inviteID, accepted: accepted, err: err}
		}, true

	case ui.MarkReadRequestMsg:
		id := msg.NotificationID
		return m, func() tea.Msg {
			_, err := client.MarkNotificationRead(ctx, id)
			return markReadSettledMsg{notificationID: id, err: err}
		}, true

	case ui.RefreshRequestMsg:
		switch msg.Resource {
		case ui.ResourceMissions:
			return m, m.fetchMissions(), true
		case ui.ResourceInvites:
			return m, m.fetchInvites(), true
		case ui.ResourceNotifications:
			return m, m.fetchNotifications(false), true
		}
		return m, nil, true
	}
	return m, nil, false
}

// startTransition runs the board's client-side gate synchronously, applies
// the optimistic status rewrite, and issues the remote patch. Only one
// transition may be in flight at a time.
func (m dashboardModel) startTransition(msg ui.MoveRequestMsg) (tea.Model, tea.Cmd) {
	if m.move != nil {
		return m, m.toast.Show(ui.ToastInfo, "A status change is already in flight.")
	}

	idx := -1
	for i := range m.missions {
		if m.missions[i].ID == msg.MissionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The list changed under the gesture; drop it silently.
		return m, nil
	}

	user := m.store.User()
	noop, err := board.CanTransition(user, &m.missions[idx], msg.Target)
	if noop {
		return m, nil
	}
	if err != nil {
		return m, m.toast.Show(ui.ToastError, "Only the mission lead can change the status.")
	}

	update := board.Begin(m.missions, board.CloneMissions, func(list []types.Mission) []types.Mission {
		list[idx].Status = msg.Target
		return list
	})
	m.move = &pendingMove{update: update, gen: m.gen[ui.ResourceMissions]}
	m.setMissions(update.Applied())

	ctx := m.rootCtx
	client := m.client
	gen := m.move.gen
	missionID, target := msg.MissionID, msg.Target
	return m, func() tea.Msg {
		_, err := client.UpdateMissionStatus(ctx, missionID, target)
		return transitionSettledMsg{gen: gen, err: err}
	}
}

// settleTransition commits or reverts the pending optimistic move.
func (m dashboardModel) settleTransition(msg transitionSettledMsg) (tea.Model, tea.Cmd) {
	if m.move == nil {
		return m, nil
	}
	move := m.move
	m.move = nil

	// If the mission list was refetched while the patch was in flight the
	// snapshot no longer describes current state; the fresh fetch wins.
	if msg.gen != m.gen[ui.ResourceMissions] {
		return m, nil
	}

	if msg.err != nil {
		m.logger.Warn("status transition failed, reverting", zap.Error(msg.err))
		m.setMissions(move.update.Revert())
		return m, m.toast.Show(ui.ToastError, "Failed to update mission status. Reverting.")
	}
	m.setMissions(move.update.Commit())
	return m, m.toast.Show(ui.ToastSuccess, "Mission status updated!")
}

// settleForm resolves a modal submission.
func (m dashboardModel) settleForm(msg formSettledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.modal != nil {
			m.modal.Fail(api.Detail(msg.err))
		}
		return m, nil
	}

	m.modal = nil
	switch msg.action {
	case "create":
		return m, tea.Batch(m.toast.Show(ui.ToastSuccess, "Mission proposed."), m.fetchMissions())
	case "pitch":
		return m, m.toast.Show(ui.ToastSuccess, "Pitch submitted.")
	case "draft":
		cmds := []tea.Cmd{m.toast.Show(ui.ToastSuccess, "Member drafted."), m.fetchMissions()}
		if mission := m.detailPage.Mission(); mission != nil {
			cmds = append(cmds, m.openMission(mission.ID))
		}
		return m, tea.Batch(cmds...)
	case "invite":
		return m, m.toast.Show(ui.ToastSuccess, "Invitation sent.")
	}
	return m, nil
}

// applyInitialLoad installs the parallel fetch results. Each list carries
// its own generation stamp; a list superseded by a later fetch is skipped
// without touching the others.
func (m dashboardModel) applyInitialLoad(msg initialLoadMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.missionsGen == m.gen[ui.ResourceMissions] {
		if msg.missionsErr != nil {
			m.logger.Warn("missions fetch failed", zap.Error(msg.missionsErr))
			cmds = append(cmds, m.toast.Show(ui.ToastError, "An error occurred while fetching missions."))
		} else {
			m.setMissions(msg.missions)
		}
	}
	if msg.invitesGen == m.gen[ui.ResourceInvites] {
		if msg.invitesErr != nil {
			m.logger.Warn("invites fetch failed", zap.Error(msg.invitesErr))
		} else {
			m.invitesPage.SetData(msg.invites)
		}
	}
	if msg.notesGen == m.gen[ui.ResourceNotifications] {
		if msg.notesErr != nil {
			m.logger.Warn("notifications fetch failed", zap.Error(msg.notesErr))
		} else {
			m.notesPage.SetData(msg.notifications)
		}
	}
	return m, tea.Batch(cmds...)
}

// setMissions installs a mission list wherever it is displayed.
func (m *dashboardModel) setMissions(missions []types.Mission) {
	m.missions = missions
	user := m.store.User()
	m.boardPage.SetData(user, missions)
	m.missionsPage.SetData(missions)
	m.oppsPage.SetData(user, missions)
}

func (m *dashboardModel) setSize(width, height int) {
	m.width = width
	m.height = height
	content := ui.ContentHeight(height)
	m.boardPage.SetSize(width, content)
	m.missionsPage.SetSize(width, content)
	m.actionsPage.SetSize(width, content)
	m.detailPage.SetSize(width, height)
	m.invitesPage.SetSize(width, content)
	m.oppsPage.SetSize(width, content)
	m.rosterPage.SetSize(width, content)
	m.notesPage.SetSize(width, content)
}

// updateKeys routes key input: modal first, then detail, then the page.
func (m dashboardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.rootCancel()
		return m, tea.Quit
	}

	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	if m.showDetail {
		if msg.String() == "esc" {
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detailPage, cmd = m.detailPage.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		// The roster page owns its text input; q must stay typeable there.
		if m.activeTab != tabRoster {
			m.rootCancel()
			return m, tea.Quit
		}
	case "tab":
		if m.activeTab != tabBoard || m.boardPage.Moving() == nil {
			m.cycleTab(1)
			return m, nil
		}
	case "shift+tab":
		if m.activeTab != tabBoard || m.boardPage.Moving() == nil {
			m.cycleTab(-1)
			return m, nil
		}
	case "n":
		if m.activeTab == tabBoard && m.store.User().IsCommander() {
			m.modal = ui.NewCreateMissionForm()
			return m, nil
		}
	case "r":
		if m.activeTab != tabRoster {
			return m, m.refreshActive()
		}
	}

	return m.updateActivePage(msg)
}

func (m *dashboardModel) cycleTab(delta int) {
	visible := m.tabs()
	cur := 0
	for i, t := range visible {
		if t == m.activeTab {
			cur = i
			break
		}
	}
	m.activeTab = visible[(cur+delta+len(visible))%len(visible)]
}

func (m dashboardModel) refreshActive() tea.Cmd {
	switch m.activeTab {
	case tabBoard, tabMissions, tabOpportunities:
		return m.fetchMissions()
	case tabActionItems:
		return m.fetchActionItems()
	case tabInvites:
		return m.fetchInvites()
	case tabNotifications:
		return m.fetchNotifications(false)
	}
	return nil
}

func (m dashboardModel) updateActivePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabBoard:
		m.boardPage, cmd = m.boardPage.Update(msg)
	case tabMissions:
		m.missionsPage, cmd = m.missionsPage.Update(msg)
	case tabActionItems:
		m.actionsPage, cmd = m.actionsPage.Update(msg)
	case tabOpportunities:
		m.oppsPage, cmd = m.oppsPage.Update(msg)
	case tabInvites:
		m.invitesPage, cmd = m.invitesPage.Update(msg)
	case tabRoster:
		m.rosterPage, cmd = m.rosterPage.Update(msg)
	case tabNotifications:
		m.notesPage, cmd = m.notesPage.Update(msg)
	}
	return m, cmd
}

// View renders the dashboard chrome and the active page.
func (m dashboardModel) View() string {
	user := m.store.User()

	header := m.styles.Header.Render("THE GUILD")
	if user != nil {
		badge := ""
		if unread := m.notesPage.Unread(); unread > 0 {
			badge = "  " + m.styles.BadgeUnread.Render(fmt.Sprintf("✉ %d", unread))
		}
		header += m.styles.Muted.Render(fmt.Sprintf("  %s · %s", user.Name, user.Role)) + badge
	}

	var tabViews []string
	for _, t := range m.tabs() {
		if t == m.activeTab {
			tabViews = append(tabViews, m.styles.TabActive.Render(tabName(t)))
		} else {
			tabViews = append(tabViews, m.styles.TabInactive.Render(tabName(t)))
		}
	}
	tabBar := m.styles.TabBar.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))

	var content string
	switch {
	case m.modal != nil:
		content = lipgloss.Place(m.width, ui.ContentHeight(m.height), lipgloss.Center, lipgloss.Center,
			m.modal.View(m.styles, m.width))
	case m.showDetail:
		content = m.detailPage.View()
	default:
		content = m.activePageView()
	}

	toast := m.toast.View(m.styles)
	footer := m.styles.Footer.Render("tab: switch page  r: refresh  q: quit  ?: help")

	return strings.Join([]string{header, tabBar, content, toast, footer}, "\n")
}

func (m dashboardModel) activePageView() string {
	switch m.activeTab {
	case tabBoard:
		return m.boardPage.View()
	case tabMissions:
		return m.missionsPage.View()
	case tabActionItems:
		return m.actionsPage.View()
	case tabOpportunities:
		return m.oppsPage.View()
	case tabInvites:
		return m.invitesPage.View()
	case tabRoster:
		return m.rosterPage.View()
	case tabNotifications:
		return m.notesPage.View()
	}
	return ""
}

// runDashboard starts the interactive program.
func runDashboard(store *session.Store, styles ui.Styles, pollInterval time.Duration, logger *zap.Logger) error {
	model := newDashboard(store, styles, pollInterval, logger)
	defer model.rootCancel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
