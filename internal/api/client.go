// Package api is the typed client for the Guild REST backend. A Client
// carries its own bearer token and HTTP client; there is no shared default
// header state, so two Clients are two independent sessions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guild/internal/types"
)

// DefaultTimeout bounds any call whose context has no deadline of its own.
const DefaultTimeout = 30 * time.Second

// Client talks to one Guild backend with one credential.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a Client for the given base URL. A zero timeout falls back to
// DefaultTimeout. logger may be zap.NewNop() in tests.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken detaches the bearer token.
func (c *Client) ClearToken() { c.token = "" }

// Token returns the currently attached bearer token, if any.
func (c *Client) Token() string { return c.token }

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one JSON round trip. body (when non-nil) is marshalled as
// JSON; out (when non-nil) receives the decoded response. Non-2xx statuses
// return *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.prepare(req)

	return c.send(req, out)
}

// doForm performs one form-encoded round trip (the login endpoint follows
// the OAuth2 password-grant form convention, not JSON).
func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.prepare(req)

	return c.send(req, out)
}

// prepare attaches the auth and tracing headers shared by every request.
func (c *Client) prepare(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --- Missions ---

// ListMissions fetches every mission visible to the caller.
func (c *Client) ListMissions(ctx context.Context) ([]types.Mission, error) {
	var missions []types.Mission
	if err := c.do(ctx, http.MethodGet, "/missions/", nil, nil, &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

// GetMission fetches a single mission by id.
func (c *Client) GetMission(ctx context.Context, missionID string) (*types.Mission, error) {
	var mission types.Mission
	if err := c.do(ctx, http.MethodGet, "/missions/"+missionID, nil, nil, &mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

// ActionItems fetches missions awaiting reviewer attention.
func (c *Client) ActionItems(ctx context.Context) ([]types.Mission, error) {
	var missions []types.Mission
	if err := c.do(ctx, http.MethodGet, "/missions/action-items", nil, nil, &missions); err != nil {
		return nil, err
	}
	return missions, nil
}

// RolePayload describes one role on a new mission.
type RolePayload struct {
	RoleDescription     string                 `json:"role_description"`
	SkillIDRequired     string                 `json:"skill_id_required"`
	ProficiencyRequired types.SkillProficiency `json:"proficiency_required"`
}

// MissionCreatePayload is the body for CreateMission.
type MissionCreatePayload struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Budget      float64       `json:"budget,omitempty"`
	StartDate   string        `json:"start_date,omitempty"`
	EndDate     string        `json:"end_date,omitempty"`
	Roles       []RolePayload `json:"roles"`
}

// CreateMission proposes a new mission.
func (c *Client) CreateMission(ctx context.Context, payload MissionCreatePayload) (*types.Mission, error) {
	var mission types.Mission
	if err := c.do(ctx, http.MethodPost, "/missions/", nil, payload, &mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

// UpdateMissionStatus patches a mission's status. The caller is responsible
// for the lead-only rule; the backend re-checks it.
func (c *Client) UpdateMissionStatus(ctx context.Context, missionID string, status types.MissionStatus) (*types.Mission, error) {
	body := struct {
		Status types.MissionStatus `json:"status"`
	}{Status: status}
	var mission types.Mission
	if err := c.do(ctx, http.MethodPatch, "/missions/"+missionID+"/status", nil, body, &mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

// --- Auth & profile ---

// Login exchanges credentials for a bearer token. It does not attach the
// token; that is the session store's decision.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.doForm(ctx, "/auth/login", form, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// RegisterPayload is the body for Register.
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me resolves the profile behind the attached token.
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Users & talent ---

// ListUsers fetches the full roster.
func (c *Client) ListUsers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SearchUsers finds users holding a skill at a proficiency.
func (c *Client) SearchUsers(ctx context.Context, skillName string, proficiency types.SkillProficiency) ([]types.User, error) {
	query := url.Values{}
	query.Set("skill_name", skillName)
	query.Set("proficiency", string(proficiency))

	var users []types.User
	if err := c.do(ctx, http.MethodGet, "/users/search", query, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// --- Skill ledger ---

// ListSkills fetches the skill ledger.
func (c *Client) ListSkills(ctx context.Context) ([]types.Skill, error) {
	var skills []types.Skill
	if err := c.do(ctx, http.MethodGet, "/skills/", nil, nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// AddMySkill adds a skill to the caller's profile.
func (c *Client) AddMySkill(ctx context.Context, skillID string, proficiency types.SkillProficiency) (*types.User, error) {
	body := struct {
		SkillID     string                 `json:"skill_id"`
		Proficiency types.SkillProficiency `json:"proficiency"`
	}{SkillID: skillID, Proficiency: proficiency}

	var user types.User
	if err := c.do(ctx, http.MethodPost, "/users/me/skills", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RemoveMySkill removes a skill from the caller's profile.
func (c *Client) RemoveMySkill(ctx context.Context, skillID string) (*types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodDelete, "/users/me/skills/"+skillID, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Workflow: pitches, drafts, invites ---

// Pitch submits an application to join a mission.
func (c *Client) Pitch(ctx context.Context, missionID, pitchText string) (*types.MissionPitch, error) {
	body := struct {
		PitchText string `json:"pitch_text"`
	}{PitchText: pitchText}

	var pitch types.MissionPitch
	if err := c.do(ctx, http.MethodPost, "/missions/"+missionID+"/pitch", nil, body, &pitch); err != nil {
		return nil, err
	}
	return &pitch, nil
}

// ListPitches fetches the pitches on a mission.
func (c *Client) ListPitches(ctx context.Context, missionID string) ([]types.MissionPitch, error) {
	var pitches []types.MissionPitch
	if err := c.do(ctx, http.MethodGet, "/missions/"+missionID+"/pitches/", nil, nil, &pitches); err != nil {
		return nil, err
	}
	return pitches, nil
}

// DraftUserToRole assigns a user directly to an unfilled role.
func (c *Client) DraftUserToRole(ctx context.Context, roleID, userID string) (*types.MissionRole, error) {
	body := struct {
		AssigneeUserID string `json:"assignee_user_id"`
	}{AssigneeUserID: userID}

	var role types.MissionRole
	if err := c.do(ctx, http.MethodPost, "/mission-roles/"+roleID+"/draft", nil, body, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateInvite offers a role to a user.
func (c *Client) CreateInvite(ctx context.Context, roleID, userID string) (*types.MissionInvite, error) {
	body := struct {
		MissionRoleID string `json:"mission_role_id"`
		InvitedUserID string `json:"invited_user_id"`
	}{MissionRoleID: roleID, InvitedUserID: userID}

	var invite types.MissionInvite
	if err := c.do(ctx, http.MethodPost, "/invites", nil, body, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListMyInvites fetches invites addressed to the caller.
func (c *Client) ListMyInvites(ctx context.Context) ([]types.MissionInvite, error) {
	var invites []types.MissionInvite
	if err := c.do(ctx, http.MethodGet, "/invites/me", nil, nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// RespondToInvite accepts or declines an invite.
func (c *Client) RespondToInvite(ctx context.Context, inviteID string, status types.InviteStatus) (*types.MissionInvite, error) {
	body := struct {
		Status types.InviteStatus `json:"status"`
	}{Status: status}

	var invite types.MissionInvite
	if err := c.do(ctx, http.MethodPatch, "/invites/"+inviteID, nil, body, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// --- Notifications ---

// MyNotifications fetches the caller's notifications.
func (c *Client) MyNotifications(ctx context.Context) ([]types.Notification, error) {
	var notes []types.Notification
	if err := c.do(ctx, http.MethodGet, "/users/me/notifications", nil, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*types.Notification, error) {
	var note types.Notification
	if err := c.do(ctx, http.MethodPatch, "/notifications/"+notificationID+"/read", nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
