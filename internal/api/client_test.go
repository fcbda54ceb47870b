package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"guild/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRequestCarriesAuthAndTracingHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]types.Mission{})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	client.SetToken("tok-123")

	_, err := client.ListMissions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]types.Skill{})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	_, err := client.ListSkills(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestTwoClientsAreIndependentSessions(t *testing.T) {
	a := New("http://localhost:1", 0, nil)
	b := New("http://localhost:1", 0, nil)
	a.SetToken("token-a")

	assert.Equal(t, "token-a", a.Token())
	assert.Empty(t, b.Token())

	a.ClearToken()
	assert.Empty(t, a.Token())
}

func TestLoginIsFormEncoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		// The wire field is username even though callers pass an email.
		assert.Equal(t, "astrid@guild.test", r.PostFormValue("username"))
		assert.Equal(t, "hunter2", r.PostFormValue("password"))
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-999"})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	token, err := client.Login(context.Background(), "astrid@guild.test", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-999", token)
}

func TestErrorCarriesBackendDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Role already filled"})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	_, err := client.DraftUserToRole(context.Background(), "r1", "u1")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Role already filled", Detail(err))
}

func TestErrorWithoutDetailFallsBackToGenericMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, "The request failed. Please try again.", Detail(err))
}

func TestUnauthorizedMatchesSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	client.SetToken("expired")
	_, err := client.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCancelledContextAbortsRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := New(server.URL, 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.ListMissions(ctx)
		errCh <- err
	}()

	<-started
	cancel()
	err := <-errCh
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpdateMissionStatusPatchesStatusField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/missions/m1/status", r.URL.Path)
		var body struct {
			Status types.MissionStatus `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, types.StatusActive, body.Status)
		_ = json.NewEncoder(w).Encode(types.Mission{ID: "m1", Status: body.Status})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	mission, err := client.UpdateMissionStatus(context.Background(), "m1", types.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, mission.Status)
}

func TestSearchUsersEncodesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/search", r.URL.Path)
		assert.Equal(t, "Cartography", r.URL.Query().Get("skill_name"))
		assert.Equal(t, "Advanced", r.URL.Query().Get("proficiency"))
		_ = json.NewEncoder(w).Encode([]types.User{{ID: "u1", Name: "Bran"}})
	}))
	defer server.Close()

	client := New(server.URL, 0, nil)
	users, err := client.SearchUsers(context.Background(), "Cartography", types.ProficiencyAdvanced)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Bran", users[0].Name)
}
