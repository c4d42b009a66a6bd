package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkade-games/adastra-server/internal/api"
	"github.com/arkade-games/adastra-server/internal/api/response"
	"github.com/arkade-games/adastra-server/internal/factory"
	"github.com/arkade-games/adastra-server/internal/services/session"
	"github.com/arkade-games/adastra-server/internal/storage/memory"
)

const sysopTokenValue = "test-sysop-token"

// testServer wires the router against in-memory storage
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionService: app.SessionService,
		PlayerService:  app.PlayerService,
		WorldService:   app.WorldService,
		AdminService:   app.AdminService,
		SysopToken:     session.NewSysopToken(sysopTokenValue),
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) sysopRequest(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Sysop-Token", sysopTokenValue)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// register creates an account and returns its token
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()
	body := map[string]string{"username": username, "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/register", body, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

// adminToken bootstraps the admin account and logs in
func (ts *testServer) adminToken(t *testing.T) string {
	t.Helper()
	require.NoError(t, ts.app.AccountService.EnsureAdmin(context.Background(), "admin", "admin123"))

	body := map[string]string{"username": "admin", "password": "admin123"}
	rr := ts.request(http.MethodPost, "/api/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

// Auth endpoints

func TestRegisterIssuesToken(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret123", "pilotName": "Ace"}
	rr := ts.request(http.MethodPost, "/api/register", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "alice", resp.Username)
	assert.Len(t, resp.Token, 64)
	assert.Nil(t, resp.IsAdmin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	body := map[string]string{"username": "alice", "password": "other"}
	rr := ts.request(http.MethodPost, "/api/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Username already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/register", map[string]string{"username": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Username and password required")
}

func TestRegisterTrimsWhitespace(t *testing.T) {
	ts := newTestServer(t)

	// Whitespace-only usernames are empty
	body := map[string]string{"username": "   ", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Username and password required")

	// Surrounding whitespace is stripped before the account is created
	body = map[string]string{"username": "  eve  ", "password": "secret123"}
	rr = ts.request(http.MethodPost, "/api/register", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/login", map[string]string{"username": "eve", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLoginReportsAdminFlag(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.IsAdmin)
	assert.False(t, *resp.IsAdmin)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid username or password")
}

func TestLoginBannedAccount(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	require.NoError(t, ts.app.AccountService.SetBanned(context.Background(), "alice", true))

	rr := ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Account is banned")
}

// Player endpoints

func TestGetPlayerRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/player", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "No token provided")
}

func TestGetPlayerRejectsUnknownToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/player", nil, "deadbeef")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid token")
}

func TestGetPlayerReturnsDefaults(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/player", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Unknown", resp.PilotName)
	assert.Equal(t, int64(10000), resp.Credits)
	assert.Equal(t, 50, resp.Turns)
	assert.Equal(t, 1, resp.CurrentSector)
	assert.Nil(t, resp.LastActivity)
	assert.False(t, resp.IsAdmin)
}

func TestPlayerSyncRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	body := map[string]any{
		"pilotName":     "Ace",
		"shipName":      "Nebula",
		"shipType":      "freighter",
		"shipVariant":   2,
		"credits":       4200,
		"turns":         33,
		"currentSector": 9,
		"cargo":         map[string]any{"ore": 5},
		"gameState":     map[string]any{"ship": map[string]any{"hull": 88}},
	}
	rr := ts.request(http.MethodPut, "/api/player", body, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/player", nil, token)
	var resp response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Ace", resp.PilotName)
	assert.Equal(t, int64(4200), resp.Credits)
	assert.Equal(t, 9, resp.CurrentSector)
	assert.Equal(t, float64(5), resp.Cargo["ore"])
	assert.NotNil(t, resp.LastActivity)
}

// World endpoints

func TestWorldSnapshotRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	// Empty before any write
	rr := ts.request(http.MethodGet, "/api/multiplayer", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "{}", rr.Body.String())

	body := map[string]any{"sectors": map[string]any{"1": map[string]any{"port": "A"}}}
	rr = ts.request(http.MethodPut, "/api/multiplayer", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/multiplayer", nil, "")
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snapshot))
	assert.Contains(t, snapshot, "sectors")
}

// Admin endpoints

func TestAdminEndpointsRejectNonAdmin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.request(http.MethodGet, "/api/admin/players", nil, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "Admin access required")
}

func TestAdminEndpointsAcceptSysopToken(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodGet, "/api/admin/players", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.PlayerList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Players, 1)
	assert.Equal(t, "alice", resp.Players[0].Username)
}

func TestAdminEndpointsRejectWrongSysopToken(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/players", nil)
	req.Header.Set("X-Sysop-Token", "wrong")
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminBearerTokenWorks(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken(t)

	rr := ts.request(http.MethodGet, "/api/admin/stats", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.sysopRequest(http.MethodGet, "/api/admin/player/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player not found")
}

func TestAdminUpdatePlayerHullMergesIntoGameState(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	// Sync a game state with a ship object and extra keys
	syncBody := map[string]any{
		"gameState": map[string]any{
			"ship":    map[string]any{"hull": 100, "fuel": 80, "shields": 60},
			"visited": []int{1, 2, 3},
		},
	}
	rr := ts.request(http.MethodPut, "/api/player", syncBody, token)
	require.Equal(t, http.StatusOK, rr.Code)

	// Nova scenario: admin repairs hull without touching the rest
	rr = ts.sysopRequest(http.MethodPut, "/api/admin/player/alice", map[string]any{"hull": 25})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.sysopRequest(http.MethodGet, "/api/admin/player/alice", nil)
	var player response.AdminPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))

	ship := player.GameState["ship"].(map[string]any)
	assert.Equal(t, float64(25), ship["hull"])
	assert.Equal(t, float64(80), ship["fuel"])
	assert.Equal(t, float64(60), ship["shields"])
	assert.Contains(t, player.GameState, "visited")
}

func TestAdminUpdatePlayerGameStateReplacement(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	syncBody := map[string]any{"gameState": map[string]any{"old": true}}
	rr := ts.request(http.MethodPut, "/api/player", syncBody, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.sysopRequest(http.MethodPut, "/api/admin/player/alice", map[string]any{
		"gameState": map[string]any{"new": true},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.sysopRequest(http.MethodGet, "/api/admin/player/alice", nil)
	var player response.AdminPlayer
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &player))
	assert.NotContains(t, player.GameState, "old")
	assert.Contains(t, player.GameState, "new")
}

func TestAdminKickForcesRelogin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodPost, "/api/admin/player/alice/kick", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player alice kicked")

	// Old token is dead
	rr = ts.request(http.MethodGet, "/api/player", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// But logging in again works: data survives a kick
	rr = ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminBanRevokesTokenAndBlocksLogin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodPost, "/api/admin/player/alice/ban", map[string]bool{"banned": true})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player alice banned")

	rr = ts.request(http.MethodGet, "/api/player", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminBanDefaultsToTrueOnEmptyBody(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodPost, "/api/admin/player/alice/ban", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "banned")

	rr = ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAdminBanUnknownUsernameSucceeds(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.sysopRequest(http.MethodPost, "/api/admin/player/ghost/ban", map[string]bool{"banned": true})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player ghost banned")
}

func TestAdminUnban(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodPost, "/api/admin/player/alice/ban", map[string]bool{"banned": true})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.sysopRequest(http.MethodPost, "/api/admin/player/alice/ban", map[string]bool{"banned": false})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player alice unbanned")

	rr = ts.request(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "alice")

	rr := ts.sysopRequest(http.MethodDelete, "/api/admin/player/alice", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player alice deleted")

	rr = ts.request(http.MethodGet, "/api/player", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Username is free again
	rr = ts.request(http.MethodPost, "/api/register", map[string]string{"username": "alice", "password": "secret123"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminResetGalaxySkipsAdmins(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := ts.register(t, "alice")
	adminToken := ts.adminToken(t)

	// Give alice custom progress
	rr := ts.request(http.MethodPut, "/api/player", map[string]any{"credits": 999999, "turns": 5}, aliceToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.sysopRequest(http.MethodPost, "/api/admin/reset-galaxy", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resetResp response.ResetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resetResp))
	assert.Equal(t, 1, resetResp.PlayersReset)
	assert.Equal(t, "Reset 1 players to starting values", resetResp.Message)
	assert.Equal(t, 10000, resetResp.Settings.Credits)

	// Alice is back to starting values
	rr = ts.request(http.MethodGet, "/api/player", nil, aliceToken)
	var alice response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alice))
	assert.Equal(t, int64(10000), alice.Credits)
	assert.Equal(t, 50, alice.Turns)

	// Admin profile untouched
	rr = ts.request(http.MethodGet, "/api/player", nil, adminToken)
	var admin response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &admin))
	assert.Equal(t, int64(10000), admin.Credits)
}

func TestAdminSettingsRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.sysopRequest(http.MethodGet, "/api/admin/settings", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var getResp response.SettingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &getResp))
	assert.Equal(t, 1, getResp.Settings.StartingSector)
	assert.Equal(t, 10000, getResp.Settings.StartingCredits)

	rr = ts.sysopRequest(http.MethodPut, "/api/admin/settings", map[string]any{
		"startingCredits": 2500,
		"startingTurns":   75,
		"unknownKey":      true,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var putResp response.SettingsUpdateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &putResp))
	assert.Equal(t, []string{"startingCredits", "startingTurns"}, putResp.Updated)

	rr = ts.sysopRequest(http.MethodGet, "/api/admin/settings", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &getResp))
	assert.Equal(t, 2500, getResp.Settings.StartingCredits)
	assert.Equal(t, 75, getResp.Settings.StartingTurns)
}

func TestAdminSettingsUpdateEmptyBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.sysopRequest(http.MethodPut, "/api/admin/settings", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "No data provided")
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	ts.register(t, "bob")

	rr := ts.sysopRequest(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalPlayers)
	assert.Equal(t, 2, stats.ActiveSessions)
	assert.Equal(t, 2, stats.TotalConnections)
}

func TestAdminListOrdersByActivity(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "alice")
	bobToken := ts.register(t, "bob")

	// Only bob syncs, so bob has activity and sorts first
	rr := ts.request(http.MethodPut, "/api/player", map[string]any{"pilotName": "Bob"}, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.sysopRequest(http.MethodGet, "/api/admin/players", nil)
	var resp response.PlayerList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Players, 2)
	assert.Equal(t, "bob", resp.Players[0].Username)
	assert.Equal(t, "alice", resp.Players[1].Username)
}
