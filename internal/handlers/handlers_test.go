package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	game "wordrush/internal/game"
	models "wordrush/internal/models"
	notify "wordrush/internal/notify"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	wordsFile := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(wordsFile, []byte("apple\neagle\ntiger\n"), 0o644))

	store, err := dictionary.Load(wordsFile, filepath.Join(dir, "sudo.json"), "owner")
	require.NoError(t, err)

	cats := dictionary.NewCategoryTable(map[string][]string{
		"animals": {"tiger", "zebra"},
	})
	hub := notify.NewHub()
	engine := game.NewEngine(models.Config{
		OwnerID:     "owner",
		LobbyWindow: 30 * time.Millisecond,
	}, store, cats, hub)

	s := &Server{Engine: engine, Store: store, Hub: hub, StartTime: time.Now()}

	router := gin.New()
	router.GET(constants.RouteHealthz, s.HealthzHandler)
	router.POST(constants.RouteCreateGame, s.CreateGameHandler)
	router.POST(constants.RouteJoin, s.JoinHandler)
	router.POST(constants.RouteAnswer, s.AnswerHandler)
	router.POST(constants.RouteStop, s.ForceStopHandler)
	router.POST(constants.RouteMaxPlayers, s.SetMaxPlayersHandler)
	router.GET(constants.RouteScore, s.ScoreHandler)
	router.GET(constants.RouteLeaderboard, s.LeaderboardHandler)
	router.GET(constants.RouteEvents, s.EventsHandler)
	router.POST(constants.RouteWords, s.AddWordHandler)
	router.DELETE(constants.RouteWord, s.RemoveWordHandler)
	router.POST(constants.RoutePrivileged, s.AddPrivilegedHandler)
	router.DELETE(constants.RoutePrivUser, s.RemovePrivilegedHandler)
	router.GET(constants.RoutePrivileged, s.ListPrivilegedHandler)
	return s, router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGameLifecycleOverHTTP(t *testing.T) {
	s, router := newTestServer(t)

	w := doJSON(router, http.MethodPost, "/rooms/42/game", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/game", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/join", gin.H{"playerId": "alice", "displayName": "Alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/join", gin.H{"playerId": "bob", "displayName": "Bob"})
	assert.Equal(t, http.StatusOK, w.Code)

	// The lobby window is 30ms; wait for the auto-start.
	require.Eventually(t, func() bool {
		for _, ev := range s.Hub.History("42") {
			if ev.Text == "Game on! 2 players" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	w = doJSON(router, http.MethodGet, "/rooms/42/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board struct {
		Standings []models.Standing `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(t, board.Standings, 2)

	w = doJSON(router, http.MethodGet, "/rooms/42/scores/alice", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/answer", gin.H{"playerId": "alice", "text": "xyzq"})
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/stop", gin.H{"callerId": "rando"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/rooms/42/stop", gin.H{"callerId": "owner"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/rooms/42/leaderboard", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinRequiresPlayerID(t *testing.T) {
	_, router := newTestServer(t)
	doJSON(router, http.MethodPost, "/rooms/1/game", nil)

	w := doJSON(router, http.MethodPost, "/rooms/1/join", gin.H{"displayName": "Nameless"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnswerWithoutGame(t *testing.T) {
	_, router := newTestServer(t)
	w := doJSON(router, http.MethodPost, "/rooms/9/answer", gin.H{"playerId": "alice", "text": "apple"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDictionaryAdminEndpoints(t *testing.T) {
	_, router := newTestServer(t)

	w := doJSON(router, http.MethodPost, "/dictionary/words", gin.H{"word": "mango"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/dictionary/words", gin.H{"word": "mango"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, http.MethodPost, "/dictionary/words", gin.H{"word": "m4ngo"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodDelete, "/dictionary/words/mango?callerId=rando", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodDelete, "/dictionary/words/mango?callerId=owner", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodDelete, "/dictionary/words/mango?callerId=owner", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodPost, "/dictionary/privileged", gin.H{"userId": "mod", "callerId": "rando"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/dictionary/privileged", gin.H{"userId": "mod", "callerId": "owner"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/dictionary/privileged", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Owner      string   `json:"owner"`
		Privileged []string `json:"privileged"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Equal(t, "owner", listing.Owner)
	assert.Equal(t, []string{"mod"}, listing.Privileged)

	w = doJSON(router, http.MethodDelete, "/dictionary/privileged/mod?callerId=owner", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthz(t *testing.T) {
	_, router := newTestServer(t)
	w := doJSON(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["words"])
}
