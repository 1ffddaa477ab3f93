package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	dictionary "wordrush/internal/dictionary"
	game "wordrush/internal/game"
	notify "wordrush/internal/notify"
	util "wordrush/internal/util"
)

// Server binds the engine, the word store, and the announcement hub to the
// HTTP surface. The transport resolves user identity; callers pass opaque
// player ids.
type Server struct {
	Engine    *game.Engine
	Store     *dictionary.Store
	Hub       *notify.Hub
	StartTime time.Time
}

type joinRequest struct {
	PlayerID    string `json:"playerId" binding:"required"`
	DisplayName string `json:"displayName"`
}

type answerRequest struct {
	PlayerID  string     `json:"playerId" binding:"required"`
	Text      string     `json:"text" binding:"required"`
	Timestamp *time.Time `json:"timestamp"`
}

type callerRequest struct {
	CallerID string `json:"callerId" binding:"required"`
}

type maxPlayersRequest struct {
	CallerID   string `json:"callerId" binding:"required"`
	MaxPlayers int    `json:"maxPlayers" binding:"required"`
}

type wordRequest struct {
	Word string `json:"word" binding:"required"`
}

type privilegedRequest struct {
	UserID   string `json:"userId" binding:"required"`
	CallerID string `json:"callerId" binding:"required"`
}

func (s *Server) CreateGameHandler(c *gin.Context) {
	roomID := c.Param("room")
	if err := s.Engine.CreateGame(roomID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": roomID, "status": "lobby_open"})
}

func (s *Server) JoinHandler(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId is required"})
		return
	}
	roomID := c.Param("room")
	if err := s.Engine.Join(roomID, req.PlayerID, req.DisplayName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": roomID, "player": req.PlayerID})
}

func (s *Server) AnswerHandler(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId and text are required"})
		return
	}
	submittedAt := time.Now()
	if req.Timestamp != nil {
		submittedAt = *req.Timestamp
	}
	roomID := c.Param("room")
	if err := s.Engine.SubmitAnswer(roomID, req.PlayerID, req.Text, submittedAt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"room": roomID})
}

func (s *Server) ForceStopHandler(c *gin.Context) {
	var req callerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "callerId is required"})
		return
	}
	roomID := c.Param("room")
	if err := s.Engine.ForceStop(roomID, req.CallerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": roomID, "status": "stopped"})
}

func (s *Server) SetMaxPlayersHandler(c *gin.Context) {
	var req maxPlayersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "callerId and maxPlayers are required"})
		return
	}
	roomID := c.Param("room")
	if err := s.Engine.SetMaxPlayers(roomID, req.CallerID, req.MaxPlayers); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": roomID, "maxPlayers": req.MaxPlayers})
}

func (s *Server) ScoreHandler(c *gin.Context) {
	standing, err := s.Engine.Score(c.Param("room"), c.Param("player"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, standing)
}

func (s *Server) LeaderboardHandler(c *gin.Context) {
	standings, err := s.Engine.Leaderboard(c.Param("room"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"standings": standings})
}

func (s *Server) EventsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"events": s.Hub.History(c.Param("room"))})
}

func (s *Server) SocketHandler(c *gin.Context) {
	if err := s.Hub.Subscribe(c.Writer, c.Request, c.Param("room")); err != nil {
		util.LogWarn("WebSocket upgrade failed: %v", err)
	}
}

func (s *Server) AddWordHandler(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word is required"})
		return
	}
	if err := s.Store.AddWord(req.Word); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"word": req.Word})
}

func (s *Server) RemoveWordHandler(c *gin.Context) {
	callerID := c.Query("callerId")
	if err := s.Store.RemoveWord(c.Param("word"), callerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"word": c.Param("word"), "status": "removed"})
}

func (s *Server) AddPrivilegedHandler(c *gin.Context) {
	var req privilegedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and callerId are required"})
		return
	}
	if err := s.Store.AddPrivileged(req.UserID, req.CallerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": req.UserID})
}

func (s *Server) RemovePrivilegedHandler(c *gin.Context) {
	callerID := c.Query("callerId")
	if err := s.Store.RemovePrivileged(c.Param("id"), callerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": c.Param("id"), "status": "removed"})
}

func (s *Server) ListPrivilegedHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"owner":      s.Store.Owner(),
		"privileged": s.Store.ListPrivileged(),
	})
}

func (s *Server) HealthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        util.FormatUptime(time.Since(s.StartTime)),
		"activeMatches": s.Engine.ActiveMatches(),
		"words":         s.Store.Len(),
	})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrAlreadyActive),
		errors.Is(err, dictionary.ErrAlreadyExists),
		errors.Is(err, dictionary.ErrAlreadyPrivileged):
		status = http.StatusConflict
	case errors.Is(err, game.ErrNoActiveGame),
		errors.Is(err, game.ErrPlayerNotInMatch),
		errors.Is(err, dictionary.ErrNotFound),
		errors.Is(err, dictionary.ErrNotPrivileged):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrNotAuthorized),
		errors.Is(err, dictionary.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, game.ErrInvalidMaxPlayers),
		errors.Is(err, game.ErrLobbyAlreadyClosed),
		errors.Is(err, dictionary.ErrNotEnglish):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
