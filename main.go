package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"

	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	game "wordrush/internal/game"
	handlers "wordrush/internal/handlers"
	models "wordrush/internal/models"
	notify "wordrush/internal/notify"
	util "wordrush/internal/util"
)

func main() {
	_ = godotenv.Load()

	ownerID := os.Getenv("OWNER_ID")
	if ownerID == "" {
		util.LogFatal("OWNER_ID must be set")
	}

	wordsFile := util.GetEnv("WORDS_FILE", "data/words.txt")
	sudoFile := util.GetEnv("SUDO_FILE", "data/sudo.json")
	categoriesFile := util.GetEnv("CATEGORIES_FILE", "data/categories.json")

	store, err := dictionary.Load(wordsFile, sudoFile, ownerID)
	if err != nil {
		util.LogFatal("Failed to load word store: %v", err)
	}

	cats, err := dictionary.LoadCategories(categoriesFile)
	if err != nil {
		util.LogFatal("Failed to load categories: %v", err)
	}

	hub := notify.NewHub()

	engine := game.NewEngine(models.Config{
		OwnerID:       ownerID,
		LobbyWindow:   util.GetEnvDuration("LOBBY_WINDOW", constants.LobbyWindow),
		ReminderLead:  util.GetEnvDuration("REMINDER_LEAD", constants.ReminderLead),
		PointsPerWord: util.GetEnvInt("POINTS_PER_WORD", constants.PointsPerWord),
		MaxPlayers:    util.GetEnvInt("MAX_PLAYERS", constants.DefaultMaxPlayers),
	}, store, cats, hub)

	server := &handlers.Server{
		Engine:    engine,
		Store:     store,
		Hub:       hub,
		StartTime: time.Now(),
	}

	limiters := newLimiterRegistry(
		util.GetEnvInt("RATE_LIMIT_RPS", 5),
		util.GetEnvInt("RATE_LIMIT_BURST", 10),
		util.GetEnvDuration("RATE_LIMITER_TTL", 1*time.Hour),
	)
	limiters.startCleanup()

	router := gin.Default()

	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedPathsRegexs([]string{`^/rooms/[^/]+/ws$`})))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		util.LogWarn("Failed to set trusted proxies: %v", err)
	}

	rateLimited := limiters.middleware()

	router.GET(constants.RouteHealthz, server.HealthzHandler)

	router.POST(constants.RouteCreateGame, rateLimited, server.CreateGameHandler)
	router.POST(constants.RouteJoin, rateLimited, server.JoinHandler)
	router.POST(constants.RouteAnswer, rateLimited, server.AnswerHandler)
	router.POST(constants.RouteStop, rateLimited, server.ForceStopHandler)
	router.POST(constants.RouteMaxPlayers, rateLimited, server.SetMaxPlayersHandler)
	router.GET(constants.RouteScore, server.ScoreHandler)
	router.GET(constants.RouteLeaderboard, server.LeaderboardHandler)
	router.GET(constants.RouteEvents, server.EventsHandler)
	router.GET(constants.RouteSocket, server.SocketHandler)

	router.POST(constants.RouteWords, rateLimited, server.AddWordHandler)
	router.DELETE(constants.RouteWord, rateLimited, server.RemoveWordHandler)
	router.POST(constants.RoutePrivileged, rateLimited, server.AddPrivilegedHandler)
	router.DELETE(constants.RoutePrivUser, rateLimited, server.RemovePrivilegedHandler)
	router.GET(constants.RoutePrivileged, server.ListPrivilegedHandler)

	startServer(router)
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		util.LogInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			util.LogWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	util.LogInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		util.LogFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	util.LogInfo("Server shutdown complete")
}
