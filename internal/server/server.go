// Package server exposes the setlist intelligence engine and the library
// store over HTTP.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/stagekit/stagekit/config"
	"github.com/stagekit/stagekit/internal/duration"
	"github.com/stagekit/stagekit/internal/library"
	"github.com/stagekit/stagekit/internal/transition"
)

// defaultUserID scopes requests that carry no X-User-ID header. There is no
// authentication layer; ownership is a data-scoping concern only.
const defaultUserID = "default"

// Server handles HTTP requests for the setlist engine and song library.
type Server struct {
	cfg    *config.Config
	store  *library.Store
	router *gin.Engine

	durationCfg duration.Config
}

// New creates an HTTP server around an opened library store.
func New(cfg *config.Config, store *library.Store) *Server {
	router := gin.Default()

	server := &Server{
		cfg:    cfg,
		store:  store,
		router: router,
		durationCfg: duration.Config{
			DefaultSongSeconds: cfg.Engine.DefaultSongDurationSeconds,
			Transition: transition.Config{
				BaseSeconds:        cfg.Engine.BaseTransitionSeconds,
				BpmPenaltyPerBpm:   cfg.Engine.BpmPenaltyPerBpm,
				KeyMismatchPenalty: cfg.Engine.KeyMismatchPenalty,
				MaxSeconds:         cfg.Engine.MaxTransitionSeconds,
			},
		},
	}

	server.setupRoutes(router)
	return server
}

// setupRoutes configures the HTTP routes.
func (s *Server) setupRoutes(router *gin.Engine) {
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", s.health)

	api := router.Group("/api/v1")
	{
		api.GET("/songs", s.listSongs)
		api.POST("/songs", s.createSong)
		api.GET("/songs/:id", s.getSong)
		api.PUT("/songs/:id", s.updateSong)
		api.DELETE("/songs/:id", s.deleteSong)
		api.GET("/songs/:id/suggestions", s.suggestNextSongs)
		api.POST("/songs/check-duplicates", s.checkDuplicates)

		api.GET("/setlists", s.listSetlists)
		api.POST("/setlists", s.saveSetlist)
		api.GET("/setlists/:id", s.getSetlist)
		api.DELETE("/setlists/:id", s.deleteSetlist)
		api.GET("/setlists/:id/duration", s.setlistDuration)

		api.GET("/recommendations", s.recommendations)
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port string) error {
	return s.router.Run(":" + port)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "service": "stagekit"})
}

func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return defaultUserID
}
