package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stagekit/stagekit/internal/profile"
)

// recommendations builds a preference profile from the caller's library and
// setlist history, then returns their own songs re-scored against it.
func (s *Server) recommendations(c *gin.Context) {
	user := userID(c)

	songs, err := s.store.ListSongs(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setlists, err := s.store.ListSetlists(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := s.cfg.Engine.RankLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	p := profile.BuildProfile(songs, setlists)
	usage := profile.SetlistUsage(setlists)
	results := profile.Recommend(songs, p, usage, limit)

	c.JSON(http.StatusOK, gin.H{
		"profile":         p,
		"recommendations": results,
	})
}
