package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stagekit/stagekit/internal/dedup"
	"github.com/stagekit/stagekit/internal/domain"
	"github.com/stagekit/stagekit/internal/library"
	"github.com/stagekit/stagekit/internal/scoring"
)

func (s *Server) listSongs(c *gin.Context) {
	songs, err := s.store.ListSongs(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func (s *Server) getSong(c *gin.Context) {
	song, err := s.store.GetSong(userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("song not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, song)
}

func (s *Server) createSong(c *gin.Context) {
	var song domain.Song
	if err := c.ShouldBindJSON(&song); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if err := song.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := userID(c)
	existing, err := s.duplicateOf(user, &song, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		// The match id lets the client offer navigation to the existing song.
		c.JSON(http.StatusConflict, gin.H{
			"error":            "a song with this title and artist already exists",
			"existing_song_id": existing.ID,
		})
		return
	}

	if err := s.store.CreateSong(user, &song); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Info("song created", "user", user, "song", song.ID, "title", song.Title)
	c.JSON(http.StatusCreated, song)
}

func (s *Server) updateSong(c *gin.Context) {
	var song domain.Song
	if err := c.ShouldBindJSON(&song); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	song.ID = c.Param("id")
	if err := song.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := userID(c)
	existing, err := s.duplicateOf(user, &song, song.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":            "a song with this title and artist already exists",
			"existing_song_id": existing.ID,
		})
		return
	}

	if err := s.store.UpdateSong(user, &song); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("song not found: %s", song.ID)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, song)
}

func (s *Server) deleteSong(c *gin.Context) {
	if err := s.store.DeleteSong(userID(c), c.Param("id")); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("song not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "song deleted"})
}

// checkDuplicates runs the suggestion-oriented duplicate search against the
// caller's library. It never blocks anything; the client decides what to do
// with near matches.
func (s *Server) checkDuplicates(c *gin.Context) {
	var song domain.Song
	if err := c.ShouldBindJSON(&song); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if song.Title == "" || song.Artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and artist are required"})
		return
	}

	songs, err := s.store.ListSongs(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	threshold := s.cfg.Engine.DuplicateThreshold
	if raw := c.Query("threshold"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 && parsed <= 1 {
			threshold = parsed
		}
	}

	match := domain.DuplicateMatch{
		Match:     dedup.FindDuplicate(&song, songs, song.ID),
		Potential: dedup.FindPotentialDuplicates(&song, songs, threshold),
	}
	c.JSON(http.StatusOK, match)
}

// suggestNextSongs ranks the rest of the caller's library as candidates to
// follow the given song. The exclude parameter carries ids already placed in
// the setlist being built.
func (s *Server) suggestNextSongs(c *gin.Context) {
	user := userID(c)
	reference, err := s.store.GetSong(user, c.Param("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("song not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	candidates, err := s.store.ListSongs(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	excludeIDs := make(map[string]bool)
	if raw := c.Query("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				excludeIDs[id] = true
			}
		}
	}

	limit := s.cfg.Engine.RankLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := scoring.Rank(reference, candidates, excludeIDs, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reference": reference, "suggestions": results})
}
