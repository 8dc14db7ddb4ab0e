package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stagekit/stagekit/internal/domain"
	"github.com/stagekit/stagekit/internal/duration"
	"github.com/stagekit/stagekit/internal/library"
)

func (s *Server) listSetlists(c *gin.Context) {
	setlists, err := s.store.ListSetlists(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"setlists": setlists})
}

func (s *Server) getSetlist(c *gin.Context) {
	setlist, err := s.store.GetSetlist(userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("setlist not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, setlist)
}

func (s *Server) saveSetlist(c *gin.Context) {
	var setlist domain.Setlist
	if err := c.ShouldBindJSON(&setlist); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}
	if setlist.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "setlist name is required"})
		return
	}

	seen := make(map[int]bool, len(setlist.Entries))
	for _, entry := range setlist.Entries {
		if entry.Position < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entry positions must start at 1"})
			return
		}
		if seen[entry.Position] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("duplicate entry position: %d", entry.Position)})
			return
		}
		seen[entry.Position] = true
	}

	setlist.UserID = userID(c)
	if err := s.store.SaveSetlist(&setlist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, setlist)
}

func (s *Server) deleteSetlist(c *gin.Context) {
	if err := s.store.DeleteSetlist(userID(c), c.Param("id")); err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("setlist not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "setlist deleted"})
}

// setlistDuration aggregates song durations and predicted transitions into
// the total estimated performance time for display.
func (s *Server) setlistDuration(c *gin.Context) {
	setlist, err := s.store.GetSetlist(userID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("setlist not found: %s", c.Param("id"))})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := duration.Aggregate(s.durationCfg, setlist.Entries)
	c.JSON(http.StatusOK, summary)
}
