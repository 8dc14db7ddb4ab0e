package server

import (
	"github.com/stagekit/stagekit/internal/dedup"
	"github.com/stagekit/stagekit/internal/domain"
)

// duplicateOf checks a song against the user's library before persistence.
func (s *Server) duplicateOf(user string, song *domain.Song, excludeID string) (*domain.Song, error) {
	songs, err := s.store.ListSongs(user)
	if err != nil {
		return nil, err
	}
	return dedup.FindDuplicate(song, songs, excludeID), nil
}
