package domain

import (
	"errors"
	"fmt"
)

const (
	// MaxNameLength bounds titles and artist names; keeps fuzzy matching cheap.
	MaxNameLength = 200

	MinBpm = 40
	MaxBpm = 250

	MinDifficulty = 1
	MaxDifficulty = 5
)

var ErrInvalidSong = errors.New("invalid song")

// Song is an immutable snapshot of a song in a performer's library.
// Zero values mean "unknown" for the optional attributes (Bpm, MusicalKey,
// Genre, DurationSeconds, DifficultyRating).
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`

	Bpm        int    `json:"bpm,omitempty"`
	MusicalKey string `json:"musical_key,omitempty"`

	DurationSeconds          int `json:"duration_seconds,omitempty"`
	EstimatedDurationSeconds int `json:"estimated_duration_seconds,omitempty"`

	DifficultyRating int `json:"difficulty_rating,omitempty"`
}

// Validate checks the fields the API layer requires before persisting a song.
func (s *Song) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSong)
	}
	if s.Artist == "" {
		return fmt.Errorf("%w: artist is required", ErrInvalidSong)
	}
	if len(s.Title) > MaxNameLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidSong, MaxNameLength)
	}
	if len(s.Artist) > MaxNameLength {
		return fmt.Errorf("%w: artist exceeds %d characters", ErrInvalidSong, MaxNameLength)
	}
	if s.Bpm != 0 && (s.Bpm < MinBpm || s.Bpm > MaxBpm) {
		return fmt.Errorf("%w: bpm must be between %d and %d", ErrInvalidSong, MinBpm, MaxBpm)
	}
	if s.DifficultyRating != 0 && (s.DifficultyRating < MinDifficulty || s.DifficultyRating > MaxDifficulty) {
		return fmt.Errorf("%w: difficulty must be between %d and %d", ErrInvalidSong, MinDifficulty, MaxDifficulty)
	}
	return nil
}
