// Package library is the data-access collaborator: a sqlite-backed store for
// songs and setlists. It materializes full records before handing them to
// the engine packages, which perform no I/O of their own.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stagekit/stagekit/internal/domain"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at path and ensures the schema
// exists. ":memory:" is accepted for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS songs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		bpm INTEGER NOT NULL DEFAULT 0,
		musical_key TEXT NOT NULL DEFAULT '',
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		estimated_duration_seconds INTEGER NOT NULL DEFAULT 0,
		difficulty_rating INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_songs_user ON songs(user_id);

	CREATE TABLE IF NOT EXISTS setlists (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_setlists_user ON setlists(user_id);

	CREATE TABLE IF NOT EXISTS setlist_entries (
		setlist_id TEXT NOT NULL REFERENCES setlists(id) ON DELETE CASCADE,
		song_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		custom_bpm INTEGER NOT NULL DEFAULT 0,
		custom_key TEXT NOT NULL DEFAULT '',
		custom_duration_override INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (setlist_id, position)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSong persists a song for a user, assigning an id when absent.
func (s *Store) CreateSong(userID string, song *domain.Song) error {
	if song.ID == "" {
		song.ID = uuid.NewString()
	}

	_, err := s.db.Exec(`
		INSERT INTO songs (id, user_id, title, artist, album, genre, bpm, musical_key,
			duration_seconds, estimated_duration_seconds, difficulty_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.ID, userID, song.Title, song.Artist, song.Album, song.Genre, song.Bpm,
		song.MusicalKey, song.DurationSeconds, song.EstimatedDurationSeconds, song.DifficultyRating)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}

// UpdateSong overwrites an existing song's attributes.
func (s *Store) UpdateSong(userID string, song *domain.Song) error {
	res, err := s.db.Exec(`
		UPDATE songs SET title = ?, artist = ?, album = ?, genre = ?, bpm = ?,
			musical_key = ?, duration_seconds = ?, estimated_duration_seconds = ?,
			difficulty_rating = ?
		WHERE id = ? AND user_id = ?`,
		song.Title, song.Artist, song.Album, song.Genre, song.Bpm, song.MusicalKey,
		song.DurationSeconds, song.EstimatedDurationSeconds, song.DifficultyRating,
		song.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSong fetches one song by id, scoped to its owner.
func (s *Store) GetSong(userID, songID string) (*domain.Song, error) {
	row := s.db.QueryRow(`
		SELECT id, title, artist, album, genre, bpm, musical_key,
			duration_seconds, estimated_duration_seconds, difficulty_rating
		FROM songs WHERE id = ? AND user_id = ?`, songID, userID)

	song, err := scanSong(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return song, err
}

// ListSongs materializes a user's full library, ordered by title.
func (s *Store) ListSongs(userID string) ([]*domain.Song, error) {
	rows, err := s.db.Query(`
		SELECT id, title, artist, album, genre, bpm, musical_key,
			duration_seconds, estimated_duration_seconds, difficulty_rating
		FROM songs WHERE user_id = ? ORDER BY title`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*domain.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// DeleteSong removes a song and any setlist entries referencing it.
func (s *Store) DeleteSong(userID, songID string) error {
	res, err := s.db.Exec(`DELETE FROM songs WHERE id = ? AND user_id = ?`, songID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(`DELETE FROM setlist_entries WHERE song_id = ?`, songID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (*domain.Song, error) {
	var song domain.Song
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.Genre,
		&song.Bpm, &song.MusicalKey, &song.DurationSeconds,
		&song.EstimatedDurationSeconds, &song.DifficultyRating)
	if err != nil {
		return nil, err
	}
	return &song, nil
}
