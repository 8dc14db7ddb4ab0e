package library

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stagekit/stagekit/internal/domain"
)

// SaveSetlist inserts or replaces a setlist and its entries atomically.
func (s *Store) SaveSetlist(setlist *domain.Setlist) error {
	if setlist.ID == "" {
		setlist.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO setlists (id, user_id, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		setlist.ID, setlist.UserID, setlist.Name); err != nil {
		return fmt.Errorf("failed to save setlist: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM setlist_entries WHERE setlist_id = ?`, setlist.ID); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	for _, entry := range setlist.Entries {
		if _, err := tx.Exec(`
			INSERT INTO setlist_entries (setlist_id, song_id, position, custom_bpm, custom_key, custom_duration_override)
			VALUES (?, ?, ?, ?, ?, ?)`,
			setlist.ID, entry.SongID, entry.Position, entry.CustomBpm, entry.CustomKey, entry.CustomDurationOverride); err != nil {
			return fmt.Errorf("failed to insert entry at position %d: %w", entry.Position, err)
		}
	}

	return tx.Commit()
}

// GetSetlist fetches a setlist with its entries in position order, each
// entry's song resolved so the engine sees fully materialized records.
func (s *Store) GetSetlist(userID, setlistID string) (*domain.Setlist, error) {
	row := s.db.QueryRow(`SELECT id, user_id, name FROM setlists WHERE id = ? AND user_id = ?`,
		setlistID, userID)

	var setlist domain.Setlist
	if err := row.Scan(&setlist.ID, &setlist.UserID, &setlist.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	entries, err := s.setlistEntries(userID, setlist.ID)
	if err != nil {
		return nil, err
	}
	setlist.Entries = entries
	return &setlist, nil
}

// ListSetlists materializes a user's full setlist history with entries.
func (s *Store) ListSetlists(userID string) ([]*domain.Setlist, error) {
	rows, err := s.db.Query(`SELECT id, user_id, name FROM setlists WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query setlists: %w", err)
	}
	defer rows.Close()

	var setlists []*domain.Setlist
	for rows.Next() {
		var setlist domain.Setlist
		if err := rows.Scan(&setlist.ID, &setlist.UserID, &setlist.Name); err != nil {
			return nil, err
		}
		setlists = append(setlists, &setlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, setlist := range setlists {
		entries, err := s.setlistEntries(userID, setlist.ID)
		if err != nil {
			return nil, err
		}
		setlist.Entries = entries
	}
	return setlists, nil
}

// DeleteSetlist removes a setlist and its entries.
func (s *Store) DeleteSetlist(userID, setlistID string) error {
	res, err := s.db.Exec(`DELETE FROM setlists WHERE id = ? AND user_id = ?`, setlistID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete setlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	_, err = s.db.Exec(`DELETE FROM setlist_entries WHERE setlist_id = ?`, setlistID)
	return err
}

func (s *Store) setlistEntries(userID, setlistID string) ([]*domain.SetlistEntry, error) {
	rows, err := s.db.Query(`
		SELECT e.song_id, e.position, e.custom_bpm, e.custom_key, e.custom_duration_override,
			s.id, s.title, s.artist, s.album, s.genre, s.bpm, s.musical_key,
			s.duration_seconds, s.estimated_duration_seconds, s.difficulty_rating
		FROM setlist_entries e
		LEFT JOIN songs s ON s.id = e.song_id AND s.user_id = ?
		WHERE e.setlist_id = ?
		ORDER BY e.position`, userID, setlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.SetlistEntry
	for rows.Next() {
		var entry domain.SetlistEntry
		var song domain.Song
		var songID sql.NullString
		var title, artist, album, genre, key sql.NullString
		var bpm, duration, estimated, difficulty sql.NullInt64

		err := rows.Scan(&entry.SongID, &entry.Position, &entry.CustomBpm, &entry.CustomKey,
			&entry.CustomDurationOverride, &songID, &title, &artist, &album, &genre,
			&bpm, &key, &duration, &estimated, &difficulty)
		if err != nil {
			return nil, err
		}

		// Entries can outlive their song; the engine treats a nil song as
		// missing data rather than an error.
		if songID.Valid {
			song.ID = songID.String
			song.Title = title.String
			song.Artist = artist.String
			song.Album = album.String
			song.Genre = genre.String
			song.Bpm = int(bpm.Int64)
			song.MusicalKey = key.String
			song.DurationSeconds = int(duration.Int64)
			song.EstimatedDurationSeconds = int(estimated.Int64)
			song.DifficultyRating = int(difficulty.Int64)
			entry.Song = &song
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
