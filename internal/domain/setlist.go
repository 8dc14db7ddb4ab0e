package domain

// SetlistEntry is one song's placement within a setlist. CustomBpm, CustomKey
// and CustomDurationOverride override the referenced song's values for this
// placement only; zero means "no override".
type SetlistEntry struct {
	SongID   string `json:"song_id"`
	Position int    `json:"position"`

	CustomBpm              int    `json:"custom_bpm,omitempty"`
	CustomKey              string `json:"custom_key,omitempty"`
	CustomDurationOverride int    `json:"custom_duration_override,omitempty"`

	// Song is the resolved song record, materialized by the library store
	// before the entry reaches the engine.
	Song *Song `json:"song,omitempty"`
}

// EffectiveBpm returns the BPM that applies to this placement.
func (e *SetlistEntry) EffectiveBpm() int {
	if e.CustomBpm != 0 {
		return e.CustomBpm
	}
	if e.Song != nil {
		return e.Song.Bpm
	}
	return 0
}

// EffectiveKey returns the musical key that applies to this placement.
func (e *SetlistEntry) EffectiveKey() string {
	if e.CustomKey != "" {
		return e.CustomKey
	}
	if e.Song != nil {
		return e.Song.MusicalKey
	}
	return ""
}

// Setlist is an ordered sequence of entries owned by one user.
type Setlist struct {
	ID      string          `json:"id"`
	UserID  string          `json:"user_id"`
	Name    string          `json:"name"`
	Entries []*SetlistEntry `json:"entries"`
}
