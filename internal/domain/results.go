package domain

// CompatibilityResult scores how well a candidate song follows a reference
// song. Reasons explain each sub-score's observation, in tempo, genre, key,
// difficulty order.
type CompatibilityResult struct {
	Song    *Song    `json:"song"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// PersonalizationResult scores a song against a user's preference profile.
type PersonalizationResult struct {
	Song   *Song   `json:"song"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// SimilarSong pairs a library song with its similarity to a candidate.
type SimilarSong struct {
	Song       *Song   `json:"song"`
	Similarity float64 `json:"similarity"`
}

// DuplicateMatch is the outcome of a duplicate check. Match is nil when the
// library holds no duplicate; Potential lists near matches most-similar first.
type DuplicateMatch struct {
	Match     *Song         `json:"match,omitempty"`
	Potential []SimilarSong `json:"potential,omitempty"`
}

// EntryDuration is the per-entry breakdown of a duration summary. The final
// entry has no successor, so its TransitionSeconds is zero.
type EntryDuration struct {
	Position          int     `json:"position"`
	SongID            string  `json:"song_id"`
	Title             string  `json:"title"`
	DurationSeconds   int     `json:"duration_seconds"`
	TransitionSeconds float64 `json:"transition_seconds"`
}

// DurationSummary totals a setlist's song time and predicted transition time.
type DurationSummary struct {
	TotalSongSeconds       int             `json:"total_song_seconds"`
	TotalTransitionSeconds float64         `json:"total_transition_seconds"`
	CombinedTotalSeconds   float64         `json:"combined_total_seconds"`
	Entries                []EntryDuration `json:"entries"`
}
