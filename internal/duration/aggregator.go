// Package duration computes a setlist's total estimated performance time:
// resolved song durations plus predicted inter-song transitions.
package duration

import (
	"sort"

	"github.com/stagekit/stagekit/internal/domain"
	"github.com/stagekit/stagekit/internal/transition"
)

// Config holds the duration tuning plus the transition predictor's config.
type Config struct {
	// DefaultSongSeconds is used when an entry has no override and its song
	// carries no duration data at all.
	DefaultSongSeconds int

	Transition transition.Config
}

// DefaultConfig returns the standard tuning with a four minute fallback per
// song.
func DefaultConfig() Config {
	return Config{
		DefaultSongSeconds: 240,
		Transition:         transition.DefaultConfig(),
	}
}

// Aggregate walks the entries in position order and sums resolved durations
// and predicted transitions. An empty setlist yields a zero summary. Input
// entries are never mutated.
func Aggregate(cfg Config, entries []*domain.SetlistEntry) *domain.DurationSummary {
	summary := &domain.DurationSummary{Entries: []domain.EntryDuration{}}
	if len(entries) == 0 {
		return summary
	}

	ordered := make([]*domain.SetlistEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	for i, entry := range ordered {
		resolved := resolveDuration(cfg, entry)
		summary.TotalSongSeconds += resolved

		transitionSeconds := 0.0
		if i < len(ordered)-1 {
			transitionSeconds = transition.Predict(cfg.Transition, effectiveSong(entry), effectiveSong(ordered[i+1]))
			summary.TotalTransitionSeconds += transitionSeconds
		}

		breakdown := domain.EntryDuration{
			Position:          entry.Position,
			SongID:            entry.SongID,
			DurationSeconds:   resolved,
			TransitionSeconds: transitionSeconds,
		}
		if entry.Song != nil {
			breakdown.Title = entry.Song.Title
		}
		summary.Entries = append(summary.Entries, breakdown)
	}

	summary.CombinedTotalSeconds = float64(summary.TotalSongSeconds) + summary.TotalTransitionSeconds
	return summary
}

// resolveDuration picks an entry's effective duration: placement override,
// then the song's precomputed estimate, then its recorded duration, then the
// configured default. The result is always positive.
func resolveDuration(cfg Config, entry *domain.SetlistEntry) int {
	if entry.CustomDurationOverride > 0 {
		return entry.CustomDurationOverride
	}
	if entry.Song != nil {
		if entry.Song.EstimatedDurationSeconds > 0 {
			return entry.Song.EstimatedDurationSeconds
		}
		if entry.Song.DurationSeconds > 0 {
			return entry.Song.DurationSeconds
		}
	}
	return cfg.DefaultSongSeconds
}

// effectiveSong builds a temporary song carrying the entry's effective BPM
// and key so placement overrides influence transition prediction.
func effectiveSong(entry *domain.SetlistEntry) *domain.Song {
	if entry == nil {
		return nil
	}
	return &domain.Song{
		Bpm:        entry.EffectiveBpm(),
		MusicalKey: entry.EffectiveKey(),
	}
}
