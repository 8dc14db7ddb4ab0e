package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagekit/stagekit/internal/domain"
)

func TestAggregateEmptySetlist(t *testing.T) {
	summary := Aggregate(DefaultConfig(), nil)

	assert.Equal(t, 0, summary.TotalSongSeconds)
	assert.Equal(t, 0.0, summary.TotalTransitionSeconds)
	assert.Equal(t, 0.0, summary.CombinedTotalSeconds)
	assert.Empty(t, summary.Entries)
}

func TestAggregateTwoMatchingSongsBaseTransitionOnly(t *testing.T) {
	cfg := DefaultConfig()
	entries := []*domain.SetlistEntry{
		{SongID: "a", Position: 1, Song: &domain.Song{ID: "a", Title: "Opener", Bpm: 100, MusicalKey: "C", DurationSeconds: 200}},
		{SongID: "b", Position: 2, Song: &domain.Song{ID: "b", Title: "Closer", Bpm: 100, MusicalKey: "C", DurationSeconds: 180}},
	}

	summary := Aggregate(cfg, entries)

	assert.Equal(t, 380, summary.TotalSongSeconds)
	assert.Equal(t, cfg.Transition.BaseSeconds, summary.TotalTransitionSeconds)
	assert.Equal(t, 380+cfg.Transition.BaseSeconds, summary.CombinedTotalSeconds)
}

func TestAggregateDurationResolutionPriority(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		entry    *domain.SetlistEntry
		expected int
	}{
		{
			"override wins over song durations",
			&domain.SetlistEntry{Position: 1, CustomDurationOverride: 300,
				Song: &domain.Song{EstimatedDurationSeconds: 250, DurationSeconds: 200}},
			300,
		},
		{
			"estimate wins over recorded duration",
			&domain.SetlistEntry{Position: 1, Song: &domain.Song{EstimatedDurationSeconds: 250, DurationSeconds: 200}},
			250,
		},
		{
			"recorded duration",
			&domain.SetlistEntry{Position: 1, Song: &domain.Song{DurationSeconds: 200}},
			200,
		},
		{
			"default when no data",
			&domain.SetlistEntry{Position: 1, Song: &domain.Song{}},
			cfg.DefaultSongSeconds,
		},
		{
			"default when song missing",
			&domain.SetlistEntry{Position: 1},
			cfg.DefaultSongSeconds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(cfg, []*domain.SetlistEntry{tt.entry})
			assert.Equal(t, tt.expected, summary.TotalSongSeconds)
		})
	}
}

func TestAggregateCustomOverridesDriveTransitions(t *testing.T) {
	cfg := DefaultConfig()
	// Song BPMs differ wildly but the placements override them to match.
	entries := []*domain.SetlistEntry{
		{SongID: "a", Position: 1, CustomBpm: 120, CustomKey: "G",
			Song: &domain.Song{ID: "a", Bpm: 60, MusicalKey: "C", DurationSeconds: 100}},
		{SongID: "b", Position: 2, CustomBpm: 120, CustomKey: "G",
			Song: &domain.Song{ID: "b", Bpm: 200, MusicalKey: "F#", DurationSeconds: 100}},
	}

	summary := Aggregate(cfg, entries)

	assert.Equal(t, cfg.Transition.BaseSeconds, summary.TotalTransitionSeconds)
}

func TestAggregateBreakdownSortedByPosition(t *testing.T) {
	cfg := DefaultConfig()
	entries := []*domain.SetlistEntry{
		{SongID: "b", Position: 2, Song: &domain.Song{ID: "b", Title: "Second", DurationSeconds: 100}},
		{SongID: "a", Position: 1, Song: &domain.Song{ID: "a", Title: "First", DurationSeconds: 100}},
		{SongID: "c", Position: 3, Song: &domain.Song{ID: "c", Title: "Third", DurationSeconds: 100}},
	}

	summary := Aggregate(cfg, entries)

	require.Len(t, summary.Entries, 3)
	assert.Equal(t, "First", summary.Entries[0].Title)
	assert.Equal(t, "Second", summary.Entries[1].Title)
	assert.Equal(t, "Third", summary.Entries[2].Title)

	// The final entry has no successor.
	assert.Equal(t, 0.0, summary.Entries[2].TransitionSeconds)
	assert.Greater(t, summary.Entries[0].TransitionSeconds, 0.0)
	assert.Greater(t, summary.Entries[1].TransitionSeconds, 0.0)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	entries := []*domain.SetlistEntry{
		{SongID: "b", Position: 2, Song: &domain.Song{ID: "b", DurationSeconds: 100}},
		{SongID: "a", Position: 1, Song: &domain.Song{ID: "a", DurationSeconds: 100}},
	}

	Aggregate(DefaultConfig(), entries)

	assert.Equal(t, 2, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)
}
