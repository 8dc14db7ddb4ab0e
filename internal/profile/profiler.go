// Package profile builds a preference profile from a user's song library and
// setlist history, then re-scores the library against it for personalized
// recommendations.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stagekit/stagekit/internal/domain"
)

const (
	topGenreCount = 3
	topKeyCount   = 3
	topUsageCount = 5

	baseScore = 50.0
)

// Profile captures a user's observed preferences. It is derived entirely
// from caller-supplied data and holds no reference to storage.
type Profile struct {
	FavoriteGenres []string `json:"favorite_genres"`
	FavoriteKeys   []string `json:"favorite_keys"`

	AvgBpm int `json:"avg_bpm"`
	MinBpm int `json:"min_bpm"`
	MaxBpm int `json:"max_bpm"`

	AvgDifficulty float64 `json:"avg_difficulty"`

	// MostUsedSongIDs holds up to five song ids ordered by how often they
	// appear across the user's setlists, most used first.
	MostUsedSongIDs []string `json:"most_used_song_ids"`

	MeanSetlistLength float64 `json:"mean_setlist_length"`
}

// BuildProfile analyzes a library and setlist history. A nil profile is
// returned for an empty library since there is nothing to learn from.
func BuildProfile(library []*domain.Song, setlists []*domain.Setlist) *Profile {
	if len(library) == 0 {
		return nil
	}

	p := &Profile{
		FavoriteGenres: topValues(library, func(s *domain.Song) string { return s.Genre }, topGenreCount),
		FavoriteKeys:   topValues(library, func(s *domain.Song) string { return s.MusicalKey }, topKeyCount),
	}

	bpmSum, bpmCount := 0, 0
	difficultySum, difficultyCount := 0, 0
	for _, song := range library {
		if song == nil {
			continue
		}
		if song.Bpm != 0 {
			if bpmCount == 0 || song.Bpm < p.MinBpm {
				p.MinBpm = song.Bpm
			}
			if song.Bpm > p.MaxBpm {
				p.MaxBpm = song.Bpm
			}
			bpmSum += song.Bpm
			bpmCount++
		}
		if song.DifficultyRating != 0 {
			difficultySum += song.DifficultyRating
			difficultyCount++
		}
	}
	if bpmCount > 0 {
		p.AvgBpm = bpmSum / bpmCount
	}
	if difficultyCount > 0 {
		p.AvgDifficulty = float64(difficultySum) / float64(difficultyCount)
	}

	usage := SetlistUsage(setlists)
	p.MostUsedSongIDs = topUsedSongs(usage, topUsageCount)
	if len(setlists) > 0 {
		entryTotal := 0
		for _, sl := range setlists {
			if sl != nil {
				entryTotal += len(sl.Entries)
			}
		}
		p.MeanSetlistLength = float64(entryTotal) / float64(len(setlists))
	}

	return p
}

// SetlistUsage counts how many times each song id appears across setlists.
func SetlistUsage(setlists []*domain.Setlist) map[string]int {
	usage := make(map[string]int)
	for _, sl := range setlists {
		if sl == nil {
			continue
		}
		for _, entry := range sl.Entries {
			if entry != nil && entry.SongID != "" {
				usage[entry.SongID]++
			}
		}
	}
	return usage
}

// Recommend scores the user's own songs against the profile. Bonuses stack
// on a base of 50 and the result is clamped to [0,100]. An empty library or
// nil profile yields an empty list.
func Recommend(library []*domain.Song, p *Profile, usage map[string]int, limit int) []*domain.PersonalizationResult {
	if len(library) == 0 || p == nil {
		return []*domain.PersonalizationResult{}
	}
	if limit <= 0 {
		limit = topUsageCount
	}

	// A fresh usage snapshot overrides the one captured at profile time.
	mostUsed := p.MostUsedSongIDs
	if len(usage) > 0 {
		mostUsed = topUsedSongs(usage, topUsageCount)
	}

	results := make([]*domain.PersonalizationResult, 0, len(library))
	for _, song := range library {
		if song == nil {
			continue
		}
		score, reason := scoreSong(song, p, mostUsed)
		results = append(results, &domain.PersonalizationResult{
			Song:   song,
			Score:  score,
			Reason: reason,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func scoreSong(song *domain.Song, p *Profile, mostUsed []string) (float64, string) {
	score := baseScore
	var reasons []string

	if song.Genre != "" && containsFold(p.FavoriteGenres, song.Genre) {
		score += 35
		reasons = append(reasons, fmt.Sprintf("Matches your favorite genre: %s", song.Genre))
	} else if len(p.FavoriteGenres) > 0 {
		score += 10
	}

	if song.Bpm != 0 && p.AvgBpm != 0 {
		diff := song.Bpm - p.AvgBpm
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= 20:
			score += 25
			reasons = append(reasons, fmt.Sprintf("Tempo close to your usual %d BPM", p.AvgBpm))
		case diff <= 40:
			score += 15
			reasons = append(reasons, fmt.Sprintf("Tempo near your usual %d BPM", p.AvgBpm))
		case song.Bpm >= p.MinBpm && song.Bpm <= p.MaxBpm:
			score += 10
			reasons = append(reasons, "Tempo within your usual range")
		}
	}

	if song.MusicalKey != "" && containsFold(p.FavoriteKeys, song.MusicalKey) {
		score += 15
		reasons = append(reasons, fmt.Sprintf("In a key you play often: %s", song.MusicalKey))
	}

	if song.DifficultyRating != 0 && p.AvgDifficulty != 0 {
		diff := float64(song.DifficultyRating) - p.AvgDifficulty
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff < 0.5:
			score += 15
			reasons = append(reasons, "Matches your typical difficulty")
		case diff < 1.5:
			score += 10
			reasons = append(reasons, "Close to your typical difficulty")
		case diff < 2.5:
			score += 5
		}
	}

	for rank, id := range mostUsed {
		if id == song.ID {
			score += float64(10 - rank)
			reasons = append(reasons, "One of your most played songs")
			break
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	reason := "Recommended for you"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return score, reason
}

// topValues returns the most frequent non-empty values of field across the
// library, ties broken by first-encountered order.
func topValues(library []*domain.Song, field func(*domain.Song) string, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, song := range library {
		if song == nil {
			continue
		}
		v := field(song)
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// topUsedSongs returns up to limit song ids ordered by usage count
// descending, ties broken lexically for determinism.
func topUsedSongs(usage map[string]int, limit int) []string {
	ids := make([]string, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if usage[ids[i]] != usage[ids[j]] {
			return usage[ids[i]] > usage[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
