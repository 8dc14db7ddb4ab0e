// Package dedup finds exact and fuzzy duplicate songs in a user's library
// before a create or update is persisted.
package dedup

import (
	"sort"

	"github.com/stagekit/stagekit/internal/domain"
	"github.com/stagekit/stagekit/internal/similarity"
)

const (
	// CombinedThreshold is the minimum title+artist similarity sum for a
	// fuzzy match to count as a hard duplicate. 1.6 tolerates one weaker
	// field when the other is a perfect match.
	CombinedThreshold = 1.6

	// DefaultFieldThreshold is the per-field minimum used by the
	// suggestion-oriented potential-duplicate search.
	DefaultFieldThreshold = 0.8
)

// FindDuplicate returns the library song that duplicates the candidate, or
// nil. An exact match after normalization short-circuits; otherwise the
// highest-scoring fuzzy match above the combined threshold wins. excludeID
// skips the candidate's own record during updates.
func FindDuplicate(candidate *domain.Song, library []*domain.Song, excludeID string) *domain.Song {
	if candidate == nil {
		return nil
	}

	title := similarity.Normalize(candidate.Title)
	artist := similarity.Normalize(candidate.Artist)

	for _, song := range library {
		if song == nil || (excludeID != "" && song.ID == excludeID) {
			continue
		}
		if similarity.Normalize(song.Title) == title && similarity.Normalize(song.Artist) == artist {
			return song
		}
	}

	var best *domain.Song
	bestScore := 0.0
	for _, song := range library {
		if song == nil || (excludeID != "" && song.ID == excludeID) {
			continue
		}
		score := similarity.Score(title, similarity.Normalize(song.Title)) +
			similarity.Score(artist, similarity.Normalize(song.Artist))
		if score >= CombinedThreshold && score > bestScore {
			best = song
			bestScore = score
		}
	}

	return best
}

// FindPotentialDuplicates returns every library song whose title and artist
// similarities each meet the threshold, most-similar first. Unlike
// FindDuplicate this is a discovery aid, not a hard block, so both fields
// must qualify independently. A non-positive threshold falls back to the
// default.
func FindPotentialDuplicates(candidate *domain.Song, library []*domain.Song, threshold float64) []domain.SimilarSong {
	if candidate == nil {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultFieldThreshold
	}

	title := similarity.Normalize(candidate.Title)
	artist := similarity.Normalize(candidate.Artist)

	var matches []domain.SimilarSong
	for _, song := range library {
		if song == nil || song.ID == candidate.ID {
			continue
		}

		titleScore := similarity.Score(title, similarity.Normalize(song.Title))
		artistScore := similarity.Score(artist, similarity.Normalize(song.Artist))
		if titleScore >= threshold && artistScore >= threshold {
			matches = append(matches, domain.SimilarSong{
				Song:       song,
				Similarity: (titleScore + artistScore) / 2,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	return matches
}
