// Package scoring ranks how well candidate songs follow a reference song in
// a setlist, combining tempo, genre, key and difficulty into one weighted
// score with human-readable rationale.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/stagekit/stagekit/internal/domain"
)

// Sub-score weights. They sum to 1 so the composite stays in [0,100].
const (
	tempoWeight      = 0.30
	genreWeight      = 0.25
	keyWeight        = 0.25
	difficultyWeight = 0.20
)

// neutralScore is used whenever a sub-score's data is missing on either side:
// absence neither promotes nor demotes a candidate.
const neutralScore = 50.0

// DefaultRankLimit caps ranked results when the caller does not ask for more.
const DefaultRankLimit = 5

// ScoreNext scores how well candidate follows reference. Both songs are
// required; optional attributes inside them may be absent and degrade to
// neutral sub-scores.
func ScoreNext(reference, candidate *domain.Song) (*domain.CompatibilityResult, error) {
	if reference == nil {
		return nil, fmt.Errorf("reference song is required")
	}
	if candidate == nil {
		return nil, fmt.Errorf("candidate song is required")
	}

	tempo, tempoReason := tempoScore(reference.Bpm, candidate.Bpm)
	genre, genreReason := genreScore(reference.Genre, candidate.Genre)
	key, keyReason := keyScore(reference.MusicalKey, candidate.MusicalKey)
	difficulty, difficultyReason := difficultyScore(reference.DifficultyRating, candidate.DifficultyRating)

	composite := tempo*tempoWeight + genre*genreWeight + key*keyWeight + difficulty*difficultyWeight
	composite = math.Round(composite*10) / 10
	composite = clampScore(composite)

	var reasons []string
	for _, r := range []string{tempoReason, genreReason, keyReason, difficultyReason} {
		if r != "" {
			reasons = append(reasons, r)
		}
	}

	return &domain.CompatibilityResult{
		Song:    candidate,
		Score:   composite,
		Reasons: reasons,
	}, nil
}

// Rank scores every candidate against the reference and returns the top
// results sorted by score descending. Candidates in excludeIDs (typically
// songs already placed in the setlist) and the reference itself are skipped.
// A non-positive limit falls back to DefaultRankLimit.
func Rank(reference *domain.Song, candidates []*domain.Song, excludeIDs map[string]bool, limit int) ([]*domain.CompatibilityResult, error) {
	if reference == nil {
		return nil, fmt.Errorf("reference song is required")
	}
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	results := make([]*domain.CompatibilityResult, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || candidate.ID == reference.ID || excludeIDs[candidate.ID] {
			continue
		}
		result, err := ScoreNext(reference, candidate)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func tempoScore(refBpm, candBpm int) (float64, string) {
	if refBpm == 0 || candBpm == 0 {
		return neutralScore, ""
	}

	d := math.Abs(float64(refBpm - candBpm))
	switch {
	case d <= 15:
		return 100, fmt.Sprintf("Smooth tempo flow: %d → %d BPM", refBpm, candBpm)
	case d <= 30:
		return 80 - (d-15)*1.33, fmt.Sprintf("Manageable tempo shift: %d → %d BPM", refBpm, candBpm)
	case d <= 50:
		return 50 - (d - 30), fmt.Sprintf("Noticeable tempo change: %d → %d BPM", refBpm, candBpm)
	default:
		return math.Max(0, 20-(d-50)*0.5), fmt.Sprintf("Large tempo jump: %d → %d BPM", refBpm, candBpm)
	}
}

func genreScore(refGenre, candGenre string) (float64, string) {
	if refGenre == "" || candGenre == "" {
		return neutralScore, ""
	}

	ref := strings.ToLower(strings.TrimSpace(refGenre))
	cand := strings.ToLower(strings.TrimSpace(candGenre))
	if ref == cand {
		return 100, fmt.Sprintf("Same genre: %s", refGenre)
	}

	for _, pair := range relatedGenres {
		if (strings.Contains(ref, pair[0]) && strings.Contains(cand, pair[1])) ||
			(strings.Contains(ref, pair[1]) && strings.Contains(cand, pair[0])) {
			return 70, fmt.Sprintf("Related genres: %s → %s", refGenre, candGenre)
		}
	}

	return 40, fmt.Sprintf("Genre contrast: %s → %s", refGenre, candGenre)
}

func keyScore(refKey, candKey string) (float64, string) {
	if refKey == "" || candKey == "" {
		return neutralScore, ""
	}

	ref := canonicalKey(refKey)
	cand := canonicalKey(candKey)
	if ref == cand {
		return 100, fmt.Sprintf("Same key: %s", refKey)
	}

	for _, adjacent := range keyAdjacency[ref] {
		if adjacent == cand {
			return 90, fmt.Sprintf("Harmonically adjacent keys: %s → %s", refKey, candKey)
		}
	}

	if enharmonicEqual(ref, cand) {
		return 85, fmt.Sprintf("Enharmonic keys: %s → %s", refKey, candKey)
	}

	return 40, fmt.Sprintf("Key change: %s → %s", refKey, candKey)
}

func difficultyScore(refRating, candRating int) (float64, string) {
	j := refRating - candRating
	if j < 0 {
		j = -j
	}

	switch j {
	case 0:
		return 90, "Consistent difficulty level"
	case 1:
		return 85, "Similar difficulty level"
	case 2:
		return 70, "Moderate difficulty gap"
	case 3:
		return 50, "Noticeable difficulty gap"
	default:
		return math.Max(20, 50-float64(j)*5), "Large difficulty gap"
	}
}

// canonicalKey uppercases a key name and folds sharp/flat glyph variants so
// table lookups are case-insensitive.
func canonicalKey(k string) string {
	k = strings.TrimSpace(k)
	k = strings.ReplaceAll(k, "♯", "#")
	k = strings.ReplaceAll(k, "♭", "b")
	return strings.ToUpper(k)
}

// enharmonicEqual reports whether two canonical keys name the same pitch in
// the same mode under different spellings, e.g. F#m and Gbm.
func enharmonicEqual(a, b string) bool {
	aRoot, aMinor := strings.CutSuffix(a, "M")
	bRoot, bMinor := strings.CutSuffix(b, "M")
	if aMinor != bMinor {
		return false
	}
	return enharmonicEquivalents[aRoot] == bRoot
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
