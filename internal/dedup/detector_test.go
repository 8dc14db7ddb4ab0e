package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagekit/stagekit/internal/domain"
)

func testLibrary() []*domain.Song {
	return []*domain.Song{
		{ID: "1", Title: "Don't Stop Believin'", Artist: "Journey"},
		{ID: "2", Title: "Superstition", Artist: "Stevie Wonder"},
		{ID: "3", Title: "Hotel California", Artist: "Eagles"},
	}
}

func TestFindDuplicateExactAfterNormalization(t *testing.T) {
	candidate := &domain.Song{Title: "don't   stop believin'", Artist: "  JOURNEY "}

	match := FindDuplicate(candidate, testLibrary(), "")

	require.NotNil(t, match)
	assert.Equal(t, "1", match.ID)
}

func TestFindDuplicateAmpersandAndHyphens(t *testing.T) {
	library := []*domain.Song{
		{ID: "9", Title: "Ob-La-Di, Ob-La-Da", Artist: "The Beatles"},
		{ID: "10", Title: "The Boxer", Artist: "Simon & Garfunkel"},
	}

	match := FindDuplicate(&domain.Song{Title: "Ob La Di, Ob La Da", Artist: "The Beatles"}, library, "")
	require.NotNil(t, match)
	assert.Equal(t, "9", match.ID)

	match = FindDuplicate(&domain.Song{Title: "The Boxer", Artist: "Simon and Garfunkel"}, library, "")
	require.NotNil(t, match)
	assert.Equal(t, "10", match.ID)
}

func TestFindDuplicateSelfExclusion(t *testing.T) {
	candidate := &domain.Song{Title: "Superstition", Artist: "Stevie Wonder"}

	match := FindDuplicate(candidate, testLibrary(), "2")

	assert.Nil(t, match)
}

func TestFindDuplicateFuzzy(t *testing.T) {
	candidate := &domain.Song{Title: "Hotel Californa", Artist: "Eagles"}

	match := FindDuplicate(candidate, testLibrary(), "")

	require.NotNil(t, match)
	assert.Equal(t, "3", match.ID)
}

func TestFindDuplicateNoMatch(t *testing.T) {
	candidate := &domain.Song{Title: "Purple Rain", Artist: "Prince"}

	assert.Nil(t, FindDuplicate(candidate, testLibrary(), ""))
}

func TestFindDuplicateEmptyLibrary(t *testing.T) {
	candidate := &domain.Song{Title: "Purple Rain", Artist: "Prince"}

	assert.Nil(t, FindDuplicate(candidate, nil, ""))
}

func TestFindPotentialDuplicatesBothFieldsMustQualify(t *testing.T) {
	library := []*domain.Song{
		// Title nearly identical, artist completely different: must not match.
		{ID: "1", Title: "Hotel California", Artist: "The Gypsy Kings"},
		// Both fields close: must match.
		{ID: "2", Title: "Hotel Californa", Artist: "Eagles"},
	}
	candidate := &domain.Song{Title: "Hotel California", Artist: "Eagles"}

	matches := FindPotentialDuplicates(candidate, library, 0.8)

	require.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].Song.ID)
	assert.Greater(t, matches[0].Similarity, 0.9)
}

func TestFindPotentialDuplicatesSortedDescending(t *testing.T) {
	library := []*domain.Song{
		{ID: "1", Title: "Wonderwal", Artist: "Oasis"},
		{ID: "2", Title: "Wonderwall", Artist: "Oasis"},
	}
	candidate := &domain.Song{Title: "Wonderwall", Artist: "Oasis"}

	matches := FindPotentialDuplicates(candidate, library, 0.8)

	require.Len(t, matches, 2)
	assert.Equal(t, "2", matches[0].Song.ID)
	assert.GreaterOrEqual(t, matches[0].Similarity, matches[1].Similarity)
}

func TestFindPotentialDuplicatesDefaultThreshold(t *testing.T) {
	library := testLibrary()
	candidate := &domain.Song{Title: "Don't Stop Believin'", Artist: "Journey"}

	matches := FindPotentialDuplicates(candidate, library, 0)

	require.Len(t, matches, 1)
	assert.Equal(t, "1", matches[0].Song.ID)
	assert.Equal(t, 1.0, matches[0].Similarity)
}

func TestFindPotentialDuplicatesSkipsOwnRecord(t *testing.T) {
	library := testLibrary()
	candidate := &domain.Song{ID: "1", Title: "Don't Stop Believin'", Artist: "Journey"}

	matches := FindPotentialDuplicates(candidate, library, 0.8)

	assert.Empty(t, matches)
}
