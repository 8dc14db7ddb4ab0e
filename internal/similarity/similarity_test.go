package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases and trims", "  Don't Stop Believin'  ", "don't stop believin'"},
		{"collapses whitespace runs", "don't   stop\tbelievin'", "don't stop believin'"},
		{"ampersand spelled out", "Simon & Garfunkel", "simon and garfunkel"},
		{"hyphens become spaces", "Ob-La-Di, Ob-La-Da", "ob la di, ob la da"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestScoreIdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, Score("purple rain", "purple rain"))
	assert.Equal(t, 1.0, Score("", ""))
}

func TestScoreEmptyVersusNonEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Score("abc", ""))
	assert.Equal(t, 0.0, Score("", "abc"))
}

func TestScoreCloseStrings(t *testing.T) {
	// One substitution across eleven runes.
	score := Score("purple rain", "purple rein")
	assert.InDelta(t, 1.0-1.0/11.0, score, 1e-9)
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"wonderwall", "wonderwal"},
		{"hey jude", "hey dude"},
		{"a", "xyz"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]))
	}
}

func TestDistanceSymmetric(t *testing.T) {
	assert.Equal(t, Distance("kitten", "sitting"), Distance("sitting", "kitten"))
	assert.Equal(t, 3, Distance("kitten", "sitting"))
}

func TestDistanceTriangleInequality(t *testing.T) {
	triples := [][3]string{
		{"rock", "rack", "rick"},
		{"hello", "help", "yellow"},
		{"", "ab", "abcd"},
	}
	for _, tr := range triples {
		ab := Distance(tr[0], tr[1])
		bc := Distance(tr[1], tr[2])
		ac := Distance(tr[0], tr[2])
		assert.LessOrEqual(t, ac, ab+bc, "triangle inequality violated for %v", tr)
	}
}
