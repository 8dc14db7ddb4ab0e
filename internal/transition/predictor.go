// Package transition estimates the seconds needed to move between two songs
// during a live performance.
package transition

import (
	"log/slog"
	"math"
	"strings"

	"github.com/stagekit/stagekit/internal/domain"
)

// Config holds the tuning constants for transition prediction. Callers supply
// it from their own configuration; the predictor reads nothing itself.
type Config struct {
	BaseSeconds        float64
	BpmPenaltyPerBpm   float64
	KeyMismatchPenalty float64
	MaxSeconds         float64
}

// DefaultConfig returns the standard tuning: 15s base, 0.2s per BPM of
// difference, 10s for a key clash, capped at 45s.
func DefaultConfig() Config {
	return Config{
		BaseSeconds:        15,
		BpmPenaltyPerBpm:   0.2,
		KeyMismatchPenalty: 10,
		MaxSeconds:         45,
	}
}

// relativeKeys pairs each major key with its relative minor. Either direction
// counts as compatible.
var relativeKeys = map[string]string{
	"C":  "AM",
	"G":  "EM",
	"D":  "BM",
	"A":  "F#M",
	"E":  "C#M",
	"B":  "G#M",
	"F#": "D#M",
	"DB": "BBM",
	"AB": "FM",
	"EB": "CM",
	"BB": "GM",
	"F":  "DM",
}

// Predict estimates the transition time in seconds from song a to song b.
// Either song may be nil, in which case only the base time applies. The
// estimate is advisory, so any internal failure degrades to the base time
// instead of propagating.
func Predict(cfg Config, a, b *domain.Song) (seconds float64) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("transition prediction failed, using base time", "reason", r)
			seconds = cfg.BaseSeconds
		}
	}()

	seconds = cfg.BaseSeconds
	if a == nil || b == nil {
		return clamp(seconds, cfg.MaxSeconds)
	}

	if a.Bpm != 0 && b.Bpm != 0 {
		seconds += math.Abs(float64(a.Bpm-b.Bpm)) * cfg.BpmPenaltyPerBpm
	}

	if a.MusicalKey != "" && b.MusicalKey != "" {
		if !keysCompatible(a.MusicalKey, b.MusicalKey) {
			seconds += cfg.KeyMismatchPenalty
		}
	}

	return clamp(seconds, cfg.MaxSeconds)
}

// keysCompatible reports whether two keys allow a transition without extra
// adjustment time: same key, same root letter, or a relative major/minor pair.
func keysCompatible(a, b string) bool {
	ka := normalizeKey(a)
	kb := normalizeKey(b)

	if ka == kb {
		return true
	}
	if ka != "" && kb != "" && ka[0] == kb[0] {
		return true
	}
	if relativeKeys[ka] == kb || relativeKeys[kb] == ka {
		return true
	}
	return false
}

// normalizeKey uppercases a key name and folds the sharp/flat glyph variants
// so "f#m", "F♯m" and "F#M" all compare equal.
func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	k = strings.ReplaceAll(k, "♯", "#")
	k = strings.ReplaceAll(k, "♭", "b")
	return strings.ToUpper(k)
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
