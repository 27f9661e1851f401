// Package auxscore is an auxiliary, non-authoritative ranking signal used
// only at the application layer: a blended Jaro-Winkler/Levenshtein
// similarity between the raw input and the engine's canonical text. It
// never feeds back into the core engine's tier/confidence ladder — it is
// purely a secondary number logged alongside a classification so a human
// reviewer has a second opinion on how far the match drifted from the
// input.
package auxscore

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
)

// Weights controls the blend between Jaro-Winkler and Levenshtein
// similarity. Both default to a 0.7/0.3 split when left zero.
type Weights struct {
	JaroWinkler float64
	Levenshtein float64
}

// DefaultWeights is the blend the teacher's own address matcher used.
var DefaultWeights = Weights{JaroWinkler: 0.7, Levenshtein: 0.3}

// Score returns a 0..1 similarity between a and b, diacritic- and
// case-insensitive. Empty inputs score 0.
func Score(a, b string, w Weights) float64 {
	if a == "" || b == "" {
		return 0
	}
	a, b = unaccent(a), unaccent(b)
	if a == b {
		return 1
	}

	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	ld := levenshtein.ComputeDistance(a, b)
	den := float64(maxLen(a, b))
	lev := 1.0 - float64(ld)/den

	jwW, levW := w.JaroWinkler, w.Levenshtein
	if jwW == 0 && levW == 0 {
		jwW, levW = DefaultWeights.JaroWinkler, DefaultWeights.Levenshtein
	}
	return jwW*jw + levW*lev
}

func unaccent(s string) string { return strings.ToLower(unidecode.Unidecode(s)) }

func maxLen(a, b string) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
