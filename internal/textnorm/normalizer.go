// Package textnorm implements the two-mode text normalization pipeline:
// a structural mode that preserves the punctuation later stages key off of
// (dots, commas, slashes), and an aggressive mode that strips everything
// down to bare tokens. Both modes are pure functions of their input string;
// no package-level mutable state is touched during normalization, so the
// package's functions are safe to call from any number of goroutines at
// once.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/vnaddr/classifier/internal/foldtable"
)

// Mode selects between the structural and aggressive normalization passes.
type Mode int

const (
	// Structural preserves '.', ',', '/' because the Admin-Prefix Handler
	// keys off their presence when stripping "tp.", "p.1", "q./3" style
	// tokens.
	Structural Mode = iota
	// Aggressive additionally collapses '.', ',', '/' to spaces and strips
	// every remaining punctuation rune, yielding a pure token stream.
	Aggressive
)

var (
	compactBoundary  = regexp.MustCompile(`([\p{Ll}0-9])(\p{Lu})`)
	closingPunctGlue = regexp.MustCompile(`(\p{P})(\p{L})`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	hyphens          = regexp.MustCompile(`-`)
	commaNoSpace     = regexp.MustCompile(`,([^\s])`)
)

var keepCategories = []*unicode.RangeTable{unicode.L, unicode.N, unicode.Z, unicode.P}

func keepRune(r rune) bool {
	return unicode.IsOneOf(keepCategories, r)
}

// noisePunct is string.punctuation with '.', ',', '/' removed — the set of
// punctuation runes deleted outright in structural mode.
const noisePunct = `!"#$%&'()*+-:;<=>?@[\]^_` + "`" + `{|}~`

// CompactInputPreprocessing inserts a space at a lowercase-or-digit to
// uppercase boundary, and between a punctuation glyph and an adjacent
// letter, so that inputs like "TỉnhThái Nguyên" tokenize correctly. It runs
// before mode selection, ahead of both Structural and Aggressive.
func CompactInputPreprocessing(s string) string {
	s = compactBoundary.ReplaceAllString(s, "$1 $2")
	s = closingPunctGlue.ReplaceAllString(s, "$1 $2")
	return s
}

// Normalize runs the full pipeline for the requested mode. Idempotent:
// Normalize(Normalize(x, m), m) == Normalize(x, m).
func Normalize(raw string, mode Mode) string {
	s := CompactInputPreprocessing(raw)
	s = strings.ToLower(s)
	s = foldtable.Fold(s)
	s = stripUnwantedCategories(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = hyphens.ReplaceAllString(s, " ")

	switch mode {
	case Aggressive:
		s = strings.ReplaceAll(s, ".", " ")
		s = strings.ReplaceAll(s, ",", " ")
		s = strings.ReplaceAll(s, "/", " ")
		s = stripAllPunct(s)
	default:
		s = deleteNoisePunct(s)
		s = commaNoSpace.ReplaceAllString(s, ", $1")
	}

	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StructuralNormalize is a convenience wrapper for Normalize(raw, Structural).
func StructuralNormalize(raw string) string { return Normalize(raw, Structural) }

// AggressiveNormalize is a convenience wrapper for Normalize(raw, Aggressive).
func AggressiveNormalize(raw string) string { return Normalize(raw, Aggressive) }

func stripUnwantedCategories(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if keepRune(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

func deleteNoisePunct(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if strings.ContainsRune(noisePunct, r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func stripAllPunct(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsPunct(r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Tokenize splits an already-normalized string on single spaces. Empty
// fields (from leading/trailing/doubled separators, which Normalize should
// already have collapsed) are dropped defensively.
func Tokenize(normalized string) []string {
	fields := strings.Split(normalized, " ")
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
