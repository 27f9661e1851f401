// Package adminprefix detects and strips administrative prefixes ("tỉnh",
// "tp.", "q.", "p.", "xã", …) from already structurally-normalized text, and
// expands short forms found in the residue back to a canonical name using a
// dictionary built once from the loaded gazetteer's display names.
package adminprefix

import (
	"sort"
	"strings"

	"github.com/vnaddr/classifier/internal/level"
	"github.com/vnaddr/classifier/internal/textnorm"
)

// fixedPatterns holds the level-keyed table of prefix words, given here in
// their natural reading order; Handler construction sorts a copy
// longest-first so matching is greedy regardless of the order they are
// listed in below.
var fixedPatterns = [level.Count][]string{
	level.Province: {
		"thanh pho truc thuoc trung uong", "thanh pho", "tinh", "tp.", "t.", "tp", "t",
	},
	level.District: {
		"thanh pho", "thi xa", "quan", "huyen", "tp.", "tx.", "q.", "h.", "tp", "tx", "q", "h",
	},
	level.Ward: {
		"thi tran", "phuong", "xa", "tt.", "p.", "x.", "tt", "p", "x",
	},
}

// Dictionary is the dynamic abbreviation table for a single administrative
// level: a short form like "hcm" or "h.c.m" maps back to the canonical
// (aggressively normalized) display name it abbreviates, unless more than
// one display name produced the same short form, in which case the short
// form is ambiguous and only its first-seen candidate is returned by
// lookup.
type Dictionary struct {
	unambiguous map[string]string
	ambiguous   map[string][]string
}

// BuildDictionary constructs the abbreviation table for one level from its
// entity display names, in the order they are iterated. Iteration order
// matters: it determines which candidate wins an ambiguous key.
func BuildDictionary(displayNames []string) *Dictionary {
	d := &Dictionary{
		unambiguous: make(map[string]string),
		ambiguous:   make(map[string][]string),
	}

	seenOrder := make(map[string][]string)
	for _, name := range displayNames {
		canonical := textnorm.AggressiveNormalize(name)
		tokens := textnorm.Tokenize(canonical)
		if len(tokens) < 2 {
			continue
		}
		for _, key := range abbreviationKeys(tokens) {
			seenOrder[key] = append(seenOrder[key], canonical)
		}
	}

	for key, candidates := range seenOrder {
		if len(candidates) == 1 {
			d.unambiguous[key] = candidates[0]
			continue
		}
		// Multiple distinct names may collapse to the same key; drop every
		// repeat of an identical candidate (the same name appearing more
		// than once in the source list), keeping first-seen order.
		dedup := make([]string, 0, len(candidates))
		seen := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			dedup = append(dedup, c)
		}
		if len(dedup) == 1 {
			d.unambiguous[key] = dedup[0]
			continue
		}
		d.ambiguous[key] = dedup
	}

	return d
}

// abbreviationKeys computes the four key-types the abbreviation dictionary
// indexes: bare initials, dotted initials, no-space compaction, and (for
// three-or-more-token names) first-plus-last.
func abbreviationKeys(tokens []string) []string {
	keys := make([]string, 0, 4)

	var bare, dotted strings.Builder
	for i, tok := range tokens {
		first := firstRune(tok)
		bare.WriteString(first)
		dotted.WriteString(first)
		if i < len(tokens)-1 {
			dotted.WriteByte('.')
		}
	}
	keys = append(keys, bare.String(), dotted.String())
	keys = append(keys, strings.Join(tokens, ""))

	if len(tokens) >= 3 {
		keys = append(keys, tokens[0]+" "+tokens[len(tokens)-1])
	}
	return keys
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Lookup resolves a short form to its canonical name, checking the
// unambiguous table first and falling back to the first-inserted candidate
// of an ambiguous key.
func (d *Dictionary) Lookup(shortForm string) (string, bool) {
	if v, ok := d.unambiguous[shortForm]; ok {
		return v, true
	}
	if candidates, ok := d.ambiguous[shortForm]; ok && len(candidates) > 0 {
		return candidates[0], true
	}
	return "", false
}

// Handler strips and expands administrative prefixes for all three levels.
type Handler struct {
	patterns [level.Count][]string
	dicts    [level.Count]*Dictionary
}

// NewHandler builds a Handler from the fixed prefix table and, for each
// level, an abbreviation dictionary derived from that level's display
// names.
func NewHandler(provinceNames, districtNames, wardNames []string) *Handler {
	h := &Handler{}
	for lvl := level.Level(0); lvl < level.Count; lvl++ {
		patterns := append([]string(nil), fixedPatterns[lvl]...)
		sort.SliceStable(patterns, func(i, j int) bool {
			return len(patterns[i]) > len(patterns[j])
		})
		h.patterns[lvl] = patterns
	}
	h.dicts[level.Province] = BuildDictionary(provinceNames)
	h.dicts[level.District] = BuildDictionary(districtNames)
	h.dicts[level.Ward] = BuildDictionary(wardNames)
	return h
}

// Strip matches the longest prefix pattern at the start of text for the
// given level, provided it is followed by whitespace, a dot, or the end of
// the string, and removes it together with one trailing separator. Returns
// the original text and false if no prefix pattern matched.
func (h *Handler) Strip(text string, lvl level.Level) (string, bool) {
	for _, pattern := range h.patterns[lvl] {
		if !strings.HasPrefix(text, pattern) {
			continue
		}
		rest := text[len(pattern):]
		if rest != "" {
			boundary := rest[0]
			if boundary != ' ' && boundary != '.' {
				continue
			}
			rest = rest[1:]
		}
		return rest, true
	}
	return text, false
}

// Expand strips the level's prefix (if present) and, if the residue is a
// known abbreviation, substitutes its canonical form; otherwise the
// (possibly prefix-stripped) residue is returned unchanged.
func (h *Handler) Expand(text string, lvl level.Level) string {
	residue, _ := h.Strip(text, lvl)
	residue = strings.TrimSpace(residue)
	if canonical, ok := h.dicts[lvl].Lookup(residue); ok {
		return canonical
	}
	return residue
}
