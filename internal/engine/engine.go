// Package engine is the Three-Tier Parser orchestrator and construction
// entry point for the whole matching engine: it owns the token tries, the
// Hierarchy Index, and the Admin-Prefix Handler, and exposes the single
// classify(raw) operation the rest of this component design builds up to.
//
// An *Engine is built once (the construction phase) and is thereafter a
// pure, read-only value: Classify takes only the receiver's immutable
// state plus stack-local scratch, and is safe to call from any number of
// goroutines with no external synchronization.
package engine

import (
	"fmt"

	"github.com/vnaddr/classifier/internal/adminprefix"
	"github.com/vnaddr/classifier/internal/alias"
	"github.com/vnaddr/classifier/internal/gazetteer"
	"github.com/vnaddr/classifier/internal/level"
	"github.com/vnaddr/classifier/internal/matchers"
	"github.com/vnaddr/classifier/internal/textnorm"
	"github.com/vnaddr/classifier/internal/trie"
)

// sentinelToken replaces matched token positions before the next level's
// trie scan. It contains NUL bytes so it can never arise from folding,
// normalizing, or tokenizing any real input, and can therefore never be a
// key (or a fragment of a key) in any trie.
const sentinelToken = "\x00mask\x00"

// Config is the reference data and tunables an Engine is built from.
// LCSThreshold and EditDistanceK default to the component design's values
// (0.4 and 2) when left zero.
type Config struct {
	Provinces []gazetteer.Province
	Districts []gazetteer.District
	Wards     []gazetteer.Ward

	// Optional warm-up names for the dynamic abbreviation dictionary,
	// sourced from the auxiliary provinces.txt/districts.txt/ward.txt
	// files. May be nil; the dictionary is still built from the reference
	// data's own display names.
	ProvinceAbbrevWarm []string
	DistrictAbbrevWarm []string
	WardAbbrevWarm     []string

	LCSThreshold  float64
	EditDistanceK int
}

// Engine is the fully constructed matching engine.
type Engine struct {
	tries  [level.Count]*trie.Trie
	gaz    *gazetteer.Index
	prefix *adminprefix.Handler
	lcsThr float64
	edK    int
}

// New runs the construction phase: builds the Hierarchy Index (failing on
// any referential-integrity violation), the three token tries (seeded from
// every alias variant of every display name), and the Admin-Prefix
// Handler's abbreviation dictionaries. Returns an init-error instead of a
// partially built Engine on any construction failure.
func New(cfg Config) (*Engine, error) {
	gaz, err := gazetteer.Build(cfg.Provinces, cfg.Districts, cfg.Wards)
	if err != nil {
		return nil, fmt.Errorf("engine: construction failed: %w", err)
	}

	e := &Engine{
		gaz:    gaz,
		lcsThr: cfg.LCSThreshold,
		edK:    cfg.EditDistanceK,
	}
	if e.lcsThr == 0 {
		e.lcsThr = matchers.DefaultLCSThreshold
	}
	if e.edK == 0 {
		e.edK = matchers.DefaultEditDistanceThreshold
	}

	e.tries[level.Province] = buildTrie(gaz.AllProvinceNames())
	e.tries[level.District] = buildTrie(gaz.AllDistrictNames())
	e.tries[level.Ward] = buildTrie(gaz.AllWardNames())

	e.prefix = adminprefix.NewHandler(
		append(append([]string(nil), gaz.AllProvinceNames()...), cfg.ProvinceAbbrevWarm...),
		append(append([]string(nil), gaz.AllDistrictNames()...), cfg.DistrictAbbrevWarm...),
		append(append([]string(nil), gaz.AllWardNames()...), cfg.WardAbbrevWarm...),
	)

	return e, nil
}

// buildTrie inserts every alias variant of every display name, in load
// order, so that colliding keys resolve to the first-inserted entity.
func buildTrie(displayNames []string) *trie.Trie {
	t := trie.New()
	for _, name := range displayNames {
		tokens := textnorm.Tokenize(textnorm.AggressiveNormalize(name))
		for _, key := range alias.Generate(tokens) {
			t.Insert(key, name)
		}
	}
	return t
}
