package engine

import (
	"strings"

	"github.com/vnaddr/classifier/internal/level"
	"github.com/vnaddr/classifier/internal/matchers"
	"github.com/vnaddr/classifier/internal/textnorm"
	"github.com/vnaddr/classifier/internal/trie"
)

// Classify runs the full three-tier pipeline on one raw address string. A
// malformed or garbage input is not an error: it yields an empty,
// valid=false ParsedAddress.
func (e *Engine) Classify(raw string) ParsedAddress {
	tokens := e.tokenize(raw)
	if len(tokens) == 0 {
		return emptyResult()
	}

	result, ok := e.tier1(tokens)
	if !ok {
		result, ok = e.tier2(tokens)
	}
	if !ok {
		result, ok = e.tier3(tokens)
	}
	if !ok {
		return emptyResult()
	}

	result.Residual = residualText(tokens, result)
	return result
}

// residualText set-subtracts each matched level's own normalized token set
// from the full input token sequence and joins what is left. It is a
// set difference, not a positional trace — matchers never report which
// input positions they consumed — so a genuine address token that happens
// to coincide with a word in the matched name (rare, but possible for
// single-token wards) is excluded along with it. The result is advisory
// leftover text (house number, street, unit), never fed back into
// matching.
func residualText(tokens []string, result ParsedAddress) string {
	consumed := make(map[string]struct{})
	for _, name := range []string{result.ProvinceName, result.DistrictName, result.WardName} {
		if name == "" {
			continue
		}
		for _, t := range textnorm.Tokenize(textnorm.AggressiveNormalize(name)) {
			consumed[t] = struct{}{}
		}
	}

	leftover := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == sentinelToken {
			continue
		}
		if _, ok := consumed[t]; ok {
			continue
		}
		leftover = append(leftover, t)
	}
	return strings.Join(leftover, " ")
}

// tokenize reproduces the shared token sequence used identically across
// all three tiers: structural normalization, per-segment admin-prefix
// stripping/expansion (segments are the comma-separated components of a
// Vietnamese address — ward, district, province, in some order), then a
// final aggressive-mode tokenization of the reassembled text. Masking
// during Tier 1 always operates on this one sequence, never a
// re-normalized copy, which is what makes the masking correctness argument
// in the component design hold.
func (e *Engine) tokenize(raw string) []string {
	structural := textnorm.StructuralNormalize(raw)
	if structural == "" {
		return nil
	}

	segments := strings.Split(structural, ", ")
	for i, seg := range segments {
		segments[i] = e.expandAdminPrefix(seg)
	}
	joined := strings.Join(segments, " ")

	return textnorm.Tokenize(textnorm.AggressiveNormalize(joined))
}

// expandAdminPrefix tries stripping each level's prefix table from the
// start of segment and keeps whichever level's match consumed the most
// input (greedy across levels, mirroring the greedy-within-a-level rule
// the prefix tables themselves are sorted for); the winning level's
// dictionary is then consulted to expand an abbreviated residue. A segment
// with no recognizable prefix at any level passes through unchanged.
func (e *Engine) expandAdminPrefix(segment string) string {
	bestLevel := level.Level(-1)
	bestResidueLen := len(segment) + 1 // shorter residue == longer prefix consumed

	for lvl := level.Level(0); lvl < level.Count; lvl++ {
		residue, ok := e.prefix.Strip(segment, lvl)
		if !ok {
			continue
		}
		if len(residue) < bestResidueLen {
			bestResidueLen = len(residue)
			bestLevel = lvl
		}
	}

	if bestLevel < 0 {
		return segment
	}
	return e.prefix.Expand(segment, bestLevel)
}

func maskSpan(tokens []string, start, end int) []string {
	masked := append([]string(nil), tokens...)
	for i := start; i <= end; i++ {
		masked[i] = sentinelToken
	}
	return masked
}

// tier1 implements the exact trie match with hierarchical masking.
func (e *Engine) tier1(tokens []string) (ParsedAddress, bool) {
	var provinceHit, districtHit, wardHit trie.Hit
	var haveProvince, haveDistrict, haveWard bool

	if hits := e.tries[level.Province].Scan(tokens); len(hits) > 0 {
		provinceHit, haveProvince = trie.BestHit(hits)
	}

	working := tokens
	if haveProvince {
		working = maskSpan(working, provinceHit.StartToken, provinceHit.EndToken)
	}

	if hits := e.tries[level.District].Scan(working); len(hits) > 0 {
		districtHit, haveDistrict = trie.BestHit(hits)
	}
	if haveDistrict {
		working = maskSpan(working, districtHit.StartToken, districtHit.EndToken)
	}

	if hits := e.tries[level.Ward].Scan(working); len(hits) > 0 {
		wardHit, haveWard = trie.BestHit(hits)
	}

	var result ParsedAddress
	if haveProvince {
		result.ProvinceName = provinceHit.DisplayName
	}
	if haveDistrict {
		result.DistrictName = districtHit.DisplayName
	}
	if haveWard {
		result.WardName = wardHit.DisplayName
	}

	e.resolveCodesDownward(&result)
	e.applyGracefulDegradation(&result)

	if !result.Valid {
		return ParsedAddress{}, false
	}

	result.Tier = TierTrie
	result.Confidence = 1.0
	return result, true
}

// tier2 implements LCS alignment, constrained by whatever partial hint
// tier1Seed recovers. Classify calls it only when Tier 1 returned no valid
// result; a Tier 1 result with a province but no district is returned as
// is, without an LCS search for the district.
func (e *Engine) tier2(tokens []string) (ParsedAddress, bool) {
	seed, _ := e.tier1Seed(tokens)
	result, ok := e.constrainedFallback(tokens, seed, e.lcsLevelMatch, lcsConfidence)
	if ok {
		result.Tier = TierLCS
	}
	return result, ok
}

// tier3 implements bounded edit-distance matching with the same
// constrained-candidate pattern as Tier 2.
func (e *Engine) tier3(tokens []string) (ParsedAddress, bool) {
	seed, _ := e.tier1Seed(tokens)
	result, ok := e.constrainedFallback(tokens, seed, e.editDistanceLevelMatch, editConfidence)
	if ok {
		result.Tier = TierEdit
	}
	return result, ok
}

// tier1Seed re-runs Tier 1's trie scan (without the graceful-degradation
// gate) to recover whatever partial province/district hint it found, which
// Tier 2/3 use to constrain their candidate lists. This does not consume a
// result — Classify only calls tier2/tier3 once tier1 has already failed
// to produce a *valid* result on its own.
func (e *Engine) tier1Seed(tokens []string) (ParsedAddress, bool) {
	var seed ParsedAddress
	var provinceHit, districtHit trie.Hit
	var haveProvince, haveDistrict bool

	if hits := e.tries[level.Province].Scan(tokens); len(hits) > 0 {
		provinceHit, haveProvince = trie.BestHit(hits)
	}
	working := tokens
	if haveProvince {
		working = maskSpan(working, provinceHit.StartToken, provinceHit.EndToken)
		seed.ProvinceName = provinceHit.DisplayName
	}
	if hits := e.tries[level.District].Scan(working); len(hits) > 0 {
		districtHit, haveDistrict = trie.BestHit(hits)
	}
	if haveDistrict {
		seed.DistrictName = districtHit.DisplayName
	}

	e.resolveCodesDownward(&seed)
	return seed, haveProvince
}

// levelMatcher abstracts over LCS and edit-distance matching so
// constrainedFallback can share one depth-by-depth search shape between
// Tier 2 and Tier 3.
type levelMatcher func(tokens []string, candidates []matchers.Candidate) (string, bool)

func (e *Engine) lcsLevelMatch(tokens []string, candidates []matchers.Candidate) (string, bool) {
	res, ok := matchers.LCSMatch(tokens, candidates, e.lcsThr)
	if !ok {
		return "", false
	}
	return res.DisplayName, true
}

func (e *Engine) editDistanceLevelMatch(tokens []string, candidates []matchers.Candidate) (string, bool) {
	res, ok := matchers.EditDistanceMatch(tokens, candidates, e.edK)
	if !ok {
		return "", false
	}
	return res.DisplayName, true
}

// confidenceFunc picks a tier's confidence value for how deep a
// constrained-fallback result reached (province-only, +district, +ward).
type confidenceFunc func(d depth) float64

// lcsConfidence and editConfidence are the two rungs of the fixed
// confidence ladder: 0.7/0.6/0.5 for Tier 2 (LCS), 0.5/0.4/0.3 for Tier 3
// (edit-distance). These are a contract, not tunables.
func lcsConfidence(d depth) float64 {
	switch d {
	case depthWard:
		return 0.7
	case depthDistrict:
		return 0.6
	default:
		return 0.5
	}
}

func editConfidence(d depth) float64 {
	switch d {
	case depthWard:
		return 0.5
	case depthDistrict:
		return 0.4
	default:
		return 0.3
	}
}

type depth int

const (
	depthProvince depth = iota
	depthDistrict
	depthWard
)

// constrainedFallback runs match against province candidates if seed has
// no province, then district candidates scoped to the known province, then
// ward candidates scoped to the known district — resolving codes downward
// and applying graceful degradation exactly as Tier 1 does.
func (e *Engine) constrainedFallback(tokens []string, seed ParsedAddress, match levelMatcher, confidence confidenceFunc) (ParsedAddress, bool) {
	result := seed

	if result.ProvinceCode == "" {
		if name, ok := match(tokens, e.gaz.AllProvinces()); ok {
			result.ProvinceName = name
		}
	}
	e.resolveCodesDownward(&result)

	if result.ProvinceCode != "" && result.DistrictCode == "" {
		if name, ok := match(tokens, e.gaz.DistrictsIn(result.ProvinceCode)); ok {
			result.DistrictName = name
		}
	}
	e.resolveCodesDownward(&result)

	if result.DistrictCode != "" && result.WardCode == "" {
		if name, ok := match(tokens, e.gaz.WardsIn(result.DistrictCode)); ok {
			result.WardName = name
		}
	}
	e.resolveCodesDownward(&result)

	e.applyGracefulDegradation(&result)
	if !result.Valid {
		return ParsedAddress{}, false
	}

	switch {
	case result.WardCode != "":
		result.Confidence = confidence(depthWard)
	case result.DistrictCode != "":
		result.Confidence = confidence(depthDistrict)
	default:
		result.Confidence = confidence(depthProvince)
	}
	return result, true
}
