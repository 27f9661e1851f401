// Package matchers implements the two fallback matchers used once the
// exact token trie fails to produce a result: LCS-based alignment (Tier 2)
// and bounded edit-distance (Tier 3). Both operate over the same candidate
// shape so the three-tier orchestrator can build one candidate list per
// level and hand it to whichever matcher the current tier needs.
package matchers

// Candidate is one entity the input is being compared against: its display
// name and the token sequence its aggressively-normalized name splits into.
type Candidate struct {
	DisplayName string
	Tokens      []string
}
