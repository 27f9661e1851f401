package matchers

// DefaultLCSThreshold is the similarity floor below which LCSMatch returns
// no match.
const DefaultLCSThreshold = 0.4

// LCSResult is the outcome of matching one input token sequence against a
// candidate list.
type LCSResult struct {
	DisplayName string
	Similarity  float64
}

// LCSMatch finds the candidate with the highest token-sequence LCS
// similarity to inputTokens, breaking ties by shortest candidate (fewer
// tokens — a more specific match), subject to threshold. Returns false if
// no candidate clears the threshold.
func LCSMatch(inputTokens []string, candidates []Candidate, threshold float64) (LCSResult, bool) {
	var best LCSResult
	var bestTokenCount int
	found := false

	for _, cand := range candidates {
		lcsLen := lcsLength(inputTokens, cand.Tokens)
		denom := len(inputTokens) + len(cand.Tokens)
		if denom == 0 {
			continue
		}
		similarity := 2 * float64(lcsLen) / float64(denom)
		if similarity < threshold {
			continue
		}

		switch {
		case !found:
			best = LCSResult{DisplayName: cand.DisplayName, Similarity: similarity}
			bestTokenCount = len(cand.Tokens)
			found = true
		case similarity > best.Similarity:
			best = LCSResult{DisplayName: cand.DisplayName, Similarity: similarity}
			bestTokenCount = len(cand.Tokens)
		case similarity == best.Similarity && len(cand.Tokens) < bestTokenCount:
			best = LCSResult{DisplayName: cand.DisplayName, Similarity: similarity}
			bestTokenCount = len(cand.Tokens)
		}
	}

	return best, found
}

// lcsLength computes the longest-common-subsequence length between two
// token sequences using a two-row rolling DP buffer, so memory use is
// O(min(|a|, |b|)) rather than O(|a|*|b|).
func lcsLength(a, b []string) int {
	// Put the shorter sequence along the column dimension so the two row
	// buffers are sized by it.
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
