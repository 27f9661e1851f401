package matchers

import "strings"

// DefaultEditDistanceThreshold is the default diagonal-band bound k.
const DefaultEditDistanceThreshold = 2

// EditDistanceResult is the outcome of matching one input string against a
// candidate list by bounded Levenshtein distance.
type EditDistanceResult struct {
	DisplayName      string
	Distance         int
	NormalizedScore  float64
}

// EditDistanceMatch concatenates inputTokens and each candidate's tokens
// with single spaces, then finds the candidate with the minimum bounded
// edit distance (diagonal band of width k), tie-breaking on the higher
// normalized score. Returns false if every candidate's distance exceeds k.
func EditDistanceMatch(inputTokens []string, candidates []Candidate, k int) (EditDistanceResult, bool) {
	s := strings.Join(inputTokens, " ")
	var best EditDistanceResult
	found := false

	for _, cand := range candidates {
		t := strings.Join(cand.Tokens, " ")
		dist := boundedLevenshteinK(s, t, k)
		if dist > k {
			continue
		}
		maxLen := len(s)
		if len(t) > maxLen {
			maxLen = len(t)
		}
		score := 1.0
		if maxLen > 0 {
			score = 1 - float64(dist)/float64(maxLen)
		}

		switch {
		case !found:
			best = EditDistanceResult{DisplayName: cand.DisplayName, Distance: dist, NormalizedScore: score}
			found = true
		case dist < best.Distance:
			best = EditDistanceResult{DisplayName: cand.DisplayName, Distance: dist, NormalizedScore: score}
		case dist == best.Distance && score > best.NormalizedScore:
			best = EditDistanceResult{DisplayName: cand.DisplayName, Distance: dist, NormalizedScore: score}
		}
	}

	return best, found
}

// boundedLevenshteinK computes Levenshtein distance between s and t, but
// gives up early and returns k+1 as soon as the distance is provably > k:
// if the length difference alone exceeds k, or if every cell in the
// current row exceeds k. Only columns within the diagonal band
// [i-k, i+k] are computed; cells outside the band are treated as k+1,
// which is always worse than any in-band alternative and so never wins a
// min().
func boundedLevenshteinK(s, t string, k int) int {
	sr := []rune(s)
	tr := []rune(t)
	if absInt(len(sr)-len(tr)) > k {
		return k + 1
	}

	width := len(tr) + 1
	prev := make([]int, width)
	curr := make([]int, width)
	unreachable := k + 1

	for j := 0; j <= len(tr); j++ {
		if j <= k {
			prev[j] = j
		} else {
			prev[j] = unreachable
		}
	}

	for i := 1; i <= len(sr); i++ {
		lo := i - k
		if lo < 1 {
			lo = 1
		}
		hi := i + k
		if hi > len(tr) {
			hi = len(tr)
		}

		for j := range curr {
			curr[j] = unreachable
		}
		if i <= k {
			curr[0] = i
		}

		rowMin := unreachable
		for j := lo; j <= hi; j++ {
			cost := 1
			if sr[i-1] == tr[j-1] {
				cost = 0
			}

			diag := unreachable
			if j-1 >= 0 {
				diag = getOrUnreachable(prev, j-1, unreachable)
			}
			del := getOrUnreachable(prev, j, unreachable)
			ins := getOrUnreachable(curr, j-1, unreachable)

			best := diag + cost
			if del+1 < best {
				best = del + 1
			}
			if ins+1 < best {
				best = ins + 1
			}
			if best > unreachable {
				best = unreachable
			}
			curr[j] = best
			if best < rowMin {
				rowMin = best
			}
		}
		if rowMin > k {
			return unreachable
		}

		prev, curr = curr, prev
	}

	if prev[len(tr)] > k {
		return unreachable
	}
	return prev[len(tr)]
}

func getOrUnreachable(row []int, idx int, unreachable int) int {
	if idx < 0 || idx >= len(row) {
		return unreachable
	}
	return row[idx]
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
