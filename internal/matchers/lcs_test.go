package matchers

import "testing"

func TestLCSMatchPicksHighestSimilarity(t *testing.T) {
	input := []string{"ha", "noi"}
	candidates := []Candidate{
		{DisplayName: "Hà Nội", Tokens: []string{"ha", "noi"}},
		{DisplayName: "Hà Nam", Tokens: []string{"ha", "nam"}},
	}
	got, ok := LCSMatch(input, candidates, DefaultLCSThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.DisplayName != "Hà Nội" {
		t.Errorf("got %q, want %q", got.DisplayName, "Hà Nội")
	}
	if got.Similarity != 1.0 {
		t.Errorf("similarity = %v, want 1.0", got.Similarity)
	}
}

func TestLCSMatchBelowThresholdReturnsFalse(t *testing.T) {
	input := []string{"xyz", "random", "garbage"}
	candidates := []Candidate{
		{DisplayName: "Hà Nội", Tokens: []string{"ha", "noi"}},
	}
	_, ok := LCSMatch(input, candidates, DefaultLCSThreshold)
	if ok {
		t.Error("expected no match below threshold")
	}
}

func TestLCSMatchTieBreaksShortestCandidate(t *testing.T) {
	// Both candidates score 2/3: 2*2/(2+4) and 2*1/(2+1).
	input := []string{"tan", "binh"}
	candidates := []Candidate{
		{DisplayName: "Tân Bình Tây Hải", Tokens: []string{"tan", "binh", "tay", "hai"}},
		{DisplayName: "Bình", Tokens: []string{"binh"}},
	}
	got, ok := LCSMatch(input, candidates, DefaultLCSThreshold)
	if !ok {
		t.Fatal("expected a match")
	}
	if got.DisplayName != "Bình" {
		t.Errorf("expected shortest candidate to win tie, got %q", got.DisplayName)
	}
}

func TestLCSLengthSymmetry(t *testing.T) {
	a := []string{"a", "b", "c", "d"}
	b := []string{"b", "d"}
	if lcsLength(a, b) != lcsLength(b, a) {
		t.Errorf("lcsLength not symmetric")
	}
	if lcsLength(a, b) != 2 {
		t.Errorf("lcsLength(a,b) = %d, want 2", lcsLength(a, b))
	}
}
