package matchers

import "testing"

func TestBoundedLevenshteinKExact(t *testing.T) {
	cases := []struct {
		s, t string
		k    int
		want int
	}{
		{"cat", "cat", 2, 0},
		{"cat", "cats", 2, 1},
		{"ha noi", "ha nol", 2, 1},
		{"kitten", "sitting", 3, 3},
	}
	for _, tc := range cases {
		got := boundedLevenshteinK(tc.s, tc.t, tc.k)
		if got != tc.want {
			t.Errorf("boundedLevenshteinK(%q,%q,%d) = %d, want %d", tc.s, tc.t, tc.k, got, tc.want)
		}
	}
}

func TestBoundedLevenshteinKExceedsBandReturnsKPlus1(t *testing.T) {
	got := boundedLevenshteinK("abcdef", "uvwxyz", 2)
	if got != 3 {
		t.Errorf("expected unreachable sentinel k+1=3 for a far pair, got %d", got)
	}
}

func TestBoundedLevenshteinKLengthDiffShortCircuit(t *testing.T) {
	got := boundedLevenshteinK("a", "abcde", 2)
	if got != 3 {
		t.Errorf("expected early k+1=3 when length diff exceeds k, got %d", got)
	}
}

func TestEditDistanceMatchPicksMinDistance(t *testing.T) {
	input := []string{"ha", "nol"}
	candidates := []Candidate{
		{DisplayName: "Hà Nội", Tokens: []string{"ha", "noi"}},
		{DisplayName: "Hà Nam", Tokens: []string{"ha", "nam"}},
	}
	got, ok := EditDistanceMatch(input, candidates, DefaultEditDistanceThreshold)
	if !ok {
		t.Fatal("expected a match within threshold")
	}
	if got.DisplayName != "Hà Nội" {
		t.Errorf("got %q, want %q", got.DisplayName, "Hà Nội")
	}
}

func TestEditDistanceMatchNoCandidateWithinThreshold(t *testing.T) {
	input := []string{"xyz", "random", "garbage"}
	candidates := []Candidate{
		{DisplayName: "Hà Nội", Tokens: []string{"ha", "noi"}},
	}
	_, ok := EditDistanceMatch(input, candidates, DefaultEditDistanceThreshold)
	if ok {
		t.Error("expected no match")
	}
}
